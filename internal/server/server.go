package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simple-kanban/internal/auth"
	"simple-kanban/internal/config"
	"simple-kanban/internal/database"
	"simple-kanban/internal/handler"
	"simple-kanban/internal/middleware"
	"simple-kanban/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

type handlers struct {
	board  *handler.BoardHandler
	column *handler.ColumnHandler
	task   *handler.TaskHandler
	user   *handler.UserHandler
	tokens *auth.TokenManager
}

func Init(cfg *config.Config) (*Server, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("❌ %w", err)
	}

	if cfg.DBAutoMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("❌ failed to migrate DB: %w", err)
		}
	}

	return &Server{
		Engine: NewEngine(cfg, db),
		DB:     db,
		Config: cfg,
	}, nil
}

// NewEngine wires repositories, handlers and routes on top of db. The kanban
// API is served both at the root and under /api.
func NewEngine(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize handlers
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	h := handlers{
		board:  handler.NewBoardHandler(boardRepo, columnRepo),
		column: handler.NewColumnHandler(columnRepo, boardRepo),
		task:   handler.NewTaskHandler(taskRepo, columnRepo),
		user:   handler.NewUserHandler(userRepo, tokens),
		tokens: tokens,
	}
	system := handler.NewSystemHandler(cfg.StaticDir)

	registerRoutes(&r.RouterGroup, h)
	registerRoutes(r.Group("/api"), h)

	r.GET("/", system.Index)
	r.GET("/health", system.Health)
	r.POST("/echo", system.Echo)
	r.GET("/metrics", system.Metrics)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		r.Static("/static", cfg.StaticDir)
	} else {
		log.Printf("⚠️  Static directory %q not found, /static is disabled", cfg.StaticDir)
	}

	return r
}

func registerRoutes(rg *gin.RouterGroup, h handlers) {
	boards := rg.Group("/boards")
	{
		boards.POST("", h.board.Create)
		boards.POST("/", h.board.Create)
		boards.GET("", h.board.GetAll)
		boards.GET("/", h.board.GetAll)
		boards.GET("/:id", h.board.GetByID)
		boards.PUT("/:id", h.board.Update)
		boards.DELETE("/:id", h.board.Delete)
		boards.GET("/:id/columns", h.board.GetColumns)
		boards.POST("/:id/columns/reorder", h.board.ReorderColumns)
	}

	columns := rg.Group("/columns")
	{
		columns.POST("", h.column.Create)
		columns.POST("/", h.column.Create)
		columns.GET("/board/:board_id", h.column.ListByBoard)
		columns.GET("/:id", h.column.GetByID)
		columns.PUT("/:id", h.column.Update)
		columns.DELETE("/:id", h.column.Delete)
		columns.POST("/:id/reorder", h.column.Reorder)
	}

	tasks := rg.Group("/tasks")
	{
		tasks.POST("", h.task.Create)
		tasks.POST("/", h.task.Create)
		tasks.GET("/:id", h.task.GetByID)
		tasks.PUT("/:id", h.task.Update)
		tasks.DELETE("/:id", h.task.Delete)
		tasks.POST("/:id/move", h.task.Move)
	}

	users := rg.Group("/users")
	{
		users.POST("", h.user.Register)
		users.POST("/login", h.user.Login)
		users.POST("/refresh", h.user.Refresh)
		users.GET("/me", middleware.JWTAuthMiddleware(h.tokens), h.user.Me)
		users.GET("/:id", h.user.GetByID)
	}
}

func (s *Server) Run() {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.Config.CORSAllowedOrigin,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         s.Config.Addr(),
		Handler:      c.Handler(s.Engine),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server running on %s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	if err := database.Close(s.DB); err != nil {
		log.Printf("⚠️  Failed to close database: %s", err)
	}

	log.Println("✅ Server exited properly")
}
