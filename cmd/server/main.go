package main

import (
	"log"

	_ "simple-kanban/docs"
	"simple-kanban/internal/config"
	"simple-kanban/internal/server"
)

// @title           simple-kanban API
// @version         1.0.0
// @description     Boards, columns, tasks and users of a self-hosted kanban board.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
