package handler

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

// SystemHandler serves the service-level endpoints outside the kanban API
type SystemHandler struct {
	staticDir string
}

func NewSystemHandler(staticDir string) *SystemHandler {
	return &SystemHandler{staticDir: staticDir}
}

type EchoRequest struct {
	Message string `json:"message"`
}

type EchoResponse struct {
	Echo   string `json:"echo"`
	Length int    `json:"length"`
}

// Index serves the web client when it is installed, otherwise a short status document
// @Summary      Service index
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       / [get]
func (h *SystemHandler) Index(c *gin.Context) {
	if h.staticDir != "" {
		index := filepath.Join(h.staticDir, "index.html")
		if info, err := os.Stat(index); err == nil && !info.IsDir() {
			c.File(index)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "simple-kanban API",
		"status":  "running",
		"docs":    "/swagger/index.html",
	})
}

// @Summary      Health check
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": Version})
}

// @Summary      Echo a message
// @Tags         System
// @Accept       json
// @Produce      json
// @Param        message  body  EchoRequest  true  "Message"
// @Success      200  {object}  EchoResponse
// @Failure      400  {object}  map[string]string
// @Router       /echo [post]
func (h *SystemHandler) Echo(c *gin.Context) {
	var req EchoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty"})
		return
	}

	log.Printf("📨 Echo request received: %s", req.Message)
	c.JSON(http.StatusOK, EchoResponse{Echo: req.Message, Length: utf8.RuneCountInString(req.Message)})
}

// Metrics is a placeholder; every counter is zero.
// @Summary      Service counters
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /metrics [get]
func (h *SystemHandler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"requests_total":  0,
		"uptime_seconds":  0,
		"memory_usage_mb": 0,
	})
}
