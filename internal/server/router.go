// Package server exposes diploma submission and the admin diploma listing
// over HTTP.
package server

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/matteflyt/internal/auth"
	"github.com/abhisek/matteflyt/internal/diploma"
	"github.com/abhisek/matteflyt/internal/logger"
)

// DiplomaService stores and lists diplomas.
type DiplomaService interface {
	Submit(ctx context.Context, sub diploma.Submission) (string, error)
	List(ctx context.Context) ([]diploma.Diploma, error)
}

// RouterConfig holds the router's collaborators.
type RouterConfig struct {
	Diplomas DiplomaService
	Issuer   *auth.Issuer
	// AdminPasswordHash is a bcrypt hash. Empty disables admin login.
	AdminPasswordHash string
	Log               *logger.Logger
}

// NewRouter wires the routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	diplomas := &diplomaHandler{svc: cfg.Diplomas, log: log.With("handler", "diploma")}
	admin := &adminHandler{issuer: cfg.Issuer, passwordHash: cfg.AdminPasswordHash, log: log.With("handler", "admin")}

	r.GET("/healthcheck", healthCheck)

	api := r.Group("/api")
	{
		api.POST("/diplomas", diplomas.submit)
		api.POST("/admin/verify", admin.verify)
		api.GET("/diplomas", requireAdmin(cfg.Issuer), diplomas.list)
	}
	return r
}

func healthCheck(c *gin.Context) {
	c.String(200, "ok")
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
