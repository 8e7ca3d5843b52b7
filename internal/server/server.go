package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AVKharkova/foodgram/config"
)

// Server wraps the HTTP server around the configured gin engine.
type Server struct {
	http *http.Server
}

func New(cfg *config.Config, engine *gin.Engine) *Server {
	return &Server{
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
	}
}

// Start blocks serving requests until Shutdown is called or the
// listener fails.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
