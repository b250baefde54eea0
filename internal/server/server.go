package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/config"
	"github.com/pageza/pantrymatch/backend/internal/api"
	"github.com/pageza/pantrymatch/backend/internal/middleware"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    *zap.Logger
}

// New builds the router with the middleware chain and all API routes
func New(cfg *config.Config, deps api.Deps) *Server {
	if !config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		requestid.New(),
		middleware.Logger(deps.Log),
		middleware.Recovery(deps.Log),
		middleware.CORS(cfg.CORSOrigins),
		middleware.ErrorHandler(deps.Log),
	)
	api.RegisterRoutes(router, deps)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      90 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		log: deps.Log,
	}
}

// Router exposes the handler for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.log.Info("server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
