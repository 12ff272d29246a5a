// Package server exposes the load and export pipeline over HTTP. Each
// client works in a session that holds its latest listing.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/quantmind-br/repo2txt-go/internal/app"
	"github.com/quantmind-br/repo2txt-go/internal/config"
	"github.com/quantmind-br/repo2txt-go/internal/session"
	"github.com/quantmind-br/repo2txt-go/internal/utils"
)

// ServiceName is the name reported in request traces
const ServiceName = "repo2txt"

// Options contains options for creating a Server
type Options struct {
	Config       *config.Config
	Orchestrator *app.Orchestrator
	Logger       *utils.Logger
	// Token is used for requests that carry none
	Token string
}

// Server is the HTTP front end
type Server struct {
	cfg      config.ServerConfig
	router   *gin.Engine
	sessions *session.Registry
	logger   *utils.Logger
}

// New creates a Server and registers its routes
func New(opts Options) (*Server, error) {
	if opts.Config == nil || opts.Orchestrator == nil {
		return nil, fmt.Errorf("config and orchestrator are required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = opts.Orchestrator.Logger()
	}
	logger = logger.WithComponent("server")

	sessions := session.NewRegistry(logger)

	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(ServiceName), requestLogger(logger))
	RegisterRoutes(router, &Handler{
		orch:     opts.Orchestrator,
		sessions: sessions,
		token:    opts.Token,
		logger:   logger,
	})

	return &Server{
		cfg:      opts.Config.Server,
		router:   router,
		sessions: sessions,
		logger:   logger,
	}, nil
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions returns the session registry
func (s *Server) Sessions() *session.Registry {
	return s.sessions
}

// Run serves until ctx is done, then shuts down gracefully. Idle sessions
// are pruned in the background.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.router,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
	}

	go s.prune(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", s.cfg.Address).Msg("Starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info().Msg("Shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func (s *Server) prune(ctx context.Context) {
	ttl := s.cfg.SessionTTL
	if ttl <= 0 {
		return
	}

	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.Prune(ttl); n > 0 {
				s.logger.Debug().Int("pruned", n).Msg("Pruned idle sessions")
			}
		}
	}
}

// requestLogger logs each request through zerolog
func requestLogger(logger *utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request")
	}
}
