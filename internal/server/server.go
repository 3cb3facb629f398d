// Package server is the HTTP surface over the engine. Every request is
// stateless; nothing is retained between calls.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/lessonlens/internal/engine"
)

// Server routes HTTP requests to an engine.Service.
type Server struct {
	svc      *engine.Service
	log      *slog.Logger
	metrics  *Metrics
	registry *prometheus.Registry
	validate *validator.Validate
	version  string
}

// New builds a Server with its own metrics registry.
func New(svc *engine.Service, logger *slog.Logger, version string) *Server {
	reg := prometheus.NewRegistry()
	return &Server{
		svc:      svc,
		log:      logger,
		metrics:  NewMetrics(reg),
		registry: reg,
		validate: validator.New(),
		version:  version,
	}
}

// Handler returns the gin router with every route registered.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID())

	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	v1 := r.Group("/v1")
	v1.POST("/tensions", s.handleTensions)
	v1.POST("/curriculum", s.handleCurriculum)
	v1.GET("/domains", s.handleDomains)
	v1.GET("/domains/:domain/skills", s.handleSkills)
	return r
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

const requestIDHeader = "X-Request-ID"

// requestID takes the caller's X-Request-ID or creates one, echoes it and
// passes it to the engine through the request context.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(engine.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}
