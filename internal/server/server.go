// Package server exposes the solver over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/board"
	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/config"
	"github.com/Barabas5532/shenzhen-solitaire-solver/solver"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

// Server is the HTTP host of the solver.
type Server struct {
	cfg     config.Config
	router  *gin.Engine
	metrics *metrics
}

// SolveResponse is the body of a solve response. Solution is null if no
// solution was found.
type SolveResponse struct {
	ID       string        `json:"id"`
	Solution []solver.Step `json:"solution"`
	Error    string        `json:"error,omitempty"`
}

// New returns a server registering its metrics with a fresh registry.
func New(cfg config.Config) *Server {
	reg := prometheus.NewRegistry()
	s := &Server{
		cfg:     cfg,
		router:  gin.New(),
		metrics: newMetrics(reg),
	}

	s.router.Use(gin.Recovery(), requestLogger())
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	v1 := s.router.Group("/v1")
	v1.POST("/solve", s.handleSolve)
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on the configured address until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Server.Addr, Handler: s.router}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Info().Str("addr", srv.Addr).Msg("server-listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("server-shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSolve(c *gin.Context) {
	resp := SolveResponse{ID: uuid.NewString()}

	data, err := c.GetRawData()
	if err != nil {
		s.metrics.solves.WithLabelValues(outcomeMalformed).Inc()
		resp.Error = err.Error()
		c.JSON(http.StatusBadRequest, resp)
		return
	}
	b, err := board.Parse(data)
	if err != nil {
		s.metrics.solves.WithLabelValues(outcomeMalformed).Inc()
		resp.Error = err.Error()
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	ctx := c.Request.Context()
	if timeout := s.cfg.Server.RequestTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := solver.Play(ctx, b, solver.Options{MaxExpansions: s.cfg.Search.MaxExpansions})
	s.metrics.duration.Observe(time.Since(start).Seconds())
	if result != nil {
		s.metrics.expansions.Observe(float64(result.Expanded))
	}

	switch {
	case err == nil:
		s.metrics.solves.WithLabelValues(outcomeSolved).Inc()
		resp.Solution = result.Steps
		c.JSON(http.StatusOK, resp)
	case errors.Is(err, solver.ErrNoSolution):
		s.metrics.solves.WithLabelValues(outcomeNoSolution).Inc()
		resp.Error = solver.ErrNoSolution.Error()
		c.JSON(http.StatusUnprocessableEntity, resp)
	default:
		s.metrics.solves.WithLabelValues(outcomeInternal).Inc()
		log.Error().Err(err).Str("id", resp.ID).Msg("solve-failed")
		resp.Error = solver.ErrInternal.Error()
		c.JSON(http.StatusInternalServerError, resp)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request-handled")
	}
}
