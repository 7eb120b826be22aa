package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"TrendScope/internal/model"
	"TrendScope/internal/report"
)

// Analyzer runs one analysis request; *collector.Collector implements it.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string, period model.Period) (*model.Analysis, error)
}

// analysisRequest binds from the query string (GET) or a form body (POST).
type analysisRequest struct {
	Symbol string `form:"symbol" binding:"required"`
	Period string `form:"period"`
}

type analysisResponse struct {
	Summary *model.Summary `json:"summary"`
	Chart   *report.Chart  `json:"chart"`
}

// Server exposes the analysis route over HTTP.
type Server struct {
	addr     string
	analyzer Analyzer
	engine   *gin.Engine
}

// New builds the router. A nil metrics handler disables /metrics.
func New(addr string, analyzer Analyzer, metrics http.Handler) *Server {
	s := &Server{addr: addr, analyzer: analyzer}

	engine := gin.New()
	engine.Use(gin.LoggerWithWriter(log.Writer()), gin.Recovery())
	engine.GET("/health", s.handleHealth)
	v1 := engine.Group("/v1")
	v1.GET("/analysis", s.handleAnalysis)
	v1.POST("/analysis", s.handleAnalysis)
	if metrics != nil {
		engine.GET("/metrics", gin.WrapH(metrics))
	}
	s.engine = engine
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] HTTP server listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	log.Println("[INFO] HTTP server stopped")
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleAnalysis(c *gin.Context) {
	var req analysisRequest
	if err := c.ShouldBind(&req); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", model.ErrInvalidSymbol, err))
		return
	}
	period, err := model.ParsePeriod(req.Period)
	if err != nil {
		s.fail(c, err)
		return
	}

	a, err := s.analyzer.Analyze(c.Request.Context(), req.Symbol, period)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, analysisResponse{
		Summary: a.Summary,
		Chart:   report.BuildChart(a.Symbol, a.Series),
	})
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": report.UserMessage(err)})
}

// statusFor maps the error taxonomy to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidSymbol), errors.Is(err, model.ErrInvalidPeriod):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInsufficientData), errors.Is(err, model.ErrInsufficientHistory):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrSourceUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
