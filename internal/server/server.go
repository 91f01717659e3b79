// Package server exposes the optimizer over a small JSON HTTP API.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/piwi3910/OpenCutList/internal/engine"
	"github.com/piwi3910/OpenCutList/internal/model"
)

// OptimizeRequest is the body accepted by the optimize and compare endpoints.
// A nil Kerf falls back to the server's configured default.
type OptimizeRequest struct {
	Parts        []model.Part       `json:"parts"`
	Stock        []model.StockPiece `json:"stock"`
	Kerf         *float64           `json:"kerf"`
	RespectGrain bool               `json:"respectGrain"`
}

// OptimizeResponse is returned by POST /api/optimize.
type OptimizeResponse struct {
	Results []model.MaterialResult `json:"results"`
	Summary model.Summary          `json:"summary"`
}

// CompareResponse is returned by POST /api/compare.
type CompareResponse struct {
	Scenarios []engine.ComparisonResult `json:"scenarios"`
}

// Server holds the defaults applied to incoming requests.
type Server struct {
	defaults model.CutSettings
	logger   *slog.Logger
}

// New creates a server whose requests fall back to the given settings.
func New(defaults model.CutSettings, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{defaults: defaults, logger: logger}
}

// Handler builds the gin engine with all routes registered.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", s.handleHealth)
	api := r.Group("/api")
	api.GET("/example", s.handleExample)
	api.POST("/optimize", s.handleOptimize)
	api.POST("/compare", s.handleCompare)
	return r
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	return s.Handler().Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleExample(c *gin.Context) {
	c.JSON(http.StatusOK, model.ExampleProject())
}

// settingsFor binds and validates the request, writing a 400 on failure.
func (s *Server) settingsFor(c *gin.Context) (OptimizeRequest, model.CutSettings, bool) {
	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return req, model.CutSettings{}, false
	}

	settings := s.defaults
	if req.Kerf != nil {
		settings.Kerf = *req.Kerf
	}
	settings.RespectGrain = settings.RespectGrain || req.RespectGrain

	if err := model.ValidateInput(req.Parts, req.Stock, settings.Kerf); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, settings, false
	}
	return req, settings, true
}

func (s *Server) handleOptimize(c *gin.Context) {
	req, settings, ok := s.settingsFor(c)
	if !ok {
		return
	}

	results, err := engine.New(settings).OptimizeContext(c.Request.Context(), req.Parts, req.Stock)
	if err != nil {
		status := http.StatusInternalServerError
		if c.Request.Context().Err() != nil {
			status = http.StatusServiceUnavailable
		}
		s.logger.Warn("optimize aborted", "error", err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	s.logger.Debug("optimized", "parts", len(req.Parts), "stock", len(req.Stock), "materials", len(results))
	c.JSON(http.StatusOK, OptimizeResponse{Results: results, Summary: model.Summarize(results)})
}

func (s *Server) handleCompare(c *gin.Context) {
	req, settings, ok := s.settingsFor(c)
	if !ok {
		return
	}

	scenarios := engine.BuildDefaultScenarios(settings)
	c.JSON(http.StatusOK, CompareResponse{Scenarios: engine.CompareScenarios(scenarios, req.Parts, req.Stock)})
}
