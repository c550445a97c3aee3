package ui

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"fairlens/adapters/excel"
	"fairlens/domain/core"
	"fairlens/domain/fairness"
)

// handleAnalyze accepts a multipart dataset upload (csv or xlsx) and runs
// the pipeline. ?extended=true adds significance tests, advanced metrics,
// intersectional, temporal, and proxy-correlation layers.
func (s *Server) handleAnalyze(c *gin.Context) {
	upload, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}

	if err := s.analysisSem.Acquire(c.Request.Context(), 1); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analysis capacity unavailable"})
		return
	}
	defer s.analysisSem.Release(1)

	tmp, err := os.CreateTemp("", "fairlens-*"+filepath.Ext(upload.Filename))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to stage upload"})
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveUploadedFile(upload, tmpPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}

	ds, err := excel.NewDataReader(tmpPath).Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	extended, _ := strconv.ParseBool(c.DefaultQuery("extended", "true"))
	if !extended {
		result, err := s.service.Analyze(c.Request.Context(), ds)
		if err != nil {
			s.renderAnalysisError(c, err)
			return
		}
		s.cacheResult(&fairness.ExtendedResult{AnalysisResult: *result})
		c.JSON(http.StatusOK, result)
		return
	}

	result, err := s.service.AnalyzeExtended(c.Request.Context(), ds)
	if err != nil {
		s.renderAnalysisError(c, err)
		return
	}
	s.cacheResult(result)
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetAnalysis(c *gin.Context) {
	id, err := core.ParseAnalysisID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, ok := s.cachedResult(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleReport renders the cached result as a standalone HTML page.
func (s *Server) handleReport(c *gin.Context) {
	id, err := core.ParseAnalysisID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, ok := s.cachedResult(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", s.reporter.RenderHTML(&result.AnalysisResult))
}

func (s *Server) handleHistory(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history store not configured"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	rows, err := s.history.Recent(c.Request.Context(), limit)
	if err != nil {
		s.log.Error("history query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": rows})
}

func (s *Server) handleGetSettings(c *gin.Context) {
	if s.settings == nil {
		c.JSON(http.StatusOK, s.service.Config())
		return
	}
	cfg, err := s.settings.Load(c.Request.Context())
	if err != nil && !core.IsNotFoundError(err) {
		s.log.Error("settings load failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) handlePutSettings(c *gin.Context) {
	if s.settings == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "settings store not configured"})
		return
	}
	var cfg fairness.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.settings.Save(c.Request.Context(), cfg); err != nil {
		s.log.Error("settings save failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, cfg.Normalized())
}

// renderAnalysisError maps the domain's validation error kinds onto HTTP
// statuses; anything else is the opaque computation failure.
func (s *Server) renderAnalysisError(c *gin.Context, err error) {
	switch {
	case core.IsValidationError(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		s.log.Error("analysis failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
