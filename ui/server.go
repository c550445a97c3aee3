package ui

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"fairlens/app"
	"fairlens/domain/core"
	"fairlens/domain/fairness"
	"fairlens/internal"
	"fairlens/ports"
)

// maxConcurrentAnalyses bounds in-flight pipeline runs; requests beyond the
// bound wait on the semaphore.
const maxConcurrentAnalyses = 2

// resultCacheSize caps how many finished results stay addressable for the
// report endpoint.
const resultCacheSize = 50

// Server exposes the analysis pipeline and its collaborators over HTTP.
type Server struct {
	router   *gin.Engine
	service  *app.AnalysisService
	reporter ports.Reporter
	history  ports.HistorySink
	settings ports.SettingsStore
	log      *internal.Logger

	analysisSem *semaphore.Weighted

	mu      sync.RWMutex
	results map[core.AnalysisID]*fairness.ExtendedResult
	order   []core.AnalysisID
}

// NewServer wires the HTTP surface. History and settings may be nil when
// no database is configured; their endpoints then answer 503.
func NewServer(service *app.AnalysisService, reporter ports.Reporter, history ports.HistorySink, settings ports.SettingsStore) *Server {
	s := &Server{
		router:      gin.New(),
		service:     service,
		reporter:    reporter,
		history:     history,
		settings:    settings,
		log:         internal.DefaultLogger,
		analysisSem: semaphore.NewWeighted(maxConcurrentAnalyses),
		results:     make(map[core.AnalysisID]*fairness.ExtendedResult),
	}
	s.router.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	api.POST("/analyses", s.handleAnalyze)
	api.GET("/analyses/:id", s.handleGetAnalysis)
	api.GET("/analyses/:id/report", s.handleReport)
	api.GET("/history", s.handleHistory)
	api.GET("/settings", s.handleGetSettings)
	api.PUT("/settings", s.handlePutSettings)
}

// Run starts the HTTP server on the given address
func (s *Server) Run(addr string) error {
	s.log.Info("fairlens API listening on %s", addr)
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// cacheResult remembers a finished result for the report endpoint,
// evicting the oldest entry past the cache cap.
func (s *Server) cacheResult(result *fairness.ExtendedResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.ID] = result
	s.order = append(s.order, result.ID)
	if len(s.order) > resultCacheSize {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.results, oldest)
	}
}

func (s *Server) cachedResult(id core.AnalysisID) (*fairness.ExtendedResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[id]
	return r, ok
}
