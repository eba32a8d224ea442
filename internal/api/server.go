// Package api exposes the evaluation engine over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/medrisk-server/internal/config"
	"github.com/medrisk-server/internal/engine"
	"github.com/medrisk-server/internal/feedback"
	"github.com/medrisk-server/internal/middleware"
	"github.com/medrisk-server/internal/repository"
	"github.com/medrisk-server/pkg/external"
)

// Server represents the HTTP server.
type Server struct {
	configManager *config.Manager
	engine        *engine.Engine
	repo          *repository.AssessmentRepository
	feedback      feedback.Store
	narrator      *external.NarratorClient
	results       *lru.Cache[string, []byte]
	log           *logrus.Logger
	router        *gin.Engine
	server        *http.Server
}

// Deps carries the optional collaborators the server wires into handlers.
// Any of them may be nil; the matching endpoints then report the feature
// as disabled instead of failing.
type Deps struct {
	Repo     *repository.AssessmentRepository
	Feedback feedback.Store
	Narrator *external.NarratorClient
}

// NewServer creates a new HTTP server instance.
func NewServer(configManager *config.Manager, eng *engine.Engine, deps Deps, logger *logrus.Logger) (*Server, error) {
	cfg := configManager.GetConfig()

	// Set Gin mode based on environment
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if logger == nil {
		logger = logrus.New()
	}

	cacheSize := cfg.Server.ResultCacheSize
	if cacheSize <= 0 {
		cacheSize = 512
	}
	results, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(corsMiddleware())

	server := &Server{
		configManager: configManager,
		engine:        eng,
		repo:          deps.Repo,
		feedback:      deps.Feedback,
		narrator:      deps.Narrator,
		results:       results,
		log:           logger,
		router:        router,
	}

	server.setupRoutes()

	return server, nil
}

// Router returns the underlying gin engine, used by tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.configManager.GetServerConfig()
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the API routes.
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/risk", s.handleRisk)
		v1.POST("/interactions", s.handleInteractions)
		v1.POST("/contraindications", s.handleContraindications)

		v1.GET("/catalog/medications", s.handleCatalogMedications)

		v1.GET("/assessments/stats", s.handleAssessmentStats)
		v1.GET("/assessments/:id", s.handleGetAssessment)
		v1.GET("/patients/:id/assessments", s.handleListPatientAssessments)

		v1.POST("/feedback", s.handleSaveFeedback)
		v1.GET("/feedback", s.handleListFeedback)
		v1.GET("/feedback/export", s.handleExportFeedback)
		v1.DELETE("/feedback/:id", s.handleDeleteFeedback)
	}
}

// corsMiddleware adds CORS headers to responses.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Correlation-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Length, X-Correlation-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
