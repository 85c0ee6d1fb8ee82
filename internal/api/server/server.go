package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "audio-relay/docs" // Generated swagger docs
	"audio-relay/internal/api/handlers"
	"audio-relay/internal/api/middleware"
	"audio-relay/internal/app/provider"
	"audio-relay/internal/app/scratch"
	"audio-relay/internal/config"
	"audio-relay/web"
)

// Server represents the relay HTTP server
type Server struct {
	config     *config.Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer creates a new relay server
func NewServer(
	cfg *config.Config,
	transcriber provider.Transcriber,
	store *scratch.Store,
	registry *prometheus.Registry,
	logger *zap.Logger,
) *Server {
	// Set Gin mode based on environment
	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case cfg.Environment == "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Server.MaxUploadBytes()

	// Apply global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Metrics(registry))
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))

	transcribeHandler := handlers.NewTranscribeHandler(transcriber, store, handlers.TranscribeOptions{
		Model:          cfg.Provider.Model,
		MaxUploadBytes: cfg.Server.MaxUploadBytes(),
	}, logger)
	providerHandler := handlers.NewProviderHandler(transcriber)

	api := router.Group("/api")
	{
		api.POST("/transcribe", transcribeHandler.Transcribe)
		api.GET("/provider", providerHandler.Get)
	}

	// Swagger documentation routes
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	web.NewStaticHandler().Register(router)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		config:     cfg,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
	}
}

// Start begins serving in the background. Serve errors other than a
// graceful shutdown are delivered on the returned channel.
func (s *Server) Start() <-chan error {
	s.logger.Info("Starting relay server",
		zap.String("address", s.httpServer.Addr),
		zap.String("environment", s.config.Environment),
		zap.String("provider", s.config.Provider.Name),
		zap.String("model", s.config.Provider.Model),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Failed to start server", zap.Error(err))
			errCh <- err
		}
		close(errCh)
	}()

	return errCh
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down relay server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("Relay server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
