package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexconsult/brdocs-api/internal/api/handlers"
	"github.com/nexconsult/brdocs-api/internal/api/middleware"
	"github.com/nexconsult/brdocs-api/internal/config"
	"github.com/nexconsult/brdocs-api/internal/models"
	"github.com/nexconsult/brdocs-api/internal/services"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Server represents the HTTP server
type Server struct {
	Router      *gin.Engine
	config      *config.Config
	logger      *logrus.Logger
	services    *services.Container
	rateLimiter *middleware.RateLimiter
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, logger *logrus.Logger, services *services.Container) *Server {
	server := &Server{
		config:   cfg,
		logger:   logger,
		services: services,
	}

	server.setupRouter()
	return server
}

// Close stops background work started by the server
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// setupRouter configures the router with all routes and middleware
func (s *Server) setupRouter() {
	s.Router = gin.New()
	s.Router.HandleMethodNotAllowed = true

	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Logger(s.logger))
	s.Router.Use(middleware.Recovery(s.logger))
	s.Router.Use(middleware.Metrics(s.services.MetricsService))
	s.Router.Use(middleware.CORS(s.config.Security.CORS))
	s.Router.Use(middleware.Security())

	healthHandler := handlers.NewHealthHandler(s.services, s.logger)
	metricsHandler := handlers.NewMetricsHandler(s.services.MetricsService, s.logger)

	// Probes and metrics are not rate limited
	s.Router.GET("/health", healthHandler.GetHealth)
	s.Router.GET("/health/ready", healthHandler.GetReadiness)
	s.Router.GET("/health/live", healthHandler.GetLiveness)
	s.Router.GET("/metrics", metricsHandler.GetMetrics)
	s.Router.GET("/metrics/prometheus", metricsHandler.Prometheus())

	if !s.config.IsProduction() {
		s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		s.Router.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
		})
	}

	s.rateLimiter = middleware.NewRateLimiter(s.config.Security.RateLimit)
	apiGroup := s.Router.Group("/api", s.rateLimiter.Middleware())

	apiGroup.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	v1 := apiGroup.Group("/v1")
	{
		documentHandler := handlers.NewDocumentHandler(s.services.DocumentService, s.logger)
		documents := v1.Group("/documents")
		{
			documents.GET("/analyze", documentHandler.Analyze)
			documents.GET("/detect", documentHandler.Detect)
			documents.POST("/validate", documentHandler.Validate)
			documents.POST("/format", documentHandler.Format)
			documents.POST("/batch", documentHandler.Batch)
			documents.POST("/extract", documentHandler.Extract)
			documents.GET("/generate", documentHandler.Generate)
		}

		v1.GET("/cpf/:cpf", documentHandler.GetCPF)
		v1.GET("/cnpj/:cnpj", documentHandler.GetCNPJ)

		authHandler := handlers.NewAuthHandler(s.services.AuthService, s.logger)
		auth := v1.Group("/auth")
		{
			auth.POST("/normalize", authHandler.Normalize)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
		}

		currencyHandler := handlers.NewCurrencyHandler()
		currency := v1.Group("/currency")
		{
			currency.GET("/format", currencyHandler.Format)
			currency.GET("/parse", currencyHandler.Parse)
		}

		cacheHandler := handlers.NewCacheHandler(s.services.CacheService, s.services.DocumentService, s.logger)
		cache := v1.Group("/cache", middleware.AdminAuth(s.config.Security.AdminToken))
		{
			cache.GET("/stats", cacheHandler.GetStats)
			cache.DELETE("/clear", cacheHandler.Clear)
			cache.DELETE("/:document", cacheHandler.Delete)
		}
	}

	s.Router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:     "Not Found",
			Message:   "The requested resource was not found",
			Code:      "NOT_FOUND",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	})

	s.Router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, models.ErrorResponse{
			Error:     "Method Not Allowed",
			Message:   c.Request.Method + " is not allowed for this resource",
			Code:      "METHOD_NOT_ALLOWED",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	})
}
