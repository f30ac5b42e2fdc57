// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"simrs/internal/domain/billing"
	"simrs/internal/domain/inventory"
	"simrs/internal/domain/patient"
	"simrs/internal/domain/reports"
	"simrs/internal/domain/voice"
	"simrs/internal/infrastructure/http/v1/handlers"
	"simrs/internal/infrastructure/http/v1/middleware"
	"simrs/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Store backs the readiness probe; nil means in-memory degraded mode
	Store handlers.Pinger

	// Journal backs the mutation history endpoint; nil disables it
	Journal handlers.JournalReader

	// Domain services
	Patients  *patient.Service
	Inventory *inventory.Service
	Billing   *billing.Service
	Reports   *reports.Service
	Voice     *voice.Service

	// Registry receives the service metrics; nil uses a private registry
	Registry *prometheus.Registry
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	metrics := middleware.NewMetrics(registry)

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(metrics.Handler())
	router.Use(middleware.ErrorHandler())

	// Health and metrics endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Store)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// API v1
	baseHandler := handlers.NewBaseHandler()
	api := router.Group("/api/v1")
	{
		patientsHandler := handlers.NewPatientsHandler(baseHandler, cfg.Patients, metrics.PersistenceWarnings)
		patients := api.Group("/patients")
		{
			patients.GET("", patientsHandler.List)
			patients.POST("", patientsHandler.Create)
			patients.GET("/:id", patientsHandler.Get)
			patients.PUT("/:id", patientsHandler.Update)
			patients.DELETE("/:id", patientsHandler.Delete)
		}

		inventoryHandler := handlers.NewInventoryHandler(baseHandler, cfg.Inventory, metrics.PersistenceWarnings)
		stock := api.Group("/inventory")
		{
			stock.GET("", inventoryHandler.List)
			stock.POST("/orders", inventoryHandler.SubmitOrder)
		}

		invoicesHandler := handlers.NewInvoicesHandler(baseHandler, cfg.Billing, metrics.PersistenceWarnings)
		invoices := api.Group("/invoices")
		{
			invoices.GET("", invoicesHandler.List)
			invoices.GET("/summary", invoicesHandler.Summary)
			invoices.GET("/export.csv", invoicesHandler.ExportCSV)
			invoices.GET("/:id", invoicesHandler.Get)
			invoices.POST("/:id/pay", invoicesHandler.MarkPaid)
		}

		dashboardHandler := handlers.NewDashboardHandler(baseHandler, cfg.Reports)
		api.GET("/dashboard", dashboardHandler.Get)

		if cfg.Journal != nil {
			journalHandler := handlers.NewJournalHandler(baseHandler, cfg.Journal)
			api.GET("/journal/:slot", journalHandler.History)
		}

		voiceHandler := handlers.NewVoiceHandler(baseHandler, cfg.Voice)
		sessions := api.Group("/voice/sessions")
		{
			sessions.POST("", voiceHandler.Start)
			sessions.POST("/:id/actions", voiceHandler.Dispatch)
			sessions.DELETE("/:id", voiceHandler.Close)
		}
	}

	return router
}
