package v1

import (
	"github.com/gin-gonic/gin"

	"gpustock/internal/domain/auth"
	"gpustock/internal/domain/catalogs/brandseries"
	"gpustock/internal/domain/catalogs/gpu"
	"gpustock/internal/domain/catalogs/gpufamily"
	"gpustock/internal/domain/catalogs/gpuseries"
	"gpustock/internal/domain/catalogs/manufacturer"
	"gpustock/internal/domain/catalogs/memorytype"
	"gpustock/internal/domain/ledger"
	"gpustock/internal/domain/products/videocard"
	"gpustock/internal/domain/reports"
	"gpustock/internal/infrastructure/http/v1/handlers"
	"gpustock/internal/infrastructure/http/v1/middleware"
	"gpustock/internal/infrastructure/storage/postgres"
	"gpustock/pkg/logger"
)

// RouterConfig holds the wired services the API exposes.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// Version reported by the info endpoint
	Version string

	AuthService *auth.Service

	// Catalog services
	Manufacturers *manufacturer.Service
	MemoryTypes   *memorytype.Service
	GpuFamilies   *gpufamily.Service
	GpuSeries     *gpuseries.Service
	Gpus          *gpu.Service
	BrandSeries   *brandseries.Service

	// Product and ledger services
	Videocards *videocard.Service
	Ledger     *ledger.Service

	Reports *reports.Service

	// Audit backs the ledger entry history endpoint
	Audit *postgres.AuditService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		publicAuth := apiV1.Group("/auth")
		protectedAuth := apiV1.Group("/auth")
		protectedAuth.Use(middleware.Auth(cfg.JWTValidator))
		authHandler.RegisterRoutes(publicAuth, protectedAuth)

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		authHandler.RegisterUserRoutes(protected.Group("/users"))

		registerCatalogRoutes(protected, baseHandler, cfg)
		registerProductRoutes(protected, baseHandler, cfg)
		registerLedgerRoutes(protected, baseHandler, cfg)
		registerReportRoutes(protected, baseHandler, cfg)
	}

	return router
}

// registerCatalogRoutes registers reference data endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")

	// --- MANUFACTURERS ---
	{
		handler := handlers.NewManufacturerHandler(base, cfg.Manufacturers)
		group := catalogs.Group("/manufacturers")
		group.GET("/countries", handler.ListCountries)
		RegisterCatalogRoutes(group, handler)
	}

	// --- MEMORY TYPES ---
	{
		handler := handlers.NewMemoryTypeHandler(base, cfg.MemoryTypes)
		RegisterCatalogRoutes(catalogs.Group("/memory-types"), handler)
	}

	// --- GPU FAMILIES ---
	{
		handler := handlers.NewGpuFamilyHandler(base, cfg.GpuFamilies)
		RegisterCatalogRoutes(catalogs.Group("/gpu-families"), handler)
	}

	// --- GPU SERIES ---
	{
		handler := handlers.NewGpuSeriesHandler(base, cfg.GpuSeries)
		group := catalogs.Group("/gpu-series")
		group.GET("/by-family/:familyId", handler.ListByFamily)
		RegisterCatalogRoutes(group, handler)
	}

	// --- GPUS ---
	{
		handler := handlers.NewGpuHandler(base, cfg.Gpus)
		RegisterCatalogRoutes(catalogs.Group("/gpus"), handler)
	}

	// --- BRAND SERIES ---
	{
		handler := handlers.NewBrandSeriesHandler(base, cfg.BrandSeries)
		group := catalogs.Group("/brand-series")
		group.GET("/by-manufacturer/:manufacturerId", handler.ListByManufacturer)
		RegisterCatalogRoutes(group, handler)
	}
}

// registerProductRoutes registers videocard endpoints.
func registerProductRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewVideocardHandler(base, cfg.Videocards)

	cards := rg.Group("/videocards")
	cards.GET("", handler.List)
	cards.GET("/:id", handler.Get)
	cards.GET("/by-sku/:sku", handler.GetBySku)
	cards.POST("", middleware.RequireStaff(), handler.Create)
	cards.PUT("/:id", middleware.RequireStaff(), handler.Update)
	cards.DELETE("/:id", middleware.RequireStaff(), handler.Delete)
}

// registerLedgerRoutes registers stock ledger endpoints.
func registerLedgerRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewLedgerHandler(base, cfg.Ledger, cfg.Audit)

	entries := rg.Group("/stock-ledger")
	entries.Use(middleware.RequireStaff())
	entries.GET("", handler.List)
	entries.GET("/max-returnable", handler.MaxReturnable)
	entries.GET("/:id", handler.Get)
	entries.GET("/:id/history", handler.History)
	entries.POST("", handler.Create)
	entries.PUT("/:id", handler.Update)
	entries.DELETE("/:id", handler.Delete)
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewReportsHandler(base, cfg.Reports)

	reportsGroup := rg.Group("/reports")
	reportsGroup.Use(middleware.RequireStaff())
	reportsGroup.GET("/dashboard", handler.GetDashboard)
	reportsGroup.GET("/stock-export", handler.ExportStockReport)
}
