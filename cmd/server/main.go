// Package main is the entry point for the gpustock API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gpustock/internal/config"
	"gpustock/internal/core/entity"
	"gpustock/internal/core/id"
	"gpustock/internal/domain"
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
	v1 "gpustock/internal/infrastructure/http/v1"
	"gpustock/internal/infrastructure/storage/postgres"
	"gpustock/internal/infrastructure/storage/postgres/auth_repo"
	"gpustock/internal/infrastructure/storage/postgres/catalog_repo"
	"gpustock/internal/infrastructure/storage/postgres/ledger_repo"
	"gpustock/internal/infrastructure/storage/postgres/product_repo"
	"gpustock/internal/infrastructure/storage/postgres/report_repo"
	"gpustock/pkg/logger"
)

var version = "dev"

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: os.Getenv("APP_ENV") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting gpustock server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.DSN())
	poolCfg.MaxConns = cfg.DBMaxConns
	poolCfg.MinConns = cfg.DBMinConns

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalw("failed to ping database", "error", err)
	}
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- JWT Service ---
	jwtConfig := auth.DefaultJWTConfig(cfg.JWTSecret)
	jwtConfig.AccessTokenTTL = cfg.AccessTokenTTL
	jwtService := auth.NewJWTService(jwtConfig)

	// --- Auth ---
	userRepo := auth_repo.NewUserRepo(txManager)
	authService := auth.NewService(userRepo, jwtService, txManager)

	// --- Catalogs ---
	manufacturerRepo := catalog_repo.NewManufacturerRepo(txManager)
	memoryTypeRepo := catalog_repo.NewMemoryTypeRepo(txManager)
	gpuFamilyRepo := catalog_repo.NewGpuFamilyRepo(txManager)
	gpuSeriesRepo := catalog_repo.NewGpuSeriesRepo(txManager)
	gpuRepo := catalog_repo.NewGpuRepo(txManager)
	brandSeriesRepo := catalog_repo.NewBrandSeriesRepo(txManager)

	manufacturerService := manufacturer.NewService(manufacturerRepo, txManager)
	memoryTypeService := memorytype.NewService(memoryTypeRepo, txManager)
	gpuFamilyService := gpufamily.NewService(gpuFamilyRepo, txManager)
	gpuSeriesService := gpuseries.NewService(gpuSeriesRepo, gpuFamilyRepo, txManager)
	gpuService := gpu.NewService(gpuRepo, gpuSeriesRepo, txManager)
	brandSeriesService := brandseries.NewService(brandSeriesRepo, manufacturerRepo, txManager)

	// --- Products and stock ledger ---
	cardRepo := product_repo.NewVideocardRepo(txManager)
	entryRepo := ledger_repo.NewEntryRepo(txManager)

	ledgerService := ledger.NewService(entryRepo, cardRepo, txManager)
	cardService := videocard.NewService(cardRepo, ledgerService, txManager)

	// --- Audit trail for reference data ---
	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}
	registerAuditHooks(auditService, "manufacturer", manufacturerService.Hooks())
	registerAuditHooks(auditService, "memory_type", memoryTypeService.Hooks())
	registerAuditHooks(auditService, "gpu_family", gpuFamilyService.Hooks())
	registerAuditHooks(auditService, "gpu_series", gpuSeriesService.Hooks())
	registerAuditHooks(auditService, "gpu", gpuService.Hooks())
	registerAuditHooks(auditService, "brand_series", brandSeriesService.Hooks())
	ledgerService.SetAuditor(func(ctx context.Context, action string, e *ledger.Entry) error {
		return auditService.LogChange(ctx, "stock_ledger", e.ID, postgres.AuditAction(action), map[string]any{"entry": e})
	})

	// --- Reports ---
	reportRepo := report_repo.NewReportRepo(txManager)
	reportService := reports.NewService(reportRepo, txManager)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:         pool,
		Logger:       log,
		JWTValidator: jwtService,
		Version:      version,

		AuthService: authService,

		Manufacturers: manufacturerService,
		MemoryTypes:   memoryTypeService,
		GpuFamilies:   gpuFamilyService,
		GpuSeries:     gpuSeriesService,
		Gpus:          gpuService,
		BrandSeries:   brandSeriesService,

		Videocards: cardService,
		Ledger:     ledgerService,

		Reports: reportService,
		Audit:   auditService,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// auditable is the subset of entity behavior the audit trail needs.
type auditable interface {
	entity.Validatable
	GetID() id.ID
}

// registerAuditHooks records catalog mutations into the audit log.
// After-hooks run once the write is committed; a failed audit write is
// logged without failing the request.
func registerAuditHooks[T auditable](audit *postgres.AuditService, entityType string, hooks *domain.HookRegistry[T]) {
	hooks.On(domain.AfterCreate, func(ctx context.Context, e T) error {
		return audit.LogChange(ctx, entityType, e.GetID(), postgres.AuditActionCreate, map[string]any{"entity": e})
	})
	hooks.On(domain.AfterUpdate, func(ctx context.Context, e T) error {
		return audit.LogChange(ctx, entityType, e.GetID(), postgres.AuditActionUpdate, map[string]any{"entity": e})
	})
	hooks.On(domain.AfterDelete, func(ctx context.Context, e T) error {
		return audit.LogChange(ctx, entityType, e.GetID(), postgres.AuditActionDelete, nil)
	})
}
