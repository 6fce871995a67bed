package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	identityapp "github.com/parceldesk/backend/internal/application/identity"
	partnerapp "github.com/parceldesk/backend/internal/application/partner"
	scoringapp "github.com/parceldesk/backend/internal/application/scoring"
	trackingapp "github.com/parceldesk/backend/internal/application/tracking"
	domainidentity "github.com/parceldesk/backend/internal/domain/identity"
	"github.com/parceldesk/backend/internal/infrastructure/config"
	"github.com/parceldesk/backend/internal/infrastructure/event"
	"github.com/parceldesk/backend/internal/infrastructure/logger"
	"github.com/parceldesk/backend/internal/infrastructure/persistence"
	"github.com/parceldesk/backend/internal/interfaces/http/handler"
	"github.com/parceldesk/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ParcelDesk backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	globalIdentityRepo := persistence.NewGormGlobalIdentityRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerEntryRepository(db.DB)

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Initialize identity resolution
	fingerprinter, err := domainidentity.NewFingerprinter(cfg.Identity.Pepper)
	if err != nil {
		log.Fatal("Failed to initialize fingerprinter", zap.Error(err))
	}
	resolutionService := identityapp.NewResolutionService(globalIdentityRepo, fingerprinter, log)

	// Initialize application services
	customerService := partnerapp.NewCustomerService(customerRepo, resolutionService, log)
	shipmentService := trackingapp.NewShipmentService(shipmentRepo, eventBus, log)
	ledgerService := scoringapp.NewLedgerService(ledgerRepo, log)

	// Subscribe scoring to terminal shipment events
	shipmentClosedHandler := scoringapp.NewShipmentClosedHandler(ledgerService, log)
	eventBus.Subscribe(shipmentClosedHandler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Set up HTTP routes
	engine := router.NewEngine(log)
	router.NewRouter(engine).
		Register(handler.NewCustomerHandler(customerService)).
		Register(handler.NewShipmentHandler(shipmentService)).
		Register(handler.NewScoreHandler(ledgerService)).
		Setup()

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: engine,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	log.Info("ParcelDesk backend started")

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down HTTP server", zap.Error(err))
	}

	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}

	log.Info("Shutdown complete")
}
