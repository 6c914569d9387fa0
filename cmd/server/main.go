package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/fatoora/backend/internal/application/billing"
	catalogapp "github.com/fatoora/backend/internal/application/catalog"
	inventoryapp "github.com/fatoora/backend/internal/application/inventory"
	partnerapp "github.com/fatoora/backend/internal/application/partner"
	reportapp "github.com/fatoora/backend/internal/application/report"
	taxapp "github.com/fatoora/backend/internal/application/tax"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/fatoora/backend/internal/domain/tax"
	"github.com/fatoora/backend/internal/infrastructure/cache"
	"github.com/fatoora/backend/internal/infrastructure/config"
	"github.com/fatoora/backend/internal/infrastructure/event"
	"github.com/fatoora/backend/internal/infrastructure/logger"
	"github.com/fatoora/backend/internal/infrastructure/persistence"
	"github.com/fatoora/backend/internal/infrastructure/scheduler"
	"github.com/fatoora/backend/internal/interfaces/http/handler"
	"github.com/fatoora/backend/internal/interfaces/http/middleware"
	"github.com/fatoora/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Fatoora Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with a zap-backed gorm logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
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

	// Repositories
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)
	proformaRepo := persistence.NewGormProformaRepository(db.DB)
	creditNoteRepo := persistence.NewGormCreditNoteRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	clientCategoryRepo := persistence.NewGormClientCategoryRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	stockCountRepo := persistence.NewGormStockCountRepository(db.DB)
	taxRepo := persistence.NewGormTaxRepository(db.DB)
	taxRuleRepo := persistence.NewGormTaxRuleRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	settingsRepo := persistence.NewGormCompanySettingsRepository(db.DB)

	billingScope := persistence.NewGormBillingTransactionScope(db.DB)
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)

	// Event bus with the standard subscribers
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewLowStockAlertHandler(log))
	eventBus.Subscribe(event.NewAuditTrailHandler(log))

	// Idempotency store for payment creation
	var idempotencyStore shared.IdempotencyStore
	if cfg.Redis.Enabled {
		store, err := cache.NewRedisIdempotencyStore(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		idempotencyStore = store
		log.Info("Using redis idempotency store",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	} else {
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
		log.Info("Using in-memory idempotency store")
	}
	defer func() {
		_ = idempotencyStore.Close()
	}()

	// Application services
	policy := billingapp.Policy{
		FiscalStampAmount: cfg.Billing.FiscalStampAmount,
		ReminderCadence:   cfg.Billing.ReminderCadence,
		IdempotencyTTL:    cfg.Billing.IdempotencyTTL,
	}
	resolver := tax.NewResolver(taxRepo, taxRuleRepo)
	builder := billingapp.NewLineItemBuilder(productRepo, clientRepo, resolver)
	settingsService := billingapp.NewSettingsService(settingsRepo, policy)

	invoiceService := billingapp.NewInvoiceService(invoiceRepo, builder, billingScope, policy)
	invoiceService.SetEventPublisher(eventBus)
	invoiceService.SetSettingsProvider(settingsService)

	quoteService := billingapp.NewQuoteService(quoteRepo, builder, billingScope, policy)
	quoteService.SetEventPublisher(eventBus)
	quoteService.SetSettingsProvider(settingsService)

	proformaService := billingapp.NewProformaService(proformaRepo, builder, billingScope)
	proformaService.SetEventPublisher(eventBus)

	creditNoteService := billingapp.NewCreditNoteService(creditNoteRepo, invoiceRepo, builder, billingScope)
	creditNoteService.SetEventPublisher(eventBus)

	paymentService := billingapp.NewPaymentService(paymentRepo, billingScope, policy)
	paymentService.SetEventPublisher(eventBus)
	paymentService.SetIdempotencyStore(idempotencyStore)

	catalogService := catalogapp.NewService(productRepo, categoryRepo)
	catalogService.SetEventPublisher(eventBus)

	partnerService := partnerapp.NewService(clientRepo, clientCategoryRepo)

	stockService := inventoryapp.NewStockService(productRepo, movementRepo, inventoryScope)
	stockService.SetEventPublisher(eventBus)

	stockCountService := inventoryapp.NewStockCountService(stockCountRepo, productRepo, inventoryScope)
	stockCountService.SetEventPublisher(eventBus)

	taxService := taxapp.NewService(taxRepo, taxRuleRepo, productRepo, clientRepo)
	reportService := reportapp.NewService(reportRepo)

	// Background sweeps for overdue invoices and quote reminders
	if cfg.Scheduler.Enabled {
		sweeper := scheduler.NewSweepScheduler(
			cfg.Scheduler.SweepInterval,
			invoiceService,
			quoteService,
			persistence.NewGormCompanySource(db.DB),
			log,
		)
		sweeper.Start(context.Background())
		defer sweeper.Stop()
	}

	// HTTP server
	middleware.SetupValidator()
	engine := router.New(cfg, log, router.Handlers{
		Invoice:    handler.NewInvoiceHandler(invoiceService),
		Quote:      handler.NewQuoteHandler(quoteService),
		Proforma:   handler.NewProformaHandler(proformaService),
		CreditNote: handler.NewCreditNoteHandler(creditNoteService),
		Payment:    handler.NewPaymentHandler(paymentService),
		Product:    handler.NewProductHandler(catalogService),
		Client:     handler.NewClientHandler(partnerService),
		Stock:      handler.NewStockHandler(stockService),
		StockCount: handler.NewStockCountHandler(stockCountService),
		Tax:        handler.NewTaxHandler(taxService),
		Report:     handler.NewReportHandler(reportService),
		Settings:   handler.NewSettingsHandler(settingsService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
