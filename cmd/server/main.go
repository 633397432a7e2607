package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appdocs "github.com/handwerkos/backend/internal/application/docs"
	appfinance "github.com/handwerkos/backend/internal/application/finance"
	appinventory "github.com/handwerkos/backend/internal/application/inventory"
	appnotification "github.com/handwerkos/backend/internal/application/notification"
	appsales "github.com/handwerkos/backend/internal/application/sales"
	appwork "github.com/handwerkos/backend/internal/application/work"
	"github.com/handwerkos/backend/internal/domain/finance"
	"github.com/handwerkos/backend/internal/domain/inventory"
	"github.com/handwerkos/backend/internal/domain/sales"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/work"
	"github.com/handwerkos/backend/internal/infrastructure/auth"
	"github.com/handwerkos/backend/internal/infrastructure/cache"
	"github.com/handwerkos/backend/internal/infrastructure/config"
	"github.com/handwerkos/backend/internal/infrastructure/event"
	"github.com/handwerkos/backend/internal/infrastructure/logger"
	"github.com/handwerkos/backend/internal/infrastructure/persistence"
	"github.com/handwerkos/backend/internal/infrastructure/worker"
	"github.com/handwerkos/backend/internal/interfaces/http/handler"
	"github.com/handwerkos/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting HandwerkOS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run schema migration", zap.Error(err))
	}
	log.Info("Database connected")

	// Repositories
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)
	offerRepo := persistence.NewGormOfferRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	timesheetRepo := persistence.NewGormTimesheetRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	materialRepo := persistence.NewGormMaterialRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)
	companyProvider := persistence.NewGormCompanyProvider(db.DB)

	// Multi-aggregate transactional writers
	quoteAcceptance := persistence.NewGormQuoteAcceptance(db.DB)
	orderWorkflow := persistence.NewGormOrderWorkflow(db.DB)
	stockAdjustment := persistence.NewGormStockAdjustment(db.DB)

	// Application services
	quoteService := appsales.NewQuoteService(quoteRepo, orderRepo, quoteAcceptance)
	offerService := appsales.NewOfferService(offerRepo)
	orderService := appwork.NewOrderService(orderRepo, projectRepo, orderWorkflow)
	projectService := appwork.NewProjectService(projectRepo, timesheetRepo, expenseRepo, movementRepo)
	timesheetService := appwork.NewTimesheetService(timesheetRepo, projectRepo)
	expenseService := appwork.NewExpenseService(expenseRepo, projectRepo)
	materialService := appinventory.NewMaterialService(materialRepo, movementRepo, stockAdjustment)
	invoiceService := appfinance.NewInvoiceService(invoiceRepo)
	documentService := appdocs.NewDocumentService(documentRepo)
	notificationService := appnotification.NewNotificationService(notificationRepo)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Event bus with audit trail for the allow-listed business events
	eventBus := event.NewInMemoryEventBus(log,
		event.WithHistoryCapacity(cfg.Event.HistoryCapacity),
		event.WithHandlerTimeout(cfg.Event.HandlerTimeout),
		event.WithAuditRecorder(auditRepo, event.AuditAllowList()),
	)

	quoteService.SetEventPublisher(eventBus)
	offerService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)
	projectService.SetEventPublisher(eventBus)
	timesheetService.SetEventPublisher(eventBus)
	materialService.SetEventPublisher(eventBus)
	invoiceService.SetEventPublisher(eventBus)
	documentService.SetEventPublisher(eventBus)

	// Idempotency store guards automations against event re-delivery
	idempotencyStore, err := cache.NewIdempotencyStore(
		cache.IdempotencyBackend(cfg.Event.IdempotencyBackend),
		cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	idempotency := shared.IdempotencyConfig{TTL: cfg.Event.IdempotencyTTL, Enabled: true}
	registerAutomation := func(eventType string, h shared.EventHandler) {
		wrapped := event.NewIdempotentHandler(h, idempotencyStore, log,
			event.WithIdempotencyConfig(idempotency),
		)
		eventBus.RegisterAutomation(eventType, wrapped)
	}

	// Workflow automations
	teamDirectory := appnotification.NewProjectTeamDirectory(projectRepo)
	registerAutomation(work.EventTypeOrderCompleted,
		appfinance.NewOrderCompletedHandler(invoiceService, invoiceRepo, log))
	registerAutomation(sales.EventTypeQuoteAccepted,
		appnotification.NewQuoteAcceptedHandler(notificationService, teamDirectory, log))
	registerAutomation(finance.EventTypeInvoiceSent,
		appnotification.NewInvoiceSentHandler(notificationService, teamDirectory, log))
	registerAutomation(inventory.EventTypeMaterialLowStock,
		appnotification.NewMaterialLowStockHandler(notificationService, teamDirectory, log))
	registerAutomation(work.EventTypeProjectStatusChanged,
		appnotification.NewProjectStatusChangedHandler(notificationService, log))
	registerAutomation(work.EventTypeProjectBudgetExceeded,
		appnotification.NewBudgetExceededHandler(notificationService, log))

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Periodic workers
	if cfg.Worker.Enabled {
		runner := worker.NewRunner(log,
			worker.NewOverdueInvoiceJob(cfg.Worker.OverdueInvoiceInterval, companyProvider, invoiceRepo, invoiceService, log),
			worker.NewQuoteExpiryJob(cfg.Worker.QuoteExpiryInterval, companyProvider, quoteRepo, quoteService, log),
			worker.NewBudgetCheckJob(cfg.Worker.BudgetCheckInterval, companyProvider, projectRepo, projectService, log),
			worker.NewNotificationCleanupJob(cfg.Worker.NotificationSweepInterval, notificationService, log),
		)
		if err := runner.Start(context.Background()); err != nil {
			log.Fatal("Failed to start worker runner", zap.Error(err))
		}
		defer runner.Stop()
		log.Info("Worker runner started")
	}

	// HTTP layer
	engine := router.Setup(cfg, log, jwtService, router.Handlers{
		Quotes:        handler.NewQuoteHandler(quoteService, log),
		Offers:        handler.NewOfferHandler(offerService, log),
		Orders:        handler.NewOrderHandler(orderService, log),
		Projects:      handler.NewProjectHandler(projectService, log),
		Timesheets:    handler.NewTimesheetHandler(timesheetService, log),
		Expenses:      handler.NewExpenseHandler(expenseService, log),
		Materials:     handler.NewMaterialHandler(materialService, log),
		Invoices:      handler.NewInvoiceHandler(invoiceService, log),
		Documents:     handler.NewDocumentHandler(documentService, log),
		Notifications: handler.NewNotificationHandler(notificationService, log),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}
