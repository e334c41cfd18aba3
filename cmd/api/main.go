package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/coffee-passport/internal/api/http"
	"github.com/spec-kit/coffee-passport/internal/api/http/handlers"
	"github.com/spec-kit/coffee-passport/internal/auth"
	"github.com/spec-kit/coffee-passport/internal/config"
	"github.com/spec-kit/coffee-passport/internal/events"
	"github.com/spec-kit/coffee-passport/internal/loyalty"
	"github.com/spec-kit/coffee-passport/internal/observability"
	"github.com/spec-kit/coffee-passport/internal/persistence"
	"github.com/spec-kit/coffee-passport/internal/repository"
	"github.com/spec-kit/coffee-passport/internal/service"
	"github.com/spec-kit/coffee-passport/internal/transport"
	"github.com/spec-kit/coffee-passport/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	pool := pg.PoolHandle()
	if pool != nil && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		customerRepo repository.CustomerRepository
		staffRepo    repository.StaffRepository
		auditRepo    repository.AuditRepository
		adminRepo    repository.AdminRepository
	)
	if pool != nil {
		customerRepo = repository.NewCustomerRepository(pool)
		staffRepo = repository.NewStaffRepository(pool)
		auditRepo = repository.NewAuditRepository(pool)
		adminRepo = repository.NewAdminRepository(pool)
	} else {
		customerRepo = repository.NewMemoryCustomerRepository()
		staffRepo = repository.NewMemoryStaffRepository()
		auditRepo = repository.NewMemoryAuditRepository()
		adminRepo = repository.NewMemoryAdminRepository()
	}

	metrics := observability.NewMetrics()
	eventBus := events.NewInMemoryDispatcher()
	bridge := transport.NewWhatsAppBridge(cfg.WhatsApp)

	engine := loyalty.NewEngine(customerRepo, loyalty.EngineConfig{
		Cooldown:    cfg.Loyalty.StampCooldown(),
		ResetPeriod: cfg.Loyalty.ResetPeriod(),
	})
	gate := loyalty.NewGate(staffRepo)
	dispatcher := loyalty.NewDispatcher(loyalty.DispatcherDependencies{
		Engine: engine,
		Gate:   gate,
		Audit:  auditRepo,
		Events: eventBus,
		Logger: logger,
	})

	messageService := service.NewMessageService(service.MessageDependencies{
		Dispatcher: dispatcher,
		Redis:      redis.Client,
		DedupTTL:   cfg.Loyalty.DedupTTL(),
		Metrics:    metrics,
		Logger:     logger,
	})
	adminService := service.NewAdminService(service.AdminDependencies{
		CustomerRepo: customerRepo,
		StaffRepo:    staffRepo,
		AuditRepo:    auditRepo,
		ActiveWindow: cfg.Loyalty.ActiveWindow(),
	})
	authService := service.NewAuthService(*cfg, adminRepo)
	notificationService := service.NewNotificationService(eventBus, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	adminMiddleware := auth.NewAdminMiddleware(authService.TokenManager(), adminRepo)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, bridge),
		Messages:        handlers.NewMessagesHandler(messageService),
		WhatsApp:        handlers.NewWhatsAppHandler(bridge),
		Auth:            handlers.NewAuthHandler(authService),
		Customers:       handlers.NewCustomersHandler(adminService),
		Staff:           handlers.NewStaffHandler(adminService),
		Analytics:       handlers.NewAnalyticsHandler(adminService),
		AdminMiddleware: adminMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
