package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/crm-portal/internal/api/http"
	"github.com/spec-kit/crm-portal/internal/api/http/handlers"
	"github.com/spec-kit/crm-portal/internal/auth"
	"github.com/spec-kit/crm-portal/internal/config"
	"github.com/spec-kit/crm-portal/internal/events"
	"github.com/spec-kit/crm-portal/internal/observability"
	"github.com/spec-kit/crm-portal/internal/persistence"
	"github.com/spec-kit/crm-portal/internal/repository"
	"github.com/spec-kit/crm-portal/internal/service"
	"github.com/spec-kit/crm-portal/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, cfg.Auth.RoleCacheTTL(), logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	todoRepo := repository.NewTodoRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	avatarRepo := repository.NewAvatarRepository(pool)
	auditRepo := repository.NewAuditLogRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)

	auditService := service.NewAuditService(cfg.Audit, auditRepo, logger)
	authService := service.NewAuthService(*cfg, userRepo)
	customerService := service.NewCustomerService(service.CustomerDependencies{
		CustomerRepo: customerRepo,
		Audit:        auditService,
		Dispatcher:   dispatcher,
	})
	projectService := service.NewProjectService(projectRepo)
	todoService := service.NewTodoService(todoRepo)
	profileService := service.NewProfileService(cfg.Profile, profileRepo, avatarRepo)
	userService := service.NewUserService(service.UserDependencies{
		UserRepo:   userRepo,
		Audit:      auditService,
		RoleCache:  redis,
		Dispatcher: dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	resolver := auth.NewIdentityResolver(authService.TokenManager(), userRepo, redis)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.Profile.MaxAvatarBytes + (1 << 20),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:      handlers.NewAuthHandler(authService),
		Customers: handlers.NewCustomersHandler(customerService),
		Projects:  handlers.NewProjectsHandler(projectService),
		Todos:     handlers.NewTodosHandler(todoService),
		Users:     handlers.NewUsersHandler(userService),
		Profile:   handlers.NewProfileHandler(profileService),
		AuditLogs: handlers.NewAuditLogsHandler(auditService),
		Resolver:  resolver,
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
