package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/govhotline/triage-service/internal/ai"
	httptransport "github.com/govhotline/triage-service/internal/api/http"
	"github.com/govhotline/triage-service/internal/api/http/handlers"
	"github.com/govhotline/triage-service/internal/config"
	"github.com/govhotline/triage-service/internal/events"
	"github.com/govhotline/triage-service/internal/observability"
	"github.com/govhotline/triage-service/internal/persistence"
	"github.com/govhotline/triage-service/internal/repository"
	"github.com/govhotline/triage-service/internal/service"
	"github.com/govhotline/triage-service/internal/tagging"
	"github.com/govhotline/triage-service/internal/worker"
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

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var ticketRepo repository.TicketRepository
	if pool := pg.PoolHandle(); pool != nil {
		ticketRepo = repository.NewTicketRepository(pool)
	} else {
		ticketRepo = repository.NewMemoryTicketRepository()
	}

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	analyzer := ai.NewClient(cfg.AI, logger)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Analyzer:   analyzer,
		Dispatcher: dispatcher,
		Logger:     logger,
		AITimeout:  cfg.AI.Timeout(),
	})
	statsService := service.NewStatisticsService(ticketRepo, redis.Client, cfg.Redis.StatsCacheTTL(), logger)
	detector := service.NewAlertDetector(ticketRepo, dispatcher, logger, cfg.Alert)

	center := service.NewNotificationCenter(logger)
	center.RegisterHandlers(dispatcher)

	worker.StartAlertWorker(ctx, detector, metrics, cfg.Alert.CycleInterval(), logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets:       handlers.NewTicketsHandler(ticketService, tagging.NewEngine(nil)),
		Analysis:      handlers.NewAnalysisHandler(statsService, detector),
		Notifications: handlers.NewNotificationsHandler(center),
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
