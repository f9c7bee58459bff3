package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rustytiger/tigerbot/internal/announce"
	httptransport "github.com/rustytiger/tigerbot/internal/api/http"
	"github.com/rustytiger/tigerbot/internal/api/http/handlers"
	"github.com/rustytiger/tigerbot/internal/config"
	"github.com/rustytiger/tigerbot/internal/discord"
	"github.com/rustytiger/tigerbot/internal/events"
	"github.com/rustytiger/tigerbot/internal/observability"
	"github.com/rustytiger/tigerbot/internal/panel"
	"github.com/rustytiger/tigerbot/internal/service"
	"github.com/rustytiger/tigerbot/internal/ticket"
	"github.com/rustytiger/tigerbot/internal/transcript"
	"github.com/rustytiger/tigerbot/internal/worker"
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

	metrics := observability.NewMetrics()

	session, err := discord.NewSession(cfg.Discord.Token)
	if err != nil {
		logger.Fatal("failed to build session", zap.Error(err))
	}

	store, err := transcript.NewStore(cfg.Settings.Tickets.TranscriptDir)
	if err != nil {
		logger.Fatal("failed to init transcript store", zap.Error(err))
	}

	adapter := discord.NewAdapter(session)
	recorder := transcript.NewRecorder(adapter, store)
	dispatcher := events.NewInMemoryDispatcher()

	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	announcer := announce.NewService(adapter, dispatcher, logger, cfg.Settings)

	tickets := ticket.NewService(ticket.Dependencies{
		Channels:   adapter,
		Messenger:  adapter,
		Recorder:   recorder,
		Dispatcher: dispatcher,
		Logger:     logger,
		Settings:   cfg.Settings,
		Identity:   adapter,
	})
	panelDispatcher := panel.NewDispatcher(tickets, cfg.Settings)

	handler := discord.NewHandler(discord.HandlerDependencies{
		Adapter:   adapter,
		Tickets:   tickets,
		Panel:     panelDispatcher,
		Announcer: announcer,
		Settings:  cfg.Settings,
		Logger:    logger,
		Metrics:   metrics,
	})
	handler.Register(session)

	if err := session.Open(); err != nil {
		logger.Fatal("failed to open gateway connection", zap.Error(err))
	}
	defer session.Close()

	if err := discord.SyncCommands(session, cfg.Discord.GuildID, logger); err != nil {
		logger.Fatal("failed to sync commands", zap.Error(err))
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, session, store, metrics),
	})
	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	logger.Info("bot running",
		zap.String("env", cfg.App.Env),
		zap.String("addr", cfg.App.Addr()))

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
