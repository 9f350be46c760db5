package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/chibox/chibox-server/internal/bootstrap"
	"github.com/chibox/chibox-server/internal/caseopen"
	"github.com/chibox/chibox-server/internal/catalog"
	"github.com/chibox/chibox-server/internal/config"
	"github.com/chibox/chibox-server/internal/eventlog"
	"github.com/chibox/chibox-server/internal/livefeed"
	"github.com/chibox/chibox-server/internal/minigame"
	"github.com/chibox/chibox-server/internal/scheduler"
	"github.com/chibox/chibox-server/internal/server"
	"github.com/chibox/chibox-server/internal/session"
	"github.com/chibox/chibox-server/internal/subscription"
	"github.com/chibox/chibox-server/internal/upgrade"
	"github.com/chibox/chibox-server/internal/user"
	"github.com/chibox/chibox-server/internal/worker"
)

// @title ChiBox API
// @version 1.0
// @description Case opening, upgrades and daily mini-games.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	games, err := config.LoadGameConfig(cfg.GameConfigPath)
	if err != nil {
		return err
	}
	startingBalance, err := cfg.StartingBalanceDecimal()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		return err
	}

	events, err := bootstrap.InitializeEventSystem(cfg, repos.Checks)
	if err != nil {
		repos.Close()
		return err
	}

	catalogCache := catalog.New(repos.Store, cfg.CatalogSize, cfg.CatalogTTL)
	if err := bootstrap.SyncCatalog(ctx, cfg, games, repos.Store, catalogCache); err != nil {
		events.Close()
		repos.Close()
		return err
	}

	sessions, err := session.NewManager(repos.Sessions, cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		events.Close()
		repos.Close()
		return err
	}

	resetClock := cfg.ResetClock()
	subscriptionService := subscription.NewService(repos.Store, games.Subscription, subscription.DefaultCacheTTL)
	caseService := caseopen.NewService(caseopen.Deps{
		Economy:   repos.Store,
		Catalog:   catalogCache,
		Inventory: repos.Store,
		Bonuses:   subscriptionService,
		History:   repos.History,
		Locker:    repos.Locker,
		Bus:       events.Bus,
	}, cfg.ProtectionWindow)
	upgradeService := upgrade.NewService(repos.Store, repos.Locker, events.Bus, games.Upgrade)
	gameService := minigame.NewService(repos.Store, repos.Store, repos.Store, catalogCache,
		repos.Locker, events.Bus, games.Subscription, games.Minigames, resetClock)

	hub := livefeed.NewHub()
	hub.Start()

	activityLog := eventlog.NewService(repos.EventLog)
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:      events.Bus,
		Subscriptions: subscriptionService,
		LiveFeed:      hub,
		ActivityLog:   activityLog,
	}); err != nil {
		hub.Stop()
		events.Close()
		repos.Close()
		return err
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueue, cfg.WorkerTimeout)
	pool.Start()
	jobs := scheduler.New(pool)
	jobs.Schedule(cfg.EventLogCleanupInterval, eventlog.NewCleanupJob(activityLog, cfg.EventLogRetentionDays))
	resetWorker := worker.NewDailyResetWorker(repos.Store, events.Bus, resetClock, pool)
	if err := resetWorker.Start(); err != nil {
		jobs.Stop()
		pool.Stop()
		hub.Stop()
		events.Close()
		repos.Close()
		return err
	}

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		Version:        cfg.Version,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		RequestTimeout: cfg.RequestTimeout,
		AllowedOrigins: cfg.AllowedOrigins,
		TrustedProxies: cfg.TrustedProxies,
		RateLimit:      cfg.RateLimit,
		RateWindow:     cfg.RateWindow,
	}, server.Deps{
		Users:         user.NewService(repos.Store, startingBalance),
		Sessions:      sessions,
		Subscriptions: subscriptionService,
		Cases:         caseService,
		Upgrades:      upgradeService,
		Games:         gameService,
		LiveFeed:      hub,
		History:       activityLog,
		Checks:        repos.Checks,
	})

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:           srv,
		Scheduler:        jobs,
		DailyResetWorker: resetWorker,
		WorkerPool:       pool,
		LiveFeed:         hub,
		Events:           events,
		Repositories:     repos,
	})

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
