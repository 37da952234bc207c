package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bonushunt/bonushunt-backend/internal/bootstrap"
	"github.com/bonushunt/bonushunt-backend/internal/config"
	"github.com/bonushunt/bonushunt-backend/internal/database"
	"github.com/bonushunt/bonushunt-backend/internal/event"
	"github.com/bonushunt/bonushunt-backend/internal/guess"
	"github.com/bonushunt/bonushunt-backend/internal/hunt"
	"github.com/bonushunt/bonushunt-backend/internal/jackpot"
	"github.com/bonushunt/bonushunt-backend/internal/notification"
	"github.com/bonushunt/bonushunt-backend/internal/scheduler"
	"github.com/bonushunt/bonushunt-backend/internal/server"
	"github.com/bonushunt/bonushunt-backend/internal/settlement"
	"github.com/bonushunt/bonushunt-backend/internal/sse"
	"github.com/bonushunt/bonushunt-backend/internal/tournament"
	"github.com/bonushunt/bonushunt-backend/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	if err := run(cfg); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, 5*time.Minute, 30*time.Minute)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := database.Migrate(dbPool); err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	eventBus := event.NewMemoryBus()
	settlementCfg := cfg.SettlementConfig()

	huntService := hunt.NewService(repos.Hunt)
	guessService := guess.NewService(repos.Guess, guess.Bounds{Min: cfg.GuessMin, Max: cfg.GuessMax})
	tournamentService, err := tournament.NewService(repos.Tournament, eventBus, settlementCfg.TournamentWinLimit)
	if err != nil {
		return err
	}
	jackpotService := jackpot.NewService(repos.Jackpot, eventBus, rand.NewSource(time.Now().UnixNano()))
	settlementService := settlement.NewService(repos.Settlement, jackpotService, eventBus, settlementCfg)

	pool := worker.NewPool(cfg.WorkerCount, cfg.QueueSize)
	pool.Start()

	renderer := notification.NewRenderer(cfg.NotifyLocale, cfg.NotifyCurrency)
	notificationService := notification.NewService(renderer, notification.LogSender{}, repos.EventLog)

	bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:        eventBus,
		EventLog:        repos.EventLog,
		Pool:            pool,
		NotificationSvc: notificationService,
	})

	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub, eventBus).Subscribe()

	var sched *scheduler.Scheduler
	if cfg.TournamentRefreshMin > 0 {
		sched = scheduler.New(pool)
		sched.Schedule(time.Duration(cfg.TournamentRefreshMin)*time.Minute, tournament.NewRefreshJob(tournamentService))
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, server.Services{
		Hunt:       huntService,
		Guess:      guessService,
		Settlement: settlementService,
		Tournament: tournamentService,
		Jackpot:    jackpotService,
		EventLog:   repos.EventLog,
		Stream:     hub,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if sched != nil {
			sched.Stop()
		}
		pool.Stop()
		hub.Stop()
		return err
	case sig := <-quit:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:    srv,
		Scheduler: sched,
		Pool:      pool,
		Stream:    hub,
	})

	return nil
}
