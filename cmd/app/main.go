package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/verdantclub/ClubWheelBot_Go/internal/anticheat"
	"github.com/verdantclub/ClubWheelBot_Go/internal/approval"
	"github.com/verdantclub/ClubWheelBot_Go/internal/bootstrap"
	"github.com/verdantclub/ClubWheelBot_Go/internal/concurrency"
	"github.com/verdantclub/ClubWheelBot_Go/internal/config"
	"github.com/verdantclub/ClubWheelBot_Go/internal/database"
	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
	"github.com/verdantclub/ClubWheelBot_Go/internal/notify"
	"github.com/verdantclub/ClubWheelBot_Go/internal/ratelimit"
	"github.com/verdantclub/ClubWheelBot_Go/internal/scheduler"
	"github.com/verdantclub/ClubWheelBot_Go/internal/server"
	"github.com/verdantclub/ClubWheelBot_Go/internal/spin"
	"github.com/verdantclub/ClubWheelBot_Go/internal/tier"
	"github.com/verdantclub/ClubWheelBot_Go/internal/transfer"
	"github.com/verdantclub/ClubWheelBot_Go/internal/worker"
)

const (
	// ShutdownTimeout bounds the graceful shutdown sequence
	ShutdownTimeout = 30 * time.Second

	// Background worker pool sizing
	WorkerCount = 4
	QueueSize   = 64

	// PruneInterval is how often expired throttle windows are swept
	PruneInterval = time.Minute
)

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

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns,
		config.DefaultDBMaxIdleTime, config.DefaultDBMaxLifetime)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Event system initialization failed", "error", err)
		os.Exit(1)
	}

	if err := bootstrap.RegisterEventHandlers(eventBus); err != nil {
		slog.Error("Event handler registration failed", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	// The notification session only uses REST endpoints; the interactive
	// gateway connection lives in the separate bot process.
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		slog.Error("Discord session creation failed", "error", err)
		os.Exit(1)
	}

	sendGate := ratelimit.NewGate(ratelimit.SendSpacing)
	editGate := ratelimit.NewGate(ratelimit.EditSpacing)
	revealGate := ratelimit.NewRevealGate(ratelimit.MaxConcurrentReveals)

	notifier := notify.NewDiscordNotifier(session, sendGate, editGate)

	tiers := tier.NewResolver(tier.DefaultTable)
	guard := anticheat.NewGuard(anticheat.DefaultWindow, anticheat.DefaultCap)
	locks := concurrency.NewLockManager()

	// The coordinator invalidates the spin account cache after crediting;
	// the service is constructed right after, so the closure resolves late.
	var spinService spin.Service
	coordinator := approval.NewCoordinator(
		repos.Ledger,
		repos.Account,
		repos.Transfer,
		tiers,
		notifier,
		cfg.OperatorIDs(),
		publisher,
		func(userID string) {
			if spinService != nil {
				spinService.InvalidateAccount(userID)
			}
		},
	)

	spinService = spin.NewService(repos.Account, repos.Ledger, guard, locks, coordinator, publisher)
	transferService := transfer.NewService(repos.Transfer, tiers, coordinator, publisher)

	if cfg.AnnounceChannelID != "" {
		revealer := notify.NewRevealer(session, cfg.AnnounceChannelID, sendGate, editGate, revealGate)
		spinService.SetRevealFunc(func(ctx context.Context, result *domain.SpinBatchResult, username string) {
			if err := revealer.Reveal(ctx, result, username); err != nil {
				slog.Warn("Spin reveal failed", "user_id", result.UserID, "error", err)
			}
		})
	}

	pool := worker.NewPool(WorkerCount, QueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(time.Duration(cfg.ReminderIntervalSecs)*time.Second,
		worker.NewReminderWorker(coordinator, time.Duration(cfg.ReminderThresholdSecs)*time.Second))
	sched.Schedule(PruneInterval, worker.NewPruneWorker(guard))

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, spinService, transferService, coordinator)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         pool,
		SpinService:        spinService,
		Coordinator:        coordinator,
		ResilientPublisher: publisher,
	})
}
