package bootstrap

import (
	"context"
	"log/slog"

	"github.com/verdantclub/ClubWheelBot_Go/internal/approval"
	"github.com/verdantclub/ClubWheelBot_Go/internal/event"
	"github.com/verdantclub/ClubWheelBot_Go/internal/scheduler"
	"github.com/verdantclub/ClubWheelBot_Go/internal/server"
	"github.com/verdantclub/ClubWheelBot_Go/internal/spin"
	"github.com/verdantclub/ClubWheelBot_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	SpinService        spin.Service
	Coordinator        approval.Coordinator
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler and worker pool (cancel periodic sweeps)
// 3. Spin service and approval coordinator (complete in-flight operations)
// 4. Event publisher (flush pending retries to ensure consistency)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	shutdownService(ctx, ServiceNameSpin, components.SpinService)
	shutdownService(ctx, ServiceNameApproval, components.Coordinator)

	// Flush the publisher last so events emitted during service shutdown
	// still get delivered or dead-lettered.
	slog.Info(LogMsgShuttingDownEventPublisher)
	components.ResilientPublisher.Wait()

	slog.Info(LogMsgServerStopped)
}

// shutdownService is a helper that shuts down a service and logs any errors.
// This implements a common pattern for all service shutdowns.
type shutdownableService interface {
	Shutdown(context.Context) error
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
