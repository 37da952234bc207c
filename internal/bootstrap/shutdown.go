package bootstrap

import (
	"context"
	"log/slog"

	"github.com/bonushunt/bonushunt-backend/internal/scheduler"
	"github.com/bonushunt/bonushunt-backend/internal/server"
	"github.com/bonushunt/bonushunt-backend/internal/sse"
	"github.com/bonushunt/bonushunt-backend/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server    *server.Server
	Scheduler *scheduler.Scheduler
	Pool      *worker.Pool
	Stream    *sse.Hub
}

// GracefulShutdown performs graceful shutdown of all application components:
// the HTTP server first (stop accepting new requests), then the scheduler
// (stop producing new jobs), then the worker pool (drain queued jobs), then
// the SSE hub. Errors during shutdown are logged but do not stop the
// shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}

	if components.Pool != nil {
		slog.Info(LogMsgShuttingDownWorkers)
		components.Pool.Stop()
	}

	if components.Stream != nil {
		components.Stream.Stop()
	}

	slog.Info(LogMsgServerStopped)
}
