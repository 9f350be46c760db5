package bootstrap

import (
	"context"
	"log/slog"

	"github.com/chibox/chibox-server/internal/livefeed"
	"github.com/chibox/chibox-server/internal/scheduler"
	"github.com/chibox/chibox-server/internal/server"
	"github.com/chibox/chibox-server/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server           *server.Server
	Scheduler        *scheduler.Scheduler
	DailyResetWorker *worker.DailyResetWorker
	WorkerPool       *worker.Pool
	LiveFeed         *livefeed.Hub
	Events           *EventSystem
	Repositories     *Repositories
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Interval and cron jobs, then the pool running them
// 3. Live feed connections
// 4. Event publisher (flush pending NATS retries)
// 5. Connections to NATS, Redis and PostgreSQL
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.DailyResetWorker != nil {
		if err := c.DailyResetWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgDailyResetShutdownFailed, "error", err)
		}
	}
	if c.WorkerPool != nil {
		c.WorkerPool.Stop()
	}

	if c.LiveFeed != nil {
		c.LiveFeed.Stop()
	}

	if c.Events != nil {
		if c.Events.Publisher != nil {
			slog.Info(LogMsgShuttingDownEventPublisher)
			if err := c.Events.Publisher.Shutdown(ctx); err != nil {
				slog.Error(LogMsgResilientPublisherFailed, "error", err)
			}
		}
		c.Events.Close()
	}

	if c.Repositories != nil {
		c.Repositories.Close()
	}

	slog.Info(LogMsgServerStopped)
}
