package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chibox/chibox-server/internal/config"
	"github.com/chibox/chibox-server/internal/event"
	"github.com/chibox/chibox-server/internal/handler"
)

// EventSystem is the in-process bus plus the optional NATS mirror
type EventSystem struct {
	Bus event.Bus
	// Publisher retries NATS deliveries; nil without NATS
	Publisher *event.ResilientPublisher

	closers []func() error
}

// InitializeEventSystem creates the local event bus. With NATS configured,
// every event is also mirrored to NATS through a resilient publisher that
// retries with exponential backoff and dead-letters what never gets through.
func InitializeEventSystem(cfg *config.Config, checks map[string]handler.HealthChecker) (*EventSystem, error) {
	local := event.NewMemoryBus()
	if !cfg.UsesNATS() {
		slog.Info(LogMsgEventMirrorDisabled)
		return &EventSystem{Bus: local}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DeadLetterPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}
	deadLetter, err := event.NewDeadLetterWriter(cfg.DeadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterWriter, err)
	}

	conn, err := event.Connect(cfg.NATSURL, NATSClientName)
	if err != nil {
		_ = deadLetter.Close()
		return nil, err
	}
	remote := event.NewNATSBus(conn, cfg.NATSSubjectPrefix)

	publisher := event.NewResilientPublisher(remote, event.ResilientConfig{
		MaxRetries: cfg.EventMaxRetries,
		RetryDelay: cfg.EventRetryDelay,
	}, deadLetter)

	if checks != nil {
		checks[CheckNATS] = handler.HealthCheckFunc(func(context.Context) error {
			if !conn.IsConnected() {
				return errors.New(ErrMsgNATSDisconnected)
			}
			return nil
		})
	}

	slog.Info(LogMsgEventSystemInitialized,
		"nats_url", cfg.NATSURL,
		"subject_prefix", cfg.NATSSubjectPrefix,
		"max_retries", cfg.EventMaxRetries,
		"retry_delay", cfg.EventRetryDelay,
		"deadletter_path", cfg.DeadLetterPath)

	return &EventSystem{
		Bus:       event.NewFanout(local, publisher),
		Publisher: publisher,
		// drain NATS before the dead-letter file goes away
		closers: []func() error{remote.Close, deadLetter.Close},
	}, nil
}

// Close releases the NATS connection and the dead-letter file
func (e *EventSystem) Close() {
	for _, c := range e.closers {
		if err := c(); err != nil {
			slog.Warn(LogMsgCloseFailed, "error", err)
		}
	}
	e.closers = nil
}
