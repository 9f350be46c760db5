package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chibox/chibox-server/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries int
	RetryDelay time.Duration
}

// ResilientPublisher wraps a Publisher with background retries and a
// dead-letter file for events that never get through.
type ResilientPublisher struct {
	inner      Publisher
	config     ResilientConfig
	deadLetter *DeadLetterWriter
	wg         sync.WaitGroup
	shutdown   chan struct{}
	once       sync.Once
}

// NewResilientPublisher creates a new ResilientPublisher. deadLetter may be nil.
func NewResilientPublisher(inner Publisher, config ResilientConfig, deadLetter *DeadLetterWriter) *ResilientPublisher {
	if config.MaxRetries <= 0 {
		config.MaxRetries = RetryMaxAttempts
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = RetryInitialDelaySeconds * time.Second
	}
	return &ResilientPublisher{
		inner:      inner,
		config:     config,
		deadLetter: deadLetter,
		shutdown:   make(chan struct{}),
	}
}

// Publish tries once synchronously. On failure it schedules retries and
// returns nil; the caller is decoupled from delivery.
func (p *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	err := p.inner.Publish(ctx, evt)
	if err == nil {
		return nil
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", evt.Type,
		"error", err,
		"retries", p.config.MaxRetries)

	p.wg.Add(1)
	go p.retryLoop(evt, err)

	return nil
}

func (p *ResilientPublisher) retryLoop(evt Event, lastErr error) {
	defer p.wg.Done()
	ctx := context.Background()

	for attempt := 1; attempt <= p.config.MaxRetries; attempt++ {
		select {
		case <-time.After(CalculateRetryDelay(p.config.RetryDelay, attempt)):
		case <-p.shutdown:
			logger.Warn(LogMsgEventDroppedShutdown, "event_type", evt.Type)
			p.writeDeadLetter(evt, attempt, lastErr)
			return
		}

		if lastErr = p.inner.Publish(ctx, evt); lastErr == nil {
			logger.Info(LogMsgEventRetrySucceeded, "event_type", evt.Type, "attempt", attempt)
			return
		}
		logger.Warn(LogMsgEventRetryFailed, "event_type", evt.Type, "attempt", attempt, "error", lastErr)
	}

	logger.Error(LogMsgEventRetryExhausted, "event_type", evt.Type)
	p.writeDeadLetter(evt, p.config.MaxRetries, lastErr)
}

func (p *ResilientPublisher) writeDeadLetter(evt Event, attempts int, lastErr error) {
	if p.deadLetter == nil {
		return
	}
	if lastErr == nil {
		lastErr = errors.New(LogMsgEventDroppedShutdown)
	}
	if err := p.deadLetter.Write(evt, attempts, lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// Shutdown stops pending retries, dead-lettering their events, and waits for them
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.once.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
