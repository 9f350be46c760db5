package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/chibox/chibox-server/internal/event"
	"github.com/chibox/chibox-server/internal/eventlog"
	"github.com/chibox/chibox-server/internal/livefeed"
	"github.com/chibox/chibox-server/internal/metrics"
	"github.com/chibox/chibox-server/internal/subscription"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus      event.Bus
	Subscriptions subscription.Service
	LiveFeed      *livefeed.Hub
	ActivityLog   eventlog.Service
}

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (business counters)
// - Subscription cache invalidation after mini-game subscription prizes
// - Live feed broadcaster
// - Activity log persistence
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metrics.NewEventMetricsCollector().Register(deps.EventBus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.Subscriptions != nil {
		deps.Subscriptions.Register(deps.EventBus)
		slog.Info(LogMsgSubscriptionCacheWired)
	}

	if deps.LiveFeed != nil {
		livefeed.NewSubscriber(deps.LiveFeed).Register(deps.EventBus)
		slog.Info(LogMsgLiveFeedSubscribed)
	}

	if deps.ActivityLog != nil {
		if err := deps.ActivityLog.Subscribe(deps.EventBus); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgEventLogSubscribe, err)
		}
	}
	return nil
}
