package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chibox/chibox-server/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// Event types published by the game services
const (
	CaseOpened       Type = domain.EventTypeCaseOpened
	ItemSold         Type = domain.EventTypeItemSold
	UpgradeCompleted Type = domain.EventTypeUpgradeCompleted
	MinigamePlayed   Type = domain.EventTypeMinigamePlayed
	DailyReset       Type = domain.EventTypeDailyResetComplete
)

// AllTypes lists every event type the services publish
var AllTypes = []Type{CaseOpened, ItemSold, UpgradeCompleted, MinigamePlayed, DailyReset}

// New wraps a payload in an Event with the current schema version
func New(t Type, payload interface{}) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: payload,
	}
}

// NewCaseOpenedEvent creates a case.opened event
func NewCaseOpenedEvent(p domain.CaseOpenedPayload) Event {
	if p.Timestamp == 0 {
		p.Timestamp = time.Now().Unix()
	}
	return New(CaseOpened, p)
}

// NewItemSoldEvent creates an item.sold event
func NewItemSoldEvent(p domain.ItemSoldPayload) Event {
	if p.Timestamp == 0 {
		p.Timestamp = time.Now().Unix()
	}
	return New(ItemSold, p)
}

// NewUpgradeCompletedEvent creates an upgrade.completed event
func NewUpgradeCompletedEvent(p domain.UpgradeCompletedPayload) Event {
	if p.Timestamp == 0 {
		p.Timestamp = time.Now().Unix()
	}
	return New(UpgradeCompleted, p)
}

// NewMinigamePlayedEvent creates a minigame.played event
func NewMinigamePlayedEvent(p domain.MinigamePlayedPayload) Event {
	if p.Timestamp == 0 {
		p.Timestamp = time.Now().Unix()
	}
	return New(MinigamePlayed, p)
}

// NewDailyResetEvent creates a daily_reset.complete event
func NewDailyResetEvent(dayStart time.Time, affected int64) Event {
	return New(DailyReset, domain.DailyResetPayload{
		DayStart:        dayStart.Unix(),
		RecordsAffected: affected,
	})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Publisher publishes events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Bus defines the interface for an event bus
type Bus interface {
	Publisher
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
