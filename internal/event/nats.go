package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/chibox/chibox-server/internal/logger"
)

// Connect dials NATS with reconnect settings suitable for a long-running server
func Connect(url, name string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(NATSMaxReconnects),
		nats.ReconnectWait(NATSReconnectWait*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgNATSConnectFailed, err)
	}
	return nc, nil
}

// NATSBus publishes events as JSON on "<prefix>.<type>" subjects
type NATSBus struct {
	conn   *nats.Conn
	prefix string

	mu   sync.Mutex
	subs []*nats.Subscription
}

// NewNATSBus creates a bus over an existing connection
func NewNATSBus(conn *nats.Conn, prefix string) *NATSBus {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &NATSBus{conn: conn, prefix: prefix}
}

// Subject returns the NATS subject for an event type
func (b *NATSBus) Subject(t Type) string {
	return b.prefix + "." + string(t)
}

// Publish marshals and publishes the event
func (b *NATSBus) Publish(_ context.Context, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf(ErrMsgMarshalEventFailed, err)
	}
	if err := b.conn.Publish(b.Subject(evt.Type), data); err != nil {
		return fmt.Errorf(ErrMsgNATSPublishFailed, err)
	}
	return nil
}

// Subscribe delivers remote events to handler. Payloads arrive as generic JSON
// values; use DecodePayload to get typed payloads back.
func (b *NATSBus) Subscribe(eventType Type, handler Handler) {
	sub, err := b.conn.Subscribe(b.Subject(eventType), func(msg *nats.Msg) {
		var evt Event
		if err := json.Unmarshal(msg.Data, &evt); err != nil {
			logger.Warn(LogMsgDecodeFailed, "subject", msg.Subject, "error", err)
			return
		}
		if err := handler(context.Background(), evt); err != nil {
			logger.Warn(LogMsgRemoteHandlerFailed, "event_type", evt.Type, "error", err)
		}
	})
	if err != nil {
		logger.Error(LogMsgSubscribeFailed, "event_type", eventType, "error", err)
		return
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()
}

// Close unsubscribes all handlers and drains the connection
func (b *NATSBus) Close() error {
	b.mu.Lock()
	for _, s := range b.subs {
		_ = s.Unsubscribe()
	}
	b.subs = nil
	b.mu.Unlock()
	return b.conn.Drain()
}
