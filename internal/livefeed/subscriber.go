package livefeed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/event"
	"github.com/chibox/chibox-server/internal/utils"
)

// Subscriber turns bus events into feed messages
type Subscriber struct {
	hub *Hub
}

// NewSubscriber creates a subscriber for hub
func NewSubscriber(hub *Hub) *Subscriber {
	return &Subscriber{hub: hub}
}

// Register subscribes to the events shown on the feed
func (s *Subscriber) Register(bus event.Bus) {
	bus.Subscribe(event.CaseOpened, s.handleCaseOpened)
	bus.Subscribe(event.UpgradeCompleted, s.handleUpgrade)
	bus.Subscribe(event.MinigamePlayed, s.handleMinigame)

	slog.Info(LogMsgSubscribed, "types", []event.Type{event.CaseOpened, event.UpgradeCompleted, event.MinigamePlayed})
}

func (s *Subscriber) handleCaseOpened(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.CaseOpenedPayload](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgBadPayload, "type", evt.Type, "error", err)
		return nil
	}

	text := fmt.Sprintf("%s выбил %s", p.Username, p.ItemName)
	if price, err := decimal.NewFromString(p.ItemPrice); err == nil {
		text += " за " + utils.FormatRubles(price)
	}
	s.hub.Broadcast(TypeCaseDrop, text, p)
	return nil
}

func (s *Subscriber) handleUpgrade(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.UpgradeCompletedPayload](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgBadPayload, "type", evt.Type, "error", err)
		return nil
	}
	if !p.Success {
		return nil
	}

	s.hub.Broadcast(TypeUpgradeWin, fmt.Sprintf("%s апгрейднул предмет с шансом %.2f%%", p.Username, p.Chance), p)
	return nil
}

func (s *Subscriber) handleMinigame(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.MinigamePlayedPayload](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgBadPayload, "type", evt.Type, "error", err)
		return nil
	}
	if !p.Outcome.IsWin() {
		return nil
	}

	s.hub.Broadcast(TypeMinigameWin, fmt.Sprintf("%s выиграл в %s: %s", p.Username, p.Game, describe(p.Outcome)), p)
	return nil
}

func describe(o domain.Outcome) string {
	switch o.Kind {
	case domain.OutcomeCash:
		return utils.FormatRubles(o.Amount)
	case domain.OutcomeSubscription:
		return fmt.Sprintf("подписка на %d дн.", o.Days)
	default:
		return "предмет"
	}
}
