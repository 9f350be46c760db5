package metrics

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/event"
	"github.com/chibox/chibox-server/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.CaseOpened:
		var p domain.CaseOpenedPayload
		if p, err = event.DecodePayload[domain.CaseOpenedPayload](evt.Payload); err == nil {
			rarity := p.ItemRarity
			if rarity == "" {
				rarity = UnknownRarity
			}
			CasesOpened.WithLabelValues(p.CaseID, rarity).Inc()
		}

	case event.ItemSold:
		var p domain.ItemSoldPayload
		if p, err = event.DecodePayload[domain.ItemSoldPayload](evt.Payload); err == nil {
			ItemsSold.Inc()
			addMoney(SourceSale, p.Amount)
		}

	case event.UpgradeCompleted:
		var p domain.UpgradeCompletedPayload
		if p, err = event.DecodePayload[domain.UpgradeCompletedPayload](evt.Payload); err == nil {
			result := ResultFail
			if p.Success {
				result = ResultSuccess
			}
			UpgradeAttempts.WithLabelValues(result).Inc()
			UpgradeChance.Observe(p.Chance)
		}

	case event.MinigamePlayed:
		var p domain.MinigamePlayedPayload
		if p, err = event.DecodePayload[domain.MinigamePlayedPayload](evt.Payload); err == nil {
			MinigamePlays.WithLabelValues(string(p.Game), string(p.Outcome.Kind)).Inc()
			if p.Outcome.Kind == domain.OutcomeCash {
				MoneyPaidOut.WithLabelValues(SourceMinigame).Add(p.Outcome.Amount.InexactFloat64())
			}
		}

	case event.DailyReset:
		var p domain.DailyResetPayload
		if p, err = event.DecodePayload[domain.DailyResetPayload](evt.Payload); err == nil {
			DailyResetRecords.Add(float64(p.RecordsAffected))
		}
	}

	if err != nil {
		log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func addMoney(source, amount string) {
	d, err := decimal.NewFromString(amount)
	if err != nil || d.IsNegative() {
		return
	}
	MoneyPaidOut.WithLabelValues(source).Add(d.InexactFloat64())
}
