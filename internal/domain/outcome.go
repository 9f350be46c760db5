package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// OutcomeKind discriminates the Outcome variants
type OutcomeKind string

const (
	OutcomeCash         OutcomeKind = "cash"
	OutcomeSubscription OutcomeKind = "subscription"
	OutcomeItem         OutcomeKind = "item"
	OutcomeEmpty        OutcomeKind = "empty"
)

// Outcome is a mini-game prize: exactly one of cash, subscription days, an item, or nothing.
// Build values with the constructors; only the field matching Kind is meaningful.
type Outcome struct {
	Kind   OutcomeKind
	Amount decimal.Decimal
	Days   int
	ItemID string
}

// CashOutcome awards a balance credit.
func CashOutcome(amount int64) Outcome {
	return Outcome{Kind: OutcomeCash, Amount: decimal.NewFromInt(amount)}
}

// SubscriptionOutcome awards subscription days.
func SubscriptionOutcome(days int) Outcome {
	return Outcome{Kind: OutcomeSubscription, Days: days}
}

// ItemOutcome awards an item. An empty id means the item is picked at play time.
func ItemOutcome(itemID string) Outcome {
	return Outcome{Kind: OutcomeItem, ItemID: itemID}
}

// EmptyOutcome awards nothing.
func EmptyOutcome() Outcome {
	return Outcome{Kind: OutcomeEmpty}
}

// IsWin reports whether the outcome grants anything.
func (o Outcome) IsWin() bool {
	return o.Kind != OutcomeEmpty && o.Kind != ""
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeCash:
		return "cash " + o.Amount.String()
	case OutcomeSubscription:
		return fmt.Sprintf("subscription %dd", o.Days)
	case OutcomeItem:
		return "item " + o.ItemID
	default:
		return string(OutcomeEmpty)
	}
}

type outcomeJSON struct {
	Kind   OutcomeKind      `json:"kind"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Days   int              `json:"days,omitempty"`
	ItemID string           `json:"item_id,omitempty"`
}

// MarshalJSON writes only the fields of the active variant.
func (o Outcome) MarshalJSON() ([]byte, error) {
	out := outcomeJSON{Kind: o.Kind}
	switch o.Kind {
	case OutcomeCash:
		amount := o.Amount
		out.Amount = &amount
	case OutcomeSubscription:
		out.Days = o.Days
	case OutcomeItem:
		out.ItemID = o.ItemID
	case "":
		out.Kind = OutcomeEmpty
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the format written by MarshalJSON.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var in outcomeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.Kind {
	case OutcomeCash:
		if in.Amount == nil {
			return fmt.Errorf("%w: cash outcome without amount", ErrInvalidInput)
		}
		*o = Outcome{Kind: OutcomeCash, Amount: *in.Amount}
	case OutcomeSubscription:
		*o = SubscriptionOutcome(in.Days)
	case OutcomeItem:
		*o = ItemOutcome(in.ItemID)
	case OutcomeEmpty, "":
		*o = EmptyOutcome()
	default:
		return fmt.Errorf("%w: unknown outcome kind %q", ErrInvalidInput, in.Kind)
	}
	return nil
}
