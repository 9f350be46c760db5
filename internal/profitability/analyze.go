package profitability

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/chibox/chibox-server/internal/reward"
	"github.com/chibox/chibox-server/internal/utils"
)

// Share is one candidate's part of the expected value
type Share struct {
	ID           string  `json:"id"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	Weight       float64 `json:"weight"`
	Probability  float64 `json:"probability"`
	Contribution float64 `json:"contribution"`
}

// Recommendation tells an operator what to change
type Recommendation struct {
	Action         string  `json:"action"`
	SuggestedPrice float64 `json:"suggested_price"`
	Message        string  `json:"message"`
}

// Analysis is the profitability report of one case
type Analysis struct {
	CasePrice      float64        `json:"case_price"`
	ExpectedValue  float64        `json:"expected_value"`
	ProfitMargin   float64        `json:"profit_margin"`
	ReturnRate     float64        `json:"return_rate"`
	TargetMargin   float64        `json:"target_margin"`
	IsOptimal      bool           `json:"is_optimal"`
	Recommendation Recommendation `json:"recommendation"`
	Breakdown      []Share        `json:"breakdown"`
}

// ExpectedValue is Σ pᵢ·priceᵢ over the base weights
func ExpectedValue(pool []reward.Candidate) float64 {
	ev, _ := expected(pool, reward.BaseWeights(pool))
	return ev
}

func expected(pool []reward.Candidate, weights []float64) (float64, []Share) {
	total := reward.TotalWeight(weights)
	shares := make([]Share, len(pool))
	ev := 0.0
	for i, c := range pool {
		w := weights[i]
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			w = 0
		}
		p := 0.0
		if total > 0 {
			p = w / total
		}
		price := sanitize(c.Price)
		shares[i] = Share{
			ID:           c.ID,
			Category:     c.Category(),
			Price:        price,
			Weight:       w,
			Probability:  p,
			Contribution: p * price,
		}
		ev += p * price
	}
	return ev, shares
}

// Analyze compares a case's expected payout with its price. A targetMargin
// outside (0, 1) selects DefaultTargetMargin.
func Analyze(pool []reward.Candidate, price, targetMargin float64) Analysis {
	if math.IsNaN(targetMargin) || targetMargin <= 0 || targetMargin >= 1 {
		targetMargin = DefaultTargetMargin
	}

	ev, shares := expected(pool, reward.BaseWeights(pool))
	suggested := ev / (1 - targetMargin)

	a := Analysis{
		CasePrice:     price,
		ExpectedValue: ev,
		TargetMargin:  targetMargin,
		Breakdown:     shares,
	}

	if math.IsNaN(price) || price <= 0 {
		a.ProfitMargin = LossMargin
		a.Recommendation = Recommendation{
			Action:         ActionFixPrice,
			SuggestedPrice: suggested,
			Message:        fmt.Sprintf(MsgFixPrice, rubles(suggested)),
		}
		return a
	}

	a.ReturnRate = ev / price
	a.ProfitMargin = 1 - a.ReturnRate
	a.IsOptimal = math.Abs(a.ProfitMargin-targetMargin) <= MarginTolerance

	pct := a.ProfitMargin * 100
	switch {
	case a.IsOptimal:
		a.Recommendation = Recommendation{
			Action:         ActionKeep,
			SuggestedPrice: price,
			Message:        fmt.Sprintf(MsgKeep, pct, MarginTolerance*100, targetMargin*100),
		}
	case a.ProfitMargin < targetMargin:
		a.Recommendation = Recommendation{
			Action:         ActionRaise,
			SuggestedPrice: suggested,
			Message:        fmt.Sprintf(MsgRaise, pct, targetMargin*100, rubles(suggested)),
		}
	default:
		a.Recommendation = Recommendation{
			Action:         ActionLower,
			SuggestedPrice: suggested,
			Message:        fmt.Sprintf(MsgLower, pct, targetMargin*100, rubles(suggested)),
		}
	}
	return a
}

func rubles(v float64) string {
	return utils.FormatRubles(decimal.NewFromFloat(v).Round(2))
}

func sanitize(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0
	}
	return p
}
