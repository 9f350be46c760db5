package minigame

import (
	"fmt"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/reward"
)

// SafeBand is a prize band over a roll in [0, 100). Upper is exclusive; the
// band starts where the previous one ends.
type SafeBand struct {
	Label      string         `json:"label"`
	Upper      float64        `json:"upper"`
	Outcome    domain.Outcome `json:"outcome"`
	MinMatches int            `json:"min_matches"`
	MaxMatches int            `json:"max_matches"`
}

// DefaultSafeBands: 1% item jackpot, 4% cash 100, 10% one subscription day, rest empty
func DefaultSafeBands() []SafeBand {
	return []SafeBand{
		{Label: "jackpot", Upper: 1, Outcome: domain.ItemOutcome(""), MinMatches: 3, MaxMatches: 3},
		{Label: "cash_100", Upper: 5, Outcome: domain.CashOutcome(100), MinMatches: 2, MaxMatches: 2},
		{Label: "sub_1d", Upper: 15, Outcome: domain.SubscriptionOutcome(1), MinMatches: 2, MaxMatches: 2},
		{Label: "empty", Upper: 100, Outcome: domain.EmptyOutcome(), MinMatches: 0, MaxMatches: 1},
	}
}

// SafeResult is a resolved safe attempt
type SafeResult struct {
	Guess   string         `json:"guess"`
	Code    string         `json:"code"`
	Matches int            `json:"matches"`
	Band    string         `json:"band"`
	Roll    float64        `json:"rolled_value"`
	Outcome domain.Outcome `json:"outcome"`
}

// ValidateGuess requires exactly three ASCII digits
func ValidateGuess(guess string) error {
	if len(guess) != SafeCodeLength {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgInvalidGuess)
	}
	for i := 0; i < len(guess); i++ {
		if guess[i] < '0' || guess[i] > '9' {
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgInvalidGuess)
		}
	}
	return nil
}

// PlaySafe rolls a band first, then shows a code that agrees with the guess in
// exactly as many positions as the band dictates.
func PlaySafe(guess string, bands []SafeBand, rnd reward.RandomSource) (SafeResult, error) {
	if err := ValidateGuess(guess); err != nil {
		return SafeResult{}, err
	}
	if len(bands) == 0 {
		return SafeResult{}, reward.ErrEmptyPool
	}

	roll := rnd() * SafeRollScale
	band := bands[len(bands)-1]
	for _, b := range bands {
		if roll < b.Upper {
			band = b
			break
		}
	}

	matches := band.MinMatches
	if span := band.MaxMatches - band.MinMatches; span > 0 {
		matches += pick(rnd, span+1)
	}
	code := GenerateCode(guess, matches, rnd)

	return SafeResult{
		Guess:   guess,
		Code:    code,
		Matches: CountMatches(guess, code),
		Band:    band.Label,
		Roll:    roll,
		Outcome: band.Outcome,
	}, nil
}

// GenerateCode returns a code matching guess in exactly matches positions.
// guess must already be valid; matches is clamped to [0, len(guess)].
func GenerateCode(guess string, matches int, rnd reward.RandomSource) string {
	n := len(guess)
	if matches < 0 {
		matches = 0
	}
	if matches > n {
		matches = n
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := pick(rnd, i+1)
		order[i], order[j] = order[j], order[i]
	}

	code := []byte(guess)
	for _, pos := range order[matches:] {
		g := int(guess[pos] - '0')
		code[pos] = byte('0' + (g+1+pick(rnd, 9))%10)
	}
	return string(code)
}

// CountMatches counts positions where guess and code agree
func CountMatches(guess, code string) int {
	n := 0
	for i := 0; i < len(guess) && i < len(code); i++ {
		if guess[i] == code[i] {
			n++
		}
	}
	return n
}
