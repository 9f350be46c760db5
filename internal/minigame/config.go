package minigame

import (
	"fmt"
	"math"

	"github.com/chibox/chibox-server/internal/domain"
)

// Config holds every tunable prize table
type Config struct {
	Plinko          Table                `json:"plinko"`
	Roulette        Table                `json:"roulette"`
	Slot            SlotConfig           `json:"slot"`
	Safe            []SafeBand           `json:"safe"`
	Tower           TowerConfig          `json:"tower"`
	SingleWinPerDay map[domain.Game]bool `json:"single_win_per_day"`
}

// DefaultConfig returns the built-in tables
func DefaultConfig() Config {
	return Config{
		Plinko:          DefaultPlinkoTable(),
		Roulette:        DefaultRouletteTable(),
		Slot:            DefaultSlotConfig(),
		Safe:            DefaultSafeBands(),
		Tower:           DefaultTowerConfig(),
		SingleWinPerDay: map[domain.Game]bool{domain.GameSafe: true},
	}
}

// Validate rejects tables that would make a game unplayable
func (c Config) Validate() error {
	if c.Plinko.TotalWeight() <= 0 {
		return fmt.Errorf(ErrMsgTableEmpty, domain.GamePlinko)
	}
	if c.Roulette.TotalWeight() <= 0 {
		return fmt.Errorf(ErrMsgTableEmpty, domain.GameRoulette)
	}
	if len(c.Slot.Classes) == 0 {
		return fmt.Errorf(ErrMsgTableEmpty, domain.GameSlot)
	}
	if err := validateBands(c.Safe); err != nil {
		return err
	}
	return c.Tower.Validate()
}

func validateBands(bands []SafeBand) error {
	if len(bands) == 0 {
		return fmt.Errorf(ErrMsgTableEmpty, domain.GameSafe)
	}
	prev := 0.0
	for i, b := range bands {
		if b.Upper <= prev {
			return fmt.Errorf("%s", ErrMsgBandsUnordered)
		}
		if b.MinMatches < 0 || b.MaxMatches > SafeCodeLength || b.MinMatches > b.MaxMatches {
			return fmt.Errorf(ErrMsgBandMatches, i)
		}
		prev = b.Upper
	}
	if math.Abs(prev-SafeRollScale) > 1e-9 {
		return fmt.Errorf("%s", ErrMsgBandsUnordered)
	}
	return nil
}

// Rules combines a game's quotas with its win lock
func (c Config) Rules(game domain.Game, quotas map[int]int) Rules {
	return Rules{Quota: quotas, SingleWinPerDay: c.SingleWinPerDay[game]}
}
