package minigame

import (
	"math/rand/v2"

	"github.com/chibox/chibox-server/internal/reward"
)

// fixedSource replays the given draws, repeating the last one
func fixedSource(draws ...float64) reward.RandomSource {
	i := 0
	return func() float64 {
		v := draws[min(i, len(draws)-1)]
		i++
		return v
	}
}

func seededSource(seed uint64) reward.RandomSource {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return r.Float64
}
