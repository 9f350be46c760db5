package utils

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// RandomFloat returns a random float64 in [0, 1) from the shared PRNG
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Used where predictability is harmless
}

// SecureRandomFloat returns a uniform float64 in [0, 1) from crypto/rand.
// Reward draws use it so outcomes cannot be predicted from earlier rolls.
func SecureRandomFloat() float64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return RandomFloat()
	}
	// 53 random bits scaled into [0, 1)
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53)
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between (x0, y0) and (x1, y1) at x.
// Degenerate segments (x0 == x1) return y0.
func Lerp(x, x0, y0, x1, y1 float64) float64 {
	if x1 == x0 {
		return y0
	}
	return y0 + (x-x0)*(y1-y0)/(x1-x0)
}
