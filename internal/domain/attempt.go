package domain

import "time"

// Game identifies a mini-game
type Game string

const (
	GamePlinko   Game = "plinko"
	GameSlot     Game = "slot"
	GameSafe     Game = "safe"
	GameRoulette Game = "roulette"
	GameTower    Game = "tower"
)

// Games lists every playable mini-game.
var Games = []Game{GamePlinko, GameSlot, GameSafe, GameRoulette, GameTower}

// ParseGame validates a game name from user input.
func ParseGame(s string) (Game, error) {
	for _, g := range Games {
		if string(g) == s {
			return g, nil
		}
	}
	return "", ErrUnknownGame
}

// AttemptRecord tracks daily mini-game usage for one user and game.
// DayStart is the start of the game day the counters belong to.
type AttemptRecord struct {
	UserID   string    `json:"user_id" db:"user_id"`
	Game     Game      `json:"game" db:"game"`
	DayStart time.Time `json:"day_start" db:"day_start"`
	Used     int       `json:"used" db:"used"`
	WonToday bool      `json:"won_today" db:"won_today"`
}
