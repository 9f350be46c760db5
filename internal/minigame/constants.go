package minigame

import "time"

// ============================================================================
// Game Day
// ============================================================================

const (
	// DefaultResetHour is the local hour at which daily attempts reset
	DefaultResetHour = 16

	// DefaultResetZone is the time zone of the reset boundary
	DefaultResetZone = "Europe/Moscow"

	// moscowOffset is used when the tz database is unavailable
	moscowOffset = 3 * 60 * 60

	GameDay = 24 * time.Hour
)

// ============================================================================
// Plinko
// ============================================================================

const (
	PlinkoRows = 16

	PathLeft  = 'L'
	PathRight = 'R'
)

// ============================================================================
// Slot
// ============================================================================

const (
	SlotLose    = "lose"
	SlotWin     = "win"
	SlotJackpot = "jackpot"

	DefaultJackpotMinPrice = 1000.0

	// SlotReels is the number of reels shown to the client
	SlotReels = 3

	// BlankSymbol fills a losing reel when the catalog has a single item
	BlankSymbol = "blank"
)

// ============================================================================
// Safe Cracker
// ============================================================================

const (
	SafeCodeLength = 3

	// SafeRollScale maps a [0,1) draw onto the percent bands
	SafeRollScale = 100.0
)

// ============================================================================
// Tower Defense
// ============================================================================

const (
	DefaultTowerMinMultiplier = 1.1
	DefaultTowerMaxMultiplier = 3.0
)

// ============================================================================
// Service
// ============================================================================

const (
	DefaultClaimLockTTL = 10 * time.Second
)

// ============================================================================
// Messages
// ============================================================================

const (
	ErrMsgInvalidGuess     = "guess must be exactly 3 digits"
	ErrMsgTableEmpty       = "%s table has no entries"
	ErrMsgBandsUnordered   = "safe bands must be ordered and end at 100"
	ErrMsgBandMatches      = "safe band %d has invalid match range"
	ErrMsgMissingRules     = "no rules for game %s"
	ErrMsgTowerMultipliers = "tower multipliers must satisfy 1 <= min <= max"
	ErrMsgBeginTxFailed    = "failed to begin game transaction: %w"
	ErrMsgCommitFailed     = "failed to commit game result: %w"
	ErrMsgLoadSlotItems    = "failed to load slot items: %w"
	ErrMsgResolve          = "failed to resolve %s: %w"

	LogMsgGamePlayed    = "Mini-game played"
	LogMsgPublishFailed = "Failed to publish mini-game event"
)
