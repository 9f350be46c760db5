package minigame

import (
	"time"

	"github.com/chibox/chibox-server/internal/domain"
)

// State is the daily attempt state of one user and game
type State string

const (
	// StateNotYetReset marks a record left over from an earlier game day
	StateNotYetReset       State = "NOT_YET_RESET"
	StateAttemptsAvailable State = "ATTEMPTS_AVAILABLE"
	StateExhaustedOrWon    State = "EXHAUSTED_OR_WON"
)

// Rules are the per-game limits. Quota is keyed by subscription tier.
type Rules struct {
	Quota           map[int]int `json:"quota"`
	SingleWinPerDay bool        `json:"single_win_per_day"`
}

// Eligibility describes whether a user may play now
type Eligibility struct {
	State     State     `json:"state"`
	Tier      int       `json:"tier"`
	Quota     int       `json:"quota"`
	Used      int       `json:"used"`
	Remaining int       `json:"remaining"`
	WonToday  bool      `json:"won_today"`
	DayStart  time.Time `json:"day_start"`
	ResetsAt  time.Time `json:"resets_at"`
}

// CanPlay reports whether another attempt is allowed. A pending reset counts:
// the next play clears the stale counters first.
func (e Eligibility) CanPlay() bool {
	return e.State == StateAttemptsAvailable || e.State == StateNotYetReset
}

// Err explains why play is refused, or nil
func (e Eligibility) Err() error {
	if e.CanPlay() {
		return nil
	}
	if e.WonToday && e.Used < e.Quota {
		return domain.ErrAlreadyWonToday
	}
	return domain.ErrAttemptsExhausted
}

// ResetClock places the daily reset boundary
type ResetClock struct {
	Location *time.Location
	Hour     int
}

// DefaultResetClock resets at 16:00 Europe/Moscow
func DefaultResetClock() ResetClock {
	return NewResetClock(DefaultResetZone, DefaultResetHour)
}

// NewResetClock loads zone, falling back to a fixed UTC+3 when the tz
// database has no entry for it
func NewResetClock(zone string, hour int) ResetClock {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.FixedZone("MSK", moscowOffset)
	}
	return ResetClock{Location: loc, Hour: hour}
}

// DayStart returns the start of the game day containing now
func DayStart(now time.Time) time.Time {
	return DefaultResetClock().DayStart(now)
}

// DayStart returns the start of the game day containing now
func (c ResetClock) DayStart(now time.Time) time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), c.Hour, 0, 0, 0, loc)
	if local.Before(start) {
		start = start.AddDate(0, 0, -1)
	}
	return start
}

// Classify returns the raw state of a record without applying a reset.
// A nil record has nothing to reset.
func Classify(rec *domain.AttemptRecord, quota int, rules Rules, dayStart time.Time) State {
	if rec == nil {
		return available(0, false, quota, rules)
	}
	if rec.DayStart.Before(dayStart) {
		return StateNotYetReset
	}
	return available(rec.Used, rec.WonToday, quota, rules)
}

func available(used int, won bool, quota int, rules Rules) State {
	if used >= quota || (rules.SingleWinPerDay && won) {
		return StateExhaustedOrWon
	}
	return StateAttemptsAvailable
}

// Reset returns the record moved to dayStart with cleared counters.
// Records already on dayStart are returned unchanged.
func Reset(rec domain.AttemptRecord, dayStart time.Time) domain.AttemptRecord {
	if !rec.DayStart.Before(dayStart) {
		return rec
	}
	rec.DayStart = dayStart
	rec.Used = 0
	rec.WonToday = false
	return rec
}

// Evaluate uses the default reset clock
func Evaluate(rec *domain.AttemptRecord, tier int, rules Rules, now time.Time) (Eligibility, error) {
	return DefaultResetClock().Evaluate(rec, tier, rules, now)
}

// Evaluate reports eligibility after applying any pending reset. The counters are
// the reset ones while State stays NOT_YET_RESET for a record from an earlier
// game day. Users without a subscription or with a zero quota get ErrSubscriptionRequired.
func (c ResetClock) Evaluate(rec *domain.AttemptRecord, tier int, rules Rules, now time.Time) (Eligibility, error) {
	dayStart := c.DayStart(now)
	quota := rules.Quota[tier]

	e := Eligibility{
		Tier:     tier,
		Quota:    quota,
		DayStart: dayStart,
		ResetsAt: dayStart.Add(GameDay),
	}
	if tier <= 0 || quota <= 0 {
		e.State = StateExhaustedOrWon
		return e, domain.ErrSubscriptionRequired
	}

	var cur domain.AttemptRecord
	if rec != nil {
		cur = Reset(*rec, dayStart)
	}
	e.Used = cur.Used
	e.WonToday = cur.WonToday
	e.Remaining = max(quota-cur.Used, 0)
	e.State = Classify(rec, quota, rules, dayStart)
	if e.State == StateExhaustedOrWon {
		e.Remaining = 0
	}
	return e, nil
}

// Consume uses the default reset clock
func Consume(rec domain.AttemptRecord, won bool, now time.Time) domain.AttemptRecord {
	return DefaultResetClock().Consume(rec, won, now)
}

// Consume records one attempt, resetting the record first when it belongs to an earlier day
func (c ResetClock) Consume(rec domain.AttemptRecord, won bool, now time.Time) domain.AttemptRecord {
	rec = Reset(rec, c.DayStart(now))
	if rec.DayStart.IsZero() {
		rec.DayStart = c.DayStart(now)
	}
	rec.Used++
	rec.WonToday = rec.WonToday || won
	return rec
}
