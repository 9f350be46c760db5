package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "item.sold")
const (
	// EventTypeCaseOpened is published after a case opening commits
	EventTypeCaseOpened = "case.opened"

	// EventTypeItemSold is published when an inventory item is sold
	EventTypeItemSold = "item.sold"

	// EventTypeUpgradeCompleted is published after every upgrade attempt, won or lost
	EventTypeUpgradeCompleted = "upgrade.completed"

	// EventTypeMinigamePlayed is published after a mini-game round commits
	EventTypeMinigamePlayed = "minigame.played"

	// EventTypeDailyResetComplete is published when the daily attempt reset completes
	EventTypeDailyResetComplete = "daily_reset.complete"
)
