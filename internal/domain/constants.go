package domain

// Claim lock action prefixes
const (
	ActionCaseOpen = "case"
	ActionUpgrade  = "upgrade"
	ActionSell     = "sell"
	ActionGame     = "game"
)

// UsernameMinLength and UsernameMaxLength bound registration input
const (
	UsernameMinLength = 3
	UsernameMaxLength = 32
	PasswordMinLength = 8
)
