package config

const (
	// DefaultGameConfigPath is read when GAME_CONFIG_PATH is unset
	DefaultGameConfigPath = "configs/games.json"

	// MinJWTSecretLength matches the session manager's requirement
	MinJWTSecretLength = 16
)

// Error messages
const (
	ErrMsgProcessEnv      = "failed to load configuration: %w"
	ErrMsgInvalidConfig   = "invalid configuration: %w"
	ErrMsgStartingBalance = "invalid STARTING_BALANCE: %w"
	ErrMsgResetZone       = "invalid RESET_TIMEZONE: %w"
	ErrMsgGameConfig      = "invalid game config %s: %w"
	ErrMsgCatalogSeed     = "failed to seed catalog: %w"
)

// Log messages
const (
	LogMsgEnvFileMissing    = "No .env file loaded, using process environment"
	LogMsgGameConfigMissing = "Game config not found, using built-in defaults"
	LogMsgGameConfigLoaded  = "Game config loaded"
	LogMsgCatalogSeeded     = "Catalog seeded"
)
