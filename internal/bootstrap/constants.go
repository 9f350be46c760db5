package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for session log files
	LogFilePermission = 0644
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept next to the new one
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgStartingServer      = "Starting chibox server"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
)

// =============================================================================
// Storage
// =============================================================================

const (
	// RedisPingTimeout bounds the startup connectivity check
	RedisPingTimeout = 5 * time.Second

	// Readiness check names
	CheckPostgres = "postgres"
	CheckRedis    = "redis"
	CheckNATS     = "nats"
)

const (
	LogMsgStorageMemory      = "Using in-memory storage; data is lost on restart"
	LogMsgStoragePostgres    = "Using PostgreSQL storage"
	LogMsgStorageRedis       = "Using Redis for locks, sessions and drop history"
	LogMsgStorageMemoryLocks = "Using in-process locks, sessions and drop history"
	ErrMsgFailedConnectRedis = "failed to connect to redis"
	ErrMsgFailedMigrate      = "failed to run migrations"
	ErrMsgNATSDisconnected   = "nats connection is not established"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// NATSClientName identifies this process to the NATS server
	NATSClientName = "chibox-server"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgEventMirrorDisabled            = "NATS_URL not set, events stay in-process"
	ErrMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	ErrMsgFailedCreateDeadLetterWriter   = "failed to open dead-letter file"
	ErrMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// =============================================================================
// Catalog Sync Messages
// =============================================================================

const (
	LogMsgSyncingCatalog = "Syncing catalog from game config..."
	LogMsgCatalogSkipped = "Catalog seeding disabled"
	ErrMsgFailedSync     = "failed to sync catalog"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgLiveFeedSubscribed         = "Live feed subscribed to events"
	LogMsgSubscriptionCacheWired     = "Subscription cache invalidation registered"
	ErrMsgEventLogSubscribe          = "failed to subscribe activity log"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgDailyResetShutdownFailed   = "Daily reset worker shutdown failed"
	LogMsgCloseFailed                = "Failed to close resource"
)
