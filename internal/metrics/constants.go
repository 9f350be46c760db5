package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Business metric names
const (
	MetricNameCasesOpened       = "cases_opened_total"
	MetricNameItemsSold         = "items_sold_total"
	MetricNameMoneyPaidOut      = "money_paid_out_total"
	MetricNameUpgradeAttempts   = "upgrade_attempts_total"
	MetricNameUpgradeChance     = "upgrade_chance_percent"
	MetricNameMinigamePlays     = "minigame_plays_total"
	MetricNameDailyResetRecords = "daily_reset_records_total"
	MetricNameLiveFeedClients   = "live_feed_clients"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished = "Total number of events published"
)

// Business metric help text
const (
	HelpTextCasesOpened       = "Total number of cases opened by case and dropped rarity"
	HelpTextItemsSold         = "Total number of inventory items sold"
	HelpTextMoneyPaidOut      = "Total money credited to users by source"
	HelpTextUpgradeAttempts   = "Total number of upgrade attempts by result"
	HelpTextUpgradeChance     = "Distribution of final upgrade chances"
	HelpTextMinigamePlays     = "Total number of mini-game rounds by game and outcome kind"
	HelpTextDailyResetRecords = "Total attempt records cleared by the daily reset"
	HelpTextLiveFeedClients   = "Current number of live feed websocket clients"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelCase    = "case"
	LabelRarity  = "rarity"
	LabelSource  = "source"
	LabelResult  = "result"
	LabelGame    = "game"
	LabelOutcome = "outcome"
)

// Label values
const (
	ResultSuccess   = "success"
	ResultFail      = "fail"
	SourceSale      = "sale"
	SourceMinigame  = "minigame"
	UnmatchedRoute  = "unmatched"
	UnknownRarity   = "unknown"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ChanceBuckets spans the clamped upgrade chance range [3, 90].
var ChanceBuckets = []float64{5, 10, 20, 30, 45, 60, 75, 90}

// ============================================================================
// Log Messages
// ============================================================================

// Error messages
const (
	ErrMsgHijackUnsupported = "response writer does not support hijacking"
)

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
