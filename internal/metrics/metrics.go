package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	CasesOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCasesOpened,
			Help: HelpTextCasesOpened,
		},
		[]string{LabelCase, LabelRarity},
	)

	ItemsSold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameItemsSold,
			Help: HelpTextItemsSold,
		},
	)

	MoneyPaidOut = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMoneyPaidOut,
			Help: HelpTextMoneyPaidOut,
		},
		[]string{LabelSource},
	)

	UpgradeAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUpgradeAttempts,
			Help: HelpTextUpgradeAttempts,
		},
		[]string{LabelResult},
	)

	UpgradeChance = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameUpgradeChance,
			Help:    HelpTextUpgradeChance,
			Buckets: ChanceBuckets,
		},
	)

	MinigamePlays = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMinigamePlays,
			Help: HelpTextMinigamePlays,
		},
		[]string{LabelGame, LabelOutcome},
	)

	DailyResetRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDailyResetRecords,
			Help: HelpTextDailyResetRecords,
		},
	)

	LiveFeedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameLiveFeedClients,
			Help: HelpTextLiveFeedClients,
		},
	)
)
