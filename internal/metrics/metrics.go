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

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	SpinsRequested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSpinsRequested,
			Help: HelpTextSpinsRequested,
		},
	)

	SpinBatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSpinBatches,
			Help: HelpTextSpinBatches,
		},
	)

	MilestonesHit = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMilestonesHit,
			Help: HelpTextMilestonesHit,
		},
		[]string{LabelMilestone},
	)

	SurprisesHit = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSurprisesHit,
			Help: HelpTextSurprisesHit,
		},
	)

	SpinsThrottled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSpinsThrottled,
			Help: HelpTextSpinsThrottled,
		},
	)

	ApprovalsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameApprovalsResolved,
			Help: HelpTextApprovalsResolved,
		},
		[]string{LabelSubject, LabelDecision},
	)

	ChipsCredited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameChipsCredited,
			Help: HelpTextChipsCredited,
		},
	)

	DepositsCredited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDepositsCredited,
			Help: HelpTextDepositsCredited,
		},
	)

	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNotificationFailures,
			Help: HelpTextNotificationFailures,
		},
		[]string{LabelOp},
	)
)
