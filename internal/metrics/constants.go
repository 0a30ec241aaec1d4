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
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameSpinsRequested       = "spins_requested_total"
	MetricNameSpinBatches          = "spin_batches_total"
	MetricNameMilestonesHit        = "milestones_hit_total"
	MetricNameSurprisesHit         = "surprises_hit_total"
	MetricNameSpinsThrottled       = "spins_throttled_total"
	MetricNameApprovalsResolved    = "approvals_resolved_total"
	MetricNameChipsCredited        = "chips_credited_total"
	MetricNameDepositsCredited     = "deposit_credits_granted_total"
	MetricNameNotificationFailures = "notification_failures_total"
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
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextSpinsRequested       = "Total number of unit spins requested"
	HelpTextSpinBatches          = "Total number of spin batch requests settled"
	HelpTextMilestonesHit        = "Total number of milestone rewards fired"
	HelpTextSurprisesHit         = "Total number of surprise rewards fired"
	HelpTextSpinsThrottled       = "Total number of spin requests rejected by the anti-cheat guard"
	HelpTextApprovalsResolved    = "Total number of approval requests resolved"
	HelpTextChipsCredited        = "Total chips credited to accounts via approvals"
	HelpTextDepositsCredited     = "Total spin credits granted from approved deposits"
	HelpTextNotificationFailures = "Total number of failed operator notification deliveries"
)

// ============================================================================
// Metric Labels
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelMilestone = "milestone"
	LabelSubject   = "subject"
	LabelDecision  = "decision"
	LabelOp        = "op"
)

// HTTPLatencyBuckets are the histogram buckets for request duration
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
