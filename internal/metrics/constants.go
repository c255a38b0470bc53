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
	MetricNameBoxesOpened  = "lootbox_boxes_opened_total"
	MetricNameItemsMinted  = "lootbox_items_minted_total"
	MetricNameOpenFailures = "lootbox_open_failures_total"
	MetricNameWarnings     = "lootbox_warnings_total"
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
	HelpTextBoxesOpened  = "Total number of loot boxes opened"
	HelpTextItemsMinted  = "Total number of item units minted from box openings"
	HelpTextOpenFailures = "Total number of failed box-opening requests"
	HelpTextWarnings     = "Total number of advisory warnings emitted"
)

// ============================================================================
// Metric Labels
// ============================================================================

const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelOption = "option"
)

// HTTPLatencyBuckets are the histogram buckets for request latency.
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
