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
	BoxesOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBoxesOpened,
			Help: HelpTextBoxesOpened,
		},
		[]string{LabelOption},
	)

	ItemsMinted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsMinted,
			Help: HelpTextItemsMinted,
		},
		[]string{LabelOption},
	)

	OpenFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOpenFailures,
			Help: HelpTextOpenFailures,
		},
		[]string{LabelOption},
	)

	Warnings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWarnings,
			Help: HelpTextWarnings,
		},
	)
)
