// Package metrics exposes the service's prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "messdesk"

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	ComplaintsCreated   *prometheus.CounterVec
	UnroutableCreated   prometheus.Counter
	Transitions         *prometheus.CounterVec
	TransitionsRejected *prometheus.CounterVec
	Assignments         *prometheus.CounterVec
	AssignmentFailures  prometheus.Counter
	EventsDispatched    *prometheus.CounterVec
	EventsDropped       *prometheus.CounterVec
	SinkFailures        *prometheus.CounterVec
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry that also carries the Go and process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ComplaintsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "complaints_created_total",
			Help:      "Complaints filed, by category.",
		}, []string{"category"}),
		UnroutableCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "complaints_unroutable_total",
			Help:      "Complaints filed against a mess with no assigned supervisor.",
		}),
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "complaint_transitions_total",
			Help:      "Applied complaint status transitions.",
		}, []string{"from", "to"}),
		TransitionsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "complaint_transitions_rejected_total",
			Help:      "Rejected complaint status transitions, by error kind.",
		}, []string{"kind"}),
		Assignments: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mess_assignments_total",
			Help:      "Mess assignments written, by target selector.",
		}, []string{"selector"}),
		AssignmentFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mess_assignment_failures_total",
			Help:      "Students a batch assignment could not update.",
		}),
		EventsDispatched: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notify_events_dispatched_total",
			Help:      "Lifecycle events delivered to sinks, by kind.",
		}, []string{"kind"}),
		EventsDropped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notify_events_dropped_total",
			Help:      "Lifecycle events dropped because the queue was full or closed.",
		}, []string{"kind"}),
		SinkFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notify_sink_failures_total",
			Help:      "Sink delivery failures, by sink.",
		}, []string{"sink"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Registry returns the registry backing m
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per matched route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ComplaintCreated records a filed complaint
func (m *Metrics) ComplaintCreated(category string, routable bool) {
	if m == nil {
		return
	}
	m.ComplaintsCreated.WithLabelValues(category).Inc()
	if !routable {
		m.UnroutableCreated.Inc()
	}
}

// TransitionApplied records an applied status change
func (m *Metrics) TransitionApplied(from, to string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(from, to).Inc()
}

// TransitionRejected records a refused status change
func (m *Metrics) TransitionRejected(kind string) {
	if m == nil {
		return
	}
	m.TransitionsRejected.WithLabelValues(kind).Inc()
}

// AssignmentsWritten records n mess assignments made through selector
func (m *Metrics) AssignmentsWritten(selector string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.Assignments.WithLabelValues(selector).Add(float64(n))
}

// AssignmentsFailed records n students a batch could not update
func (m *Metrics) AssignmentsFailed(n int) {
	if m == nil || n == 0 {
		return
	}
	m.AssignmentFailures.Add(float64(n))
}

// EventDispatched records an event handed to the sinks
func (m *Metrics) EventDispatched(kind string) {
	if m == nil {
		return
	}
	m.EventsDispatched.WithLabelValues(kind).Inc()
}

// EventDropped records an event that never reached the sinks
func (m *Metrics) EventDropped(kind string) {
	if m == nil {
		return
	}
	m.EventsDropped.WithLabelValues(kind).Inc()
}

// SinkFailed records a failed delivery
func (m *Metrics) SinkFailed(sink string) {
	if m == nil {
		return
	}
	m.SinkFailures.WithLabelValues(sink).Inc()
}
