// Package metrics exposes prometheus counters for the API and its domain events
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics surface handlers and services write to
type Recorder interface {
	IncRequestsTotal(route string, status int)
	ObserveRequestDuration(route string, d time.Duration)
	// IncSubmission counts accepted public form submissions by kind
	IncSubmission(kind string)
	// IncModeration counts review moderation decisions
	IncModeration(decision string)
	// IncLogin counts admin sign in attempts by outcome
	IncLogin(outcome string)
	// IncRateLimited counts requests turned away by a limiter
	IncRateLimited(scope string)
}

// Prom is the prometheus backed Recorder
type Prom struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	submissions     *prometheus.CounterVec
	moderations     *prometheus.CounterVec
	logins          *prometheus.CounterVec
	rateLimited     *prometheus.CounterVec
}

// New registers the admissions collectors on reg
// a nil reg uses the prometheus default registerer
func New(reg prometheus.Registerer) *Prom {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Prom{
		requestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "admissions_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"route", "status"}),

		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "admissions_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),

		submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "admissions_submissions_total",
			Help: "Accepted public form submissions",
		}, []string{"kind"}),

		moderations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "admissions_review_moderations_total",
			Help: "Review moderation decisions",
		}, []string{"decision"}),

		logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "admissions_admin_logins_total",
			Help: "Admin sign in attempts",
		}, []string{"outcome"}),

		rateLimited: f.NewCounterVec(prometheus.CounterOpts{
			Name: "admissions_rate_limited_total",
			Help: "Requests rejected by a rate limiter",
		}, []string{"scope"}),
	}
}

func (m *Prom) IncRequestsTotal(route string, status int) {
	m.requestsTotal.WithLabelValues(route, statusBucket(status)).Inc()
}

func (m *Prom) ObserveRequestDuration(route string, d time.Duration) {
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

func (m *Prom) IncSubmission(kind string)     { m.submissions.WithLabelValues(kind).Inc() }
func (m *Prom) IncModeration(decision string) { m.moderations.WithLabelValues(decision).Inc() }
func (m *Prom) IncLogin(outcome string)       { m.logins.WithLabelValues(outcome).Inc() }
func (m *Prom) IncRateLimited(scope string)   { m.rateLimited.WithLabelValues(scope).Inc() }

func statusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// Handler serves the exposition format for g
// a nil g uses the prometheus default gatherer
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Noop returns a Recorder that drops everything
func Noop() Recorder { return noop{} }

// OrNoop returns r, or a no op recorder when r is nil
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return noop{}
	}
	return r
}

type noop struct{}

func (noop) IncRequestsTotal(string, int)                 {}
func (noop) ObserveRequestDuration(string, time.Duration) {}
func (noop) IncSubmission(string)                         {}
func (noop) IncModeration(string)                         {}
func (noop) IncLogin(string)                              {}
func (noop) IncRateLimited(string)                        {}
