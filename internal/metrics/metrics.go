// Package metrics defines the Prometheus metrics exported by the dev server.
package metrics

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "alumni_devserver"

// Outcome label values
const (
	OutcomeSuccess     = "success"
	OutcomeRejected    = "rejected"
	OutcomeInvalid     = "invalid"
	OutcomeDuplicate   = "duplicate"
	OutcomeRateLimited = "rate_limited"
)

// Metrics holds all Prometheus metrics for the dev server
type Metrics struct {
	// HTTP metrics
	RequestDuration *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec
	InFlight        prometheus.Gauge

	// Authentication metrics
	Logins        *prometheus.CounterVec
	Registrations *prometheus.CounterVec
	TokensIssued  prometheus.Counter
	TokenFailures *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status_code"},
		),
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		InFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "in_flight_requests",
				Help:      "Number of HTTP requests currently being processed",
			},
		),

		Logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "logins_total",
				Help:      "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
		Registrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registrations_total",
				Help:      "Registration attempts by role and outcome",
			},
			[]string{"role", "outcome"},
		),
		TokensIssued: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tokens_issued_total",
				Help:      "Total number of bearer tokens issued",
			},
		),
		TokenFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "token_failures_total",
				Help:      "Requests rejected with 401 by reason",
			},
			[]string{"reason"},
		),
	}
}

// Middleware returns an Echo middleware that records HTTP metrics.
// Requests to metricsPath are not recorded.
func (m *Metrics) Middleware(metricsPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if route == metricsPath {
				return next(c)
			}

			m.InFlight.Inc()
			defer m.InFlight.Dec()

			timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
				status := strconv.Itoa(c.Response().Status)
				m.RequestDuration.WithLabelValues(c.Request().Method, route, status).Observe(v)
				m.RequestsTotal.WithLabelValues(c.Request().Method, route, status).Inc()
			}))

			err := next(c)
			if err != nil {
				// let the error handler write the status before it is observed
				c.Error(err)
				err = nil
			}
			timer.ObserveDuration()
			return err
		}
	}
}

// RecordLogin records a login attempt
func (m *Metrics) RecordLogin(outcome string) {
	m.Logins.WithLabelValues(outcome).Inc()
}

// RecordRegistration records a registration attempt
func (m *Metrics) RecordRegistration(role, outcome string) {
	if role == "" {
		role = "unknown"
	}
	m.Registrations.WithLabelValues(role, outcome).Inc()
}

// RecordTokenFailure records a rejected bearer token
func (m *Metrics) RecordTokenFailure(reason string) {
	m.TokenFailures.WithLabelValues(reason).Inc()
}
