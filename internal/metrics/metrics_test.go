package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	tests := []struct {
		name   string
		metric any
	}{
		{"RequestDuration", m.RequestDuration},
		{"RequestsTotal", m.RequestsTotal},
		{"InFlight", m.InFlight},
		{"Logins", m.Logins},
		{"Registrations", m.Registrations},
		{"TokensIssued", m.TokensIssued},
		{"TokenFailures", m.TokenFailures},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestAuthMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordLogin(OutcomeSuccess)
	m.RecordLogin(OutcomeRejected)
	m.RecordLogin(OutcomeRejected)
	m.RecordRegistration("alumni", OutcomeSuccess)
	m.RecordRegistration("", OutcomeInvalid)
	m.RecordTokenFailure("expired")

	if got := testutil.ToFloat64(m.Logins.WithLabelValues(OutcomeRejected)); got != 2 {
		t.Errorf("rejected logins = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Registrations.WithLabelValues("unknown", OutcomeInvalid)); got != 1 {
		t.Errorf("registrations without role = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.TokenFailures.WithLabelValues("expired")); got != 1 {
		t.Errorf("token failures = %v, want 1", got)
	}
}

func TestMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	e := echo.New()
	e.Use(m.Middleware("/metrics"))
	e.GET("/api/users/me", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/api/fail", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "nope")
	})
	e.GET("/metrics", echo.WrapHandler(HandlerFor(reg)))

	for _, path := range []string{"/api/users/me", "/api/users/me", "/api/fail", "/metrics"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/users/me", "200")); got != 2 {
		t.Errorf("requests to /api/users/me = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/fail", "418")); got != 1 {
		t.Errorf("failed requests should be recorded with their status, got %v", got)
	}
	if got := testutil.ToFloat64(m.InFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
	if n := testutil.CollectAndCount(m.RequestsTotal); n != 2 {
		t.Errorf("/metrics should not be recorded, got %d series", n)
	}
}

func TestRegistryHandler(t *testing.T) {
	reg, m := NewRegistry()
	m.RecordLogin(OutcomeSuccess)
	GaugeFunc(reg, "accounts", "Registered accounts", func() float64 { return 3 })

	srv := httptest.NewServer(HandlerFor(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		`alumni_devserver_logins_total{outcome="success"} 1`,
		`alumni_devserver_accounts 3`,
		`go_goroutines`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("scrape output missing %q", want)
		}
	}
}

func TestGaugeFuncDuplicatePanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	GaugeFunc(reg, "accounts", "Registered accounts", func() float64 { return 0 })

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("registering the same gauge twice should panic")
		}
		if err, ok := r.(error); ok && !errors.As(err, new(prometheus.AlreadyRegisteredError)) {
			t.Errorf("unexpected panic: %v", err)
		}
	}()
	GaugeFunc(reg, "accounts", "Registered accounts", func() float64 { return 0 })
}
