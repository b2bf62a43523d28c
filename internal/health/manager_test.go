package health

import (
	"context"
	"sync"
	"testing"
	"time"
)

// mockChecker is a test double for health checks
type mockChecker struct {
	name   string
	result *Result
	delay  time.Duration
}

func (m *mockChecker) Name() string {
	return m.name
}

func (m *mockChecker) Check(ctx context.Context) *Result {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return Unhealthy("check cancelled").
				WithDetail("error", ctx.Err().Error())
		}
	}
	return m.result
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusHealthy, "healthy"},
		{StatusDegraded, "degraded"},
		{StatusUnhealthy, "unhealthy"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestResultConstructors(t *testing.T) {
	r := Degraded("slow").WithDetail("latency_ms", 900)

	if r.Status != StatusDegraded {
		t.Errorf("Status = %s, want %s", r.Status, StatusDegraded)
	}
	if r.Message != "slow" {
		t.Errorf("Message = %q, want %q", r.Message, "slow")
	}
	if r.Details["latency_ms"] != 900 {
		t.Errorf("detail not recorded: %v", r.Details)
	}
	if Healthy("").Status != StatusHealthy || Unhealthy("").Status != StatusUnhealthy {
		t.Error("constructors should set their status")
	}
}

func TestWithTimeout(t *testing.T) {
	manager := NewManager()
	if manager.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", manager.timeout, DefaultTimeout)
	}

	if returned := manager.WithTimeout(10 * time.Second); returned != manager {
		t.Error("WithTimeout should return same manager for chaining")
	}
	if manager.timeout != 10*time.Second {
		t.Errorf("timeout = %v, want %v", manager.timeout, 10*time.Second)
	}
}

func TestCheck(t *testing.T) {
	manager := NewManager()
	manager.AddChecker(&mockChecker{name: "users", result: Healthy("3 accounts")})
	manager.AddChecker(&mockChecker{name: "limiter", result: Degraded("busy")})
	manager.AddChecker(NewChecker("signing-key", func(context.Context) *Result { return Healthy("ok") }))

	results := manager.Check(context.Background())

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results["users"].Status != StatusHealthy {
		t.Errorf("users = %s, want healthy", results["users"].Status)
	}
	if results["limiter"].Status != StatusDegraded {
		t.Errorf("limiter = %s, want degraded", results["limiter"].Status)
	}
	if results["signing-key"].Latency == 0 {
		t.Error("latency should be filled in")
	}
}

func TestCheckNilResult(t *testing.T) {
	manager := NewManager()
	manager.AddChecker(&mockChecker{name: "broken"})

	results := manager.Check(context.Background())
	if results["broken"].Status != StatusUnhealthy {
		t.Errorf("nil result should be unhealthy, got %s", results["broken"].Status)
	}
}

func TestCheckWithTimeout(t *testing.T) {
	manager := NewManager().WithTimeout(20 * time.Millisecond)
	manager.AddChecker(&mockChecker{name: "slow", result: Healthy("ok"), delay: time.Second})

	start := time.Now()
	results := manager.Check(context.Background())

	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Check took %v, should respect the timeout", elapsed)
	}
	if results["slow"].Status != StatusUnhealthy {
		t.Errorf("timed out check = %s, want unhealthy", results["slow"].Status)
	}
}

func TestCheckRunsInParallel(t *testing.T) {
	manager := NewManager()
	for _, name := range []string{"a", "b", "c", "d"} {
		manager.AddChecker(&mockChecker{name: name, result: Healthy(""), delay: 50 * time.Millisecond})
	}

	start := time.Now()
	manager.Check(context.Background())

	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Errorf("Check took %v, checks should run concurrently", elapsed)
	}
}

func TestOverallStatus(t *testing.T) {
	tests := []struct {
		name    string
		results map[string]*Result
		want    Status
	}{
		{"no checks", nil, StatusHealthy},
		{"all healthy", map[string]*Result{"a": Healthy(""), "b": Healthy("")}, StatusHealthy},
		{"one degraded", map[string]*Result{"a": Healthy(""), "b": Degraded("")}, StatusDegraded},
		{"unhealthy wins", map[string]*Result{"a": Degraded(""), "b": Unhealthy("")}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverallStatus(tt.results); got != tt.want {
				t.Errorf("OverallStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCheckNames(t *testing.T) {
	manager := NewManager()
	manager.AddChecker(&mockChecker{name: "first"})
	manager.AddChecker(&mockChecker{name: "second"})

	names := manager.CheckNames()
	if len(names) != 2 || names[0] != "first" || names[1] != "second" {
		t.Errorf("CheckNames() = %v, want [first second]", names)
	}
}

func TestProbeLifecycle(t *testing.T) {
	pm := NewProbeManager("1.2.3")
	pm.AddChecker(&mockChecker{name: "users", result: Healthy("")})
	ctx := context.Background()

	if got := pm.CheckReadiness(ctx).Status; got != StatusUnhealthy {
		t.Errorf("readiness before listening = %s, want unhealthy", got)
	}
	if got := pm.CheckLiveness(ctx).Status; got != StatusHealthy {
		t.Errorf("liveness = %s, want healthy", got)
	}

	pm.MarkListening()
	ready := pm.CheckReadiness(ctx)
	if ready.Status != StatusHealthy {
		t.Errorf("readiness while listening = %s, want healthy", ready.Status)
	}
	if ready.Version != "1.2.3" || len(ready.Checks) != 1 {
		t.Errorf("unexpected readiness result: %+v", ready)
	}

	pm.MarkShutdown()
	if got := pm.CheckReadiness(ctx).Status; got != StatusUnhealthy {
		t.Errorf("readiness during shutdown = %s, want unhealthy", got)
	}
	if got := pm.CheckLiveness(ctx).Status; got != StatusDegraded {
		t.Errorf("liveness during shutdown = %s, want degraded", got)
	}
}

func TestConcurrentProbeAccess(t *testing.T) {
	pm := NewProbeManager("dev")
	pm.AddChecker(&mockChecker{name: "users", result: Healthy("")})
	pm.MarkListening()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pm.CheckReadiness(context.Background())
			pm.CheckLiveness(context.Background())
		}()
	}
	wg.Wait()
}
