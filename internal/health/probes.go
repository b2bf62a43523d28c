package health

import (
	"context"
	"sync/atomic"
	"time"
)

// ProbeManager adds liveness and readiness state to a Manager.
type ProbeManager struct {
	*Manager

	startTime  time.Time
	listening  atomic.Bool
	inShutdown atomic.Bool
	version    string
}

// NewProbeManager creates a probe manager reporting version
func NewProbeManager(version string) *ProbeManager {
	return &ProbeManager{
		Manager:   NewManager(),
		startTime: time.Now(),
		version:   version,
	}
}

// MarkListening records that the server accepts connections
func (pm *ProbeManager) MarkListening() {
	pm.listening.Store(true)
}

// MarkShutdown makes readiness fail while in-flight requests drain
func (pm *ProbeManager) MarkShutdown() {
	pm.inShutdown.Store(true)
}

// ProbeResult is the body of a probe response.
type ProbeResult struct {
	Status    Status             `json:"status"`
	Version   string             `json:"version,omitempty"`
	Uptime    string             `json:"uptime,omitempty"`
	Checks    map[string]*Result `json:"checks,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

func (pm *ProbeManager) result(status Status, checks map[string]*Result) *ProbeResult {
	return &ProbeResult{
		Status:    status,
		Version:   pm.version,
		Uptime:    time.Since(pm.startTime).Round(time.Second).String(),
		Checks:    checks,
		Timestamp: time.Now(),
	}
}

// CheckLiveness reports whether the process is responsive. It runs no checks;
// a server that is shutting down is degraded.
func (pm *ProbeManager) CheckLiveness(context.Context) *ProbeResult {
	status := StatusHealthy
	if pm.inShutdown.Load() {
		status = StatusDegraded
	}
	return pm.result(status, nil)
}

// CheckReadiness runs every check. It fails without running them before the
// server listens and once shutdown has begun.
func (pm *ProbeManager) CheckReadiness(ctx context.Context) *ProbeResult {
	if !pm.listening.Load() || pm.inShutdown.Load() {
		return pm.result(StatusUnhealthy, nil)
	}

	checks := pm.Check(ctx)
	return pm.result(OverallStatus(checks), checks)
}
