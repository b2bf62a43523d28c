// Package health runs dependency checks and reports liveness and readiness.
//
//	probes := health.NewProbeManager(version.Version)
//	probes.AddChecker(health.NewChecker("user-store", checkUsers))
//
//	result := probes.CheckReadiness(ctx)
package health

import (
	"context"
	"time"
)

// Checker verifies one dependency. Check should respect the context deadline.
type Checker interface {
	Name() string
	Check(ctx context.Context) *Result
}

// Status represents the health check status.
type Status string

const (
	// StatusHealthy indicates the checked component is fully operational.
	StatusHealthy Status = "healthy"

	// StatusDegraded indicates the component works with reduced functionality.
	StatusDegraded Status = "degraded"

	// StatusUnhealthy indicates the component is not working.
	StatusUnhealthy Status = "unhealthy"
)

func (s Status) String() string {
	return string(s)
}

// Result represents the result of a health check.
type Result struct {
	Status  Status         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
	Latency time.Duration  `json:"latency_ns"`
}

// NewResult creates a new health check result with the given status and message.
func NewResult(status Status, message string) *Result {
	return &Result{
		Status:  status,
		Message: message,
		Details: make(map[string]any),
	}
}

// WithDetail adds a detail to the result and returns the result for chaining.
func (r *Result) WithDetail(key string, value any) *Result {
	r.Details[key] = value
	return r
}

// Healthy creates a healthy result with the given message.
func Healthy(message string) *Result {
	return NewResult(StatusHealthy, message)
}

// Degraded creates a degraded result with the given message.
func Degraded(message string) *Result {
	return NewResult(StatusDegraded, message)
}

// Unhealthy creates an unhealthy result with the given message.
func Unhealthy(message string) *Result {
	return NewResult(StatusUnhealthy, message)
}

type funcChecker struct {
	name string
	fn   func(context.Context) *Result
}

// NewChecker adapts fn to a Checker named name
func NewChecker(name string, fn func(context.Context) *Result) Checker {
	return funcChecker{name: name, fn: fn}
}

func (c funcChecker) Name() string { return c.name }

func (c funcChecker) Check(ctx context.Context) *Result { return c.fn(ctx) }
