package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Status represents the health status of the gateway
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// CheckResult represents the result of a health check
type CheckResult struct {
	Name     string        `json:"name"`
	Status   Status        `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
}

// CheckFunc reports on one part of the gateway
type CheckFunc func(ctx context.Context) CheckResult

// Health runs named checks and serves the combined report
type Health struct {
	mu      sync.RWMutex
	checks  map[string]CheckFunc
	version string
	startAt time.Time
}

// NewHealth creates an empty health registry
func NewHealth(version string) *Health {
	return &Health{
		checks:  make(map[string]CheckFunc),
		version: version,
		startAt: time.Now(),
	}
}

// Register adds or replaces a check
func (h *Health) Register(name string, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = fn
}

// Report represents the overall health report
type Report struct {
	Version   string        `json:"version"`
	Status    Status        `json:"status"`
	Uptime    string        `json:"uptime"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    []CheckResult `json:"checks"`
}

// Check runs every check in name order. The report is unhealthy if any
// check is, degraded if any check is degraded.
func (h *Health) Check(ctx context.Context) *Report {
	h.mu.RLock()
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	checks := make(map[string]CheckFunc, len(h.checks))
	for k, v := range h.checks {
		checks[k] = v
	}
	h.mu.RUnlock()
	sort.Strings(names)

	report := &Report{
		Version:   h.version,
		Status:    StatusHealthy,
		Uptime:    time.Since(h.startAt).Round(time.Second).String(),
		Timestamp: time.Now().UTC(),
		Checks:    make([]CheckResult, 0, len(names)),
	}
	for _, name := range names {
		start := time.Now()
		result := checks[name](ctx)
		result.Name = name
		result.Duration = time.Since(start)
		report.Checks = append(report.Checks, result)

		switch result.Status {
		case StatusUnhealthy:
			report.Status = StatusUnhealthy
		case StatusDegraded:
			if report.Status != StatusUnhealthy {
				report.Status = StatusDegraded
			}
		}
	}
	return report
}

// ServeHTTP writes the report as JSON, with 503 when unhealthy
func (h *Health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	report := h.Check(ctx)
	w.Header().Set("Content-Type", "application/json")
	if report.Status == StatusUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(report)
}
