// Package http serves the unauthenticated meta endpoints used by probes and dashboards
package http

import (
	"context"
	"net/http"
	"time"

	"admissions/internal/core/version"
	"admissions/internal/modkit/httpkit"
	"admissions/internal/platform/store"
)

// Deps feed the meta handlers
// PG and RDS are probed when they implement store.Pinger, nil means not configured
type Deps struct {
	ServiceName  string
	StartedAt    time.Time
	PG           any
	RDS          any
	ReadyTimeout time.Duration
}

// check states
const (
	statusOK      = "ok"
	statusFail    = "fail"
	statusSkipped = "skipped"
	statusUnknown = "unknown"
)

// Register mounts health, ready, version and service under r
func Register(r httpkit.Router, d Deps) {
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	httpkit.Get(r, "/health", d.health)
	httpkit.Get(r, "/ready", d.ready)
	httpkit.Get(r, "/version", d.version)
	httpkit.Get(r, "/service", d.service)
}

// HealthResponse answers liveness probes
type HealthResponse struct {
	OK      bool   `json:"ok" example:"true"`
	Service string `json:"service" example:"admissions-api"`
	Started string `json:"started" example:"2024-06-15T08:00:00Z"`
	Now     string `json:"now" example:"2024-06-15T08:05:00Z"`
}

// ReadyCheck is one probed dependency, Status is ok, fail, skipped or unknown
type ReadyCheck struct {
	Name   string `json:"name" example:"pg"`
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse is the readiness verdict, Status is ok, degraded or fail
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now" example:"2024-06-15T08:05:00Z"`
}

// ServiceResponse reports the running instance
type ServiceResponse struct {
	Name    string `json:"name" example:"admissions-api"`
	Started string `json:"started" example:"2024-06-15T08:00:00Z"`
	Uptime  int64  `json:"uptime" example:"300"`
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (d Deps) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: d.ServiceName, Started: stamp(d.StartedAt), Now: stamp(time.Now())}, nil
}

// @Summary Readiness with a ping per dependency
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (d Deps) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), d.ReadyTimeout)
	defer cancel()

	checks := []ReadyCheck{check(ctx, "pg", d.PG), check(ctx, "redis", d.RDS)}
	return ReadyResponse{Status: overall(checks), Checks: checks, Now: stamp(time.Now())}, nil
}

func check(ctx context.Context, name string, dep any) ReadyCheck {
	c := ReadyCheck{Name: name}
	switch p, ok := dep.(store.Pinger); {
	case dep == nil:
		c.Status = statusSkipped
	case !ok:
		c.Status = statusUnknown
	default:
		c.Status = statusOK
		if err := p.Ping(ctx); err != nil {
			c.Status, c.Error = statusFail, err.Error()
		}
	}
	return c
}

// overall fails on any failed ping and degrades when something could not be probed
// redis is optional so a skipped check still counts as ok
func overall(checks []ReadyCheck) string {
	verdict := statusOK
	for _, c := range checks {
		switch c.Status {
		case statusFail:
			return statusFail
		case statusUnknown:
			verdict = "degraded"
		}
	}
	return verdict
}

// @Summary Build info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (d Deps) version(*http.Request) (any, error) {
	info := version.Info()
	if d.ServiceName != "" {
		info.Service = d.ServiceName
	}
	return info, nil
}

// @Summary Instance uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (d Deps) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    d.ServiceName,
		Started: stamp(d.StartedAt),
		Uptime:  int64(time.Since(d.StartedAt) / time.Second),
	}, nil
}
