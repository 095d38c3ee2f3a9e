// Package http provides http transport for stats
package http

import (
	stdhttp "net/http"

	"admissions/internal/modkit/httpkit"
	svc "admissions/internal/services/api/stats/service"
)

// Register mounts the public growth charts
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/growth", h.growth)
	httpkit.Get(r, "/growth/daily", h.daily)
}

// RegisterAdmin mounts the dashboard, callers put it behind the admin gate
func RegisterAdmin(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/dashboard", h.dashboard)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /stats/growth Stats statsGrowth
// @Summary Registrations per month over the last year
// @Tags Stats
// @Produce json
// @Success 200 {object} domain.Growth "ok"
// @Router /stats/growth [get]
func (h *handlers) growth(r *stdhttp.Request) (any, error) {
	return h.svc.Growth(r.Context())
}

// swagger:route GET /stats/growth/daily Stats statsGrowthDaily
// @Summary Registrations per day over the last thirty days
// @Tags Stats
// @Produce json
// @Success 200 {object} domain.DailyGrowth "ok"
// @Router /stats/growth/daily [get]
func (h *handlers) daily(r *stdhttp.Request) (any, error) {
	return h.svc.DailyGrowth(r.Context())
}

// swagger:route GET /admin/stats/dashboard Admin adminStatsDashboard
// @Summary Dashboard counters and charts
// @Tags Admin
// @Produce json
// @Success 200 {object} domain.Dashboard "ok"
// @Router /admin/stats/dashboard [get]
func (h *handlers) dashboard(r *stdhttp.Request) (any, error) {
	return h.svc.Dashboard(r.Context())
}
