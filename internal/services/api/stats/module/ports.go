package module

import (
	"context"

	"admissions/internal/services/api/stats/domain"
	statssvc "admissions/internal/services/api/stats/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return adaptStatsPort{svc: m.svc} }

type adaptStatsPort struct{ svc statssvc.Service }

// Dashboard returns the admin overview
func (a adaptStatsPort) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	return a.svc.Dashboard(ctx)
}

// Growth returns the public monthly chart
func (a adaptStatsPort) Growth(ctx context.Context) (domain.Growth, error) {
	return a.svc.Growth(ctx)
}

// DailyGrowth returns the public daily chart
func (a adaptStatsPort) DailyGrowth(ctx context.Context) (domain.DailyGrowth, error) {
	return a.svc.DailyGrowth(ctx)
}
