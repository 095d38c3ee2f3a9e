package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Dashboard(ctx context.Context) (Dashboard, error)
	Growth(ctx context.Context) (Growth, error)
	DailyGrowth(ctx context.Context) (DailyGrowth, error)
}
