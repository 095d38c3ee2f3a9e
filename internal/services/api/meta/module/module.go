// Package module wires health, readiness and build info endpoints into the API
package module

import (
	"time"

	"admissions/internal/core/version"
	modkit "admissions/internal/modkit"
	"admissions/internal/modkit/httpkit"

	metahttp "admissions/internal/services/api/meta/http"
)

// Module serves /meta, it exposes no ports
type Module struct {
	modkit.Base
}

// New constructs the meta module, uptime counts from this call
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	d := metahttp.Deps{
		ServiceName: deps.Cfg.Prefix("CORE_API_").MayString("SERVICE_NAME", version.Service),
		StartedAt:   time.Now(),
	}
	// a typed nil inside the interface would read as configured
	if deps.PG != nil {
		d.PG = deps.PG
	}
	if deps.RDS != nil {
		d.RDS = deps.RDS
	}
	return &Module{Base: modkit.NewBase("meta", "/meta", func(r httpkit.Router) { metahttp.Register(r, d) }, opts...)}
}

func (m *Module) Ports() any { return nil }
