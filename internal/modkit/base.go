package modkit

import (
	"admissions/internal/modkit/httpkit"
	str "admissions/internal/platform/strings"
)

// Base is the part every module shares, resolved options plus its public routes
// modules embed it and add Ports and, when they serve the back office, MountAdminRoutes
type Base struct {
	opts   Built
	public func(httpkit.Router)
}

// NewBase resolves opts on top of the module's own name and prefix
// public may be nil for modules that only serve admin routes
func NewBase(name, prefix string, public func(httpkit.Router), opts ...Option) Base {
	return Base{
		opts:   Build(append([]Option{WithName(name), WithPrefix(prefix)}, opts...)...),
		public: public,
	}
}

// MountRoutes mounts the public routes under the module prefix
// WithRegister routes attach after the module's own
func (b Base) MountRoutes(r httpkit.Router) {
	r.Route(b.Prefix(), func(rr httpkit.Router) {
		for _, mw := range b.opts.Mw {
			rr.Use(mw)
		}
		rr = b.opts.Subrouter(rr)
		if b.public != nil {
			b.public(rr)
		}
		if b.opts.Register != nil {
			b.opts.Register(rr)
		}
	})
}

// Admin mounts fn under the module prefix of the gated admin router
func (b Base) Admin(r httpkit.Router, fn func(httpkit.Router)) { r.Route(b.Prefix(), fn) }

func (b Base) Name() string   { return str.MustString(b.opts.Name, "module name") }
func (b Base) Prefix() string { return str.MustPrefix(b.opts.Prefix) }
