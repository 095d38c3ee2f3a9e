// Package http provides http transport for admin sessions
package http

import (
	stdhttp "net/http"

	"admissions/internal/modkit/httpkit"
	"admissions/internal/services/api/auth/domain"
	svc "admissions/internal/services/api/auth/service"
)

// Register mounts the development seed endpoint
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Post(r, "/seed", h.seed)
}

// RegisterAdmin mounts sign in, sign out and session lookup
// the admin gate must exempt the login path, limit wraps only login
func RegisterAdmin(r httpkit.Router, s svc.Service, limit func(stdhttp.Handler) stdhttp.Handler) {
	h := &handlers{svc: s}

	r.Group(func(g httpkit.Router) {
		if limit != nil {
			g.Use(limit)
		}
		httpkit.PostJSON[domain.LoginInput](g, "/login", h.login)
	})
	httpkit.Post(r, "/logout", h.logout)
	httpkit.Get(r, "/session", h.session)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /admin/login Admin adminLogin
// @Summary Sign in as admin
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body domain.LoginInput true "Credentials"
// @Success 200 {object} domain.Session "ok"
// @Failure 401 {object} httpkit.Envelope "invalid admin credentials"
// @Router /admin/login [post]
func (h *handlers) login(r *stdhttp.Request, in domain.LoginInput) (any, error) {
	return h.svc.Login(r.Context(), in)
}

// swagger:route POST /admin/logout Admin adminLogout
// @Summary Revoke the current session
// @Tags Admin
// @Produce json
// @Success 200 {object} domain.LoggedOut "ok"
// @Router /admin/logout [post]
func (h *handlers) logout(r *stdhttp.Request) (any, error) {
	return h.svc.Logout(r.Context())
}

// swagger:route GET /admin/session Admin adminSession
// @Summary Current session
// @Tags Admin
// @Produce json
// @Success 200 {object} domain.Current "ok"
// @Router /admin/session [get]
func (h *handlers) session(r *stdhttp.Request) (any, error) {
	return h.svc.Current(r.Context())
}

// swagger:route POST /auth/seed Auth authSeed
// @Summary Create the configured admin account
// @Tags Auth
// @Produce json
// @Success 201 {object} domain.Seeded "created"
// @Failure 403 {object} httpkit.Envelope "seeding is only allowed in development"
// @Failure 409 {object} httpkit.Envelope "admin user already exists"
// @Router /auth/seed [post]
func (h *handlers) seed(r *stdhttp.Request) (any, error) {
	out, err := h.svc.Seed(r.Context())
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}
