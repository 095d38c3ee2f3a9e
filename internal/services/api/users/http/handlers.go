// Package http provides http transport for user administration
package http

import (
	stdhttp "net/http"

	"admissions/internal/modkit/httpkit"
	"admissions/internal/services/api/users/domain"
	svc "admissions/internal/services/api/users/service"
)

// RegisterAdmin mounts the back office endpoints, callers put these behind the admin gate
func RegisterAdmin(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.list)
	httpkit.PatchJSON[domain.UpdateInput](r, "/{id}", h.update)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /admin/users Admin adminUsersList
// @Summary List users
// @Tags Admin
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Param role query string false "Role filter"
// @Param profile_status query string false "Profile status filter"
// @Param search query string false "Name, email or college contains"
// @Success 200 {object} httpkit.ListBody "ok"
// @Router /admin/users [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	q, err := httpkit.Query[domain.ListQuery](r)
	if err != nil {
		return nil, err
	}
	res, err := h.svc.List(r.Context(), q)
	if err != nil {
		return nil, err
	}
	return httpkit.List(res.Items, res.Total, res.Page, res.Limit), nil
}

// swagger:route PATCH /admin/users/{id} Admin adminUsersUpdate
// @Summary Update a user
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param payload body domain.UpdateInput true "Fields to change"
// @Success 200 {object} domain.User "ok"
// @Failure 404 {object} httpkit.Envelope "user not found"
// @Router /admin/users/{id} [patch]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	return h.svc.Update(r.Context(), httpkit.Param(r, "id"), in)
}
