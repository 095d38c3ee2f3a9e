// Package http provides http transport for registrations
package http

import (
	stdhttp "net/http"

	"admissions/internal/modkit/httpkit"
	"admissions/internal/services/api/registrations/domain"
	svc "admissions/internal/services/api/registrations/service"
)

// Register mounts the public intake endpoint
// limit wraps only the form post, nil means no limit
func Register(r httpkit.Router, s svc.Service, limit func(stdhttp.Handler) stdhttp.Handler) {
	h := &handlers{svc: s}

	r.Group(func(g httpkit.Router) {
		if limit != nil {
			g.Use(limit)
		}
		httpkit.PostJSON[domain.SubmitInput](g, "/", h.submit)
	})
}

// RegisterAdmin mounts the back office endpoints, callers put these behind the admin gate
func RegisterAdmin(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.list)
	httpkit.PatchJSON[domain.UpdateInput](r, "/{id}", h.update)
	httpkit.Delete(r, "/{id}", h.delete)
	httpkit.PostJSON[domain.LinkInput](r, "/{id}/link", h.link)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /registrations Registrations registrationsSubmit
// @Summary Submit a registration
// @Tags Registrations
// @Accept json
// @Produce json
// @Param payload body domain.SubmitInput true "Registration"
// @Success 201 {object} domain.Submitted "created"
// @Failure 400 {object} httpkit.Envelope "validation failed"
// @Failure 429 {object} httpkit.Envelope "too many requests"
// @Router /registrations [post]
func (h *handlers) submit(r *stdhttp.Request, in domain.SubmitInput) (any, error) {
	out, err := h.svc.Submit(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

// swagger:route GET /admin/registrations Admin adminRegistrationsList
// @Summary List registrations
// @Tags Admin
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Param contacted query bool false "Contacted filter"
// @Param status query string false "Status filter"
// @Param search query string false "Name, email or college contains"
// @Success 200 {object} httpkit.ListBody "ok"
// @Router /admin/registrations [get]
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

// swagger:route PATCH /admin/registrations/{id} Admin adminRegistrationsUpdate
// @Summary Update a registration
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Registration id"
// @Param payload body domain.UpdateInput true "Fields to change"
// @Success 200 {object} domain.Registration "ok"
// @Failure 404 {object} httpkit.Envelope "registration not found"
// @Router /admin/registrations/{id} [patch]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	return h.svc.Update(r.Context(), httpkit.Param(r, "id"), in)
}

// swagger:route DELETE /admin/registrations/{id} Admin adminRegistrationsDelete
// @Summary Delete a registration
// @Tags Admin
// @Produce json
// @Param id path string true "Registration id"
// @Success 200 {object} domain.Deleted "ok"
// @Failure 404 {object} httpkit.Envelope "registration not found"
// @Router /admin/registrations/{id} [delete]
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	id := httpkit.Param(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return nil, err
	}
	return domain.Deleted{ID: id, Deleted: true}, nil
}

// swagger:route POST /admin/registrations/{id}/link Admin adminRegistrationsLink
// @Summary Link a registration to a user
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Registration id"
// @Param payload body domain.LinkInput true "User"
// @Success 200 {object} domain.Registration "ok"
// @Failure 404 {object} httpkit.Envelope "registration or user not found"
// @Router /admin/registrations/{id}/link [post]
func (h *handlers) link(r *stdhttp.Request, in domain.LinkInput) (any, error) {
	return h.svc.Link(r.Context(), httpkit.Param(r, "id"), in)
}
