// Package http provides http transport for reviews
package http

import (
	stdhttp "net/http"

	"admissions/internal/modkit/httpkit"
	"admissions/internal/services/api/reviews/domain"
	svc "admissions/internal/services/api/reviews/service"
)

// Register mounts the public review endpoints
// limit wraps only the submission, nil means no limit
func Register(r httpkit.Router, s svc.Service, limit func(stdhttp.Handler) stdhttp.Handler) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.listPublic)
	r.Group(func(g httpkit.Router) {
		if limit != nil {
			g.Use(limit)
		}
		httpkit.PostJSON[domain.SubmitInput](g, "/", h.submit)
	})
}

// RegisterAdmin mounts moderation endpoints, callers put these behind the admin gate
func RegisterAdmin(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.list)
	httpkit.Post(r, "/{id}/approve", h.approve)
	httpkit.Post(r, "/{id}/reject", h.reject)
	httpkit.Delete(r, "/{id}", h.delete)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /reviews Reviews reviewsListPublic
// @Summary List approved reviews
// @Tags Reviews
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param rating query int false "Exact rating"
// @Param college query string false "College contains"
// @Success 200 {object} httpkit.ListBody "ok"
// @Router /reviews [get]
func (h *handlers) listPublic(r *stdhttp.Request) (any, error) {
	q, err := httpkit.Query[domain.PublicQuery](r)
	if err != nil {
		return nil, err
	}
	res, err := h.svc.ListPublic(r.Context(), q)
	if err != nil {
		return nil, err
	}
	return httpkit.List(res.Items, res.Total, res.Page, res.Limit), nil
}

// swagger:route POST /reviews Reviews reviewsSubmit
// @Summary Submit a review for moderation
// @Tags Reviews
// @Accept json
// @Produce json
// @Param payload body domain.SubmitInput true "Review"
// @Success 201 {object} domain.Submitted "created"
// @Failure 400 {object} httpkit.Envelope "validation failed"
// @Failure 429 {object} httpkit.Envelope "too many requests"
// @Router /reviews [post]
func (h *handlers) submit(r *stdhttp.Request, in domain.SubmitInput) (any, error) {
	out, err := h.svc.Submit(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

// swagger:route GET /admin/reviews Admin adminReviewsList
// @Summary List reviews for moderation
// @Tags Admin
// @Produce json
// @Param approved query bool false "Approved filter"
// @Param rating query int false "Exact rating"
// @Param search query string false "Name, email, college or text contains"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} httpkit.ListBody "ok"
// @Router /admin/reviews [get]
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

// swagger:route POST /admin/reviews/{id}/approve Admin adminReviewsApprove
// @Summary Approve a review
// @Tags Admin
// @Produce json
// @Param id path string true "Review id"
// @Success 200 {object} domain.Review "ok"
// @Failure 404 {object} httpkit.Envelope "review not found"
// @Router /admin/reviews/{id}/approve [post]
func (h *handlers) approve(r *stdhttp.Request) (any, error) {
	return h.svc.Approve(r.Context(), httpkit.Param(r, "id"))
}

// swagger:route POST /admin/reviews/{id}/reject Admin adminReviewsReject
// @Summary Reject a review
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Review id"
// @Param payload body domain.RejectInput false "Reason"
// @Success 200 {object} domain.Review "ok"
// @Failure 404 {object} httpkit.Envelope "review not found"
// @Router /admin/reviews/{id}/reject [post]
func (h *handlers) reject(r *stdhttp.Request) (any, error) {
	in, err := httpkit.OptionalJSON[domain.RejectInput](r)
	if err != nil {
		return nil, err
	}
	return h.svc.Reject(r.Context(), httpkit.Param(r, "id"), in)
}

// swagger:route DELETE /admin/reviews/{id} Admin adminReviewsDelete
// @Summary Delete a review
// @Tags Admin
// @Produce json
// @Param id path string true "Review id"
// @Success 200 {object} domain.Deleted "ok"
// @Failure 404 {object} httpkit.Envelope "review not found"
// @Router /admin/reviews/{id} [delete]
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	id := httpkit.Param(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return nil, err
	}
	return domain.Deleted{ID: id, Deleted: true}, nil
}
