package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"admissions/internal/modkit/httpkit"
	phttp "admissions/internal/platform/net/http"
	"admissions/internal/services/api/reviews/domain"
	revhttp "admissions/internal/services/api/reviews/http"

	"github.com/go-chi/chi/v5"
)

type fakeSvc struct {
	submits  int
	publicQ  domain.PublicQuery
	approved string
	rejected *domain.RejectInput
}

func (f *fakeSvc) Submit(context.Context, domain.SubmitInput) (domain.Submitted, error) {
	f.submits++
	return domain.Submitted{ID: "rv-1", Message: domain.SubmittedMessage}, nil
}

func (f *fakeSvc) ListPublic(_ context.Context, q domain.PublicQuery) (domain.PublicList, error) {
	f.publicQ = q
	return domain.PublicList{Items: []domain.PublicReview{{ID: "rv-1", Rating: 5}}, Total: 1, Page: 1, Limit: 10}, nil
}

func (f *fakeSvc) List(context.Context, domain.ListQuery) (domain.List, error) {
	return domain.List{Page: 1, Limit: 20}, nil
}

func (f *fakeSvc) Approve(_ context.Context, id string) (domain.Review, error) {
	f.approved = id
	return domain.Review{ID: id, Approved: true, State: domain.StateApproved}, nil
}

func (f *fakeSvc) Reject(_ context.Context, id string, in domain.RejectInput) (domain.Review, error) {
	f.rejected = &in
	return domain.Review{ID: id, State: domain.StateRejected}, nil
}

func (f *fakeSvc) Delete(context.Context, string) error { return nil }

func server(s *fakeSvc) http.Handler {
	m := chi.NewRouter()
	r := phttp.AdaptChi(m)
	r.Route("/reviews", func(rr httpkit.Router) { revhttp.Register(rr, s, nil) })
	r.Route("/admin/reviews", func(rr httpkit.Router) { revhttp.RegisterAdmin(rr, s) })
	return m
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v body=%s", err, rec.Body.String())
	}
	return rec.Code, env
}

func TestSubmit_BadRatingIs400WithRatingDetail(t *testing.T) {
	t.Parallel()

	s := &fakeSvc{}
	body := `{"name":"Sneha","email":"sneha@example.com","college":"COEP","rating":9,"review":"Calm place to study"}`
	code, env := do(t, server(s), http.MethodPost, "/reviews", body)
	if code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", code)
	}
	details, _ := env["details"].([]any)
	found := false
	for _, d := range details {
		if m, _ := d.(map[string]any); m["field"] == "rating" {
			found = true
		}
	}
	if !found {
		t.Fatalf("details = %v, want rating", env["details"])
	}
	if s.submits != 0 {
		t.Fatalf("service reached with invalid rating")
	}
}

func TestSubmit_Created(t *testing.T) {
	t.Parallel()

	s := &fakeSvc{}
	body := `{"name":"Sneha","email":"sneha@example.com","college":"COEP","rating":5,"review":"Calm place to study"}`
	code, env := do(t, server(s), http.MethodPost, "/reviews", body)
	if code != http.StatusCreated {
		t.Fatalf("code = %d env=%v", code, env)
	}
	data := env["data"].(map[string]any)
	if data["message"] != domain.SubmittedMessage || data["id"] != "rv-1" {
		t.Fatalf("data = %v", data)
	}
}

func TestListPublic_ParsesFilters(t *testing.T) {
	t.Parallel()

	s := &fakeSvc{}
	code, env := do(t, server(s), http.MethodGet, "/reviews?rating=5&college=coep", "")
	if code != http.StatusOK {
		t.Fatalf("code = %d env=%v", code, env)
	}
	if s.publicQ.Rating != 5 || s.publicQ.College != "coep" {
		t.Fatalf("query = %+v", s.publicQ)
	}
	items := env["data"].(map[string]any)["items"].([]any)
	if _, leaked := items[0].(map[string]any)["email"]; leaked {
		t.Fatalf("public review exposes email")
	}
}

func TestReject_BodyIsOptional(t *testing.T) {
	t.Parallel()

	s := &fakeSvc{}
	h := server(s)

	if code, _ := do(t, h, http.MethodPost, "/admin/reviews/rv-1/reject", ""); code != http.StatusOK {
		t.Fatalf("empty reject code = %d", code)
	}
	if s.rejected == nil || s.rejected.Reason != nil {
		t.Fatalf("empty reject input = %+v", s.rejected)
	}

	if code, _ := do(t, h, http.MethodPost, "/admin/reviews/rv-1/reject", `{"reason":"spam"}`); code != http.StatusOK {
		t.Fatalf("reject with reason code = %d", code)
	}
	if s.rejected.Reason == nil || *s.rejected.Reason != "spam" {
		t.Fatalf("reason = %v", s.rejected.Reason)
	}

	if code, _ := do(t, h, http.MethodPost, "/admin/reviews/rv-2/approve", ""); code != http.StatusOK || s.approved != "rv-2" {
		t.Fatalf("approve code=%d id=%q", code, s.approved)
	}
}
