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
	"admissions/internal/services/api/users/domain"
	usershttp "admissions/internal/services/api/users/http"

	"github.com/go-chi/chi/v5"
)

type fakeSvc struct {
	listQ     domain.ListQuery
	updatedID string
	update    domain.UpdateInput
}

func (f *fakeSvc) List(_ context.Context, q domain.ListQuery) (domain.List, error) {
	f.listQ = q
	return domain.List{Items: []domain.User{{ID: "u-1", Email: "a@example.com"}}, Total: 1, Page: 1, Limit: 20}, nil
}

func (f *fakeSvc) Update(_ context.Context, id string, in domain.UpdateInput) (domain.User, error) {
	f.updatedID, f.update = id, in
	return domain.User{ID: id, Role: "admin"}, nil
}

func server(s *fakeSvc) http.Handler {
	m := chi.NewRouter()
	phttp.AdaptChi(m).Route("/admin/users", func(rr httpkit.Router) { usershttp.RegisterAdmin(rr, s) })
	return m
}

func TestList_PassesFiltersAndHidesPassword(t *testing.T) {
	t.Parallel()

	s := &fakeSvc{}
	req := httptest.NewRequest(http.MethodGet, "/admin/users?role=student&profile_status=active&search=coep", nil)
	rec := httptest.NewRecorder()
	server(s).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if s.listQ.Role != "student" || s.listQ.ProfileStatus != "active" || s.listQ.Search != "coep" {
		t.Fatalf("query = %+v", s.listQ)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password leaked: %s", rec.Body.String())
	}
}

func TestList_BadRoleIs400(t *testing.T) {
	t.Parallel()

	s := &fakeSvc{}
	req := httptest.NewRequest(http.MethodGet, "/admin/users?role=owner", nil)
	rec := httptest.NewRecorder()
	server(s).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestUpdate_UsesPathID(t *testing.T) {
	t.Parallel()

	s := &fakeSvc{}
	req := httptest.NewRequest(http.MethodPatch, "/admin/users/u-7", strings.NewReader(`{"role":"admin"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server(s).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if s.updatedID != "u-7" || s.update.Role == nil || *s.update.Role != "admin" {
		t.Fatalf("update = %s %+v", s.updatedID, s.update)
	}
	var env struct {
		Data domain.User `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Role != "admin" {
		t.Fatalf("data = %+v", env.Data)
	}
}

func TestUpdate_BioTooLongIs400(t *testing.T) {
	t.Parallel()

	s := &fakeSvc{}
	body := `{"bio":"` + strings.Repeat("x", 501) + `"}`
	req := httptest.NewRequest(http.MethodPatch, "/admin/users/u-7", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server(s).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest || s.updatedID != "" {
		t.Fatalf("status = %d updated=%q", rec.Code, s.updatedID)
	}
}
