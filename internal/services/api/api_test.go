package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"admissions/internal/core/token"
	"admissions/internal/platform/config"
	phttp "admissions/internal/platform/net/http"
	"admissions/internal/platform/store"
	"admissions/internal/platform/testkit/svctest"

	authdomain "admissions/internal/services/api/auth/domain"
	authmod "admissions/internal/services/api/auth/module"
	regdomain "admissions/internal/services/api/registrations/domain"
	regmod "admissions/internal/services/api/registrations/module"
	reviewsdomain "admissions/internal/services/api/reviews/domain"
	reviewsmod "admissions/internal/services/api/reviews/module"
	statsdomain "admissions/internal/services/api/stats/domain"
	statsmod "admissions/internal/services/api/stats/module"
	usersdomain "admissions/internal/services/api/users/domain"
	usersmod "admissions/internal/services/api/users/module"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

const secret = "api-test-secret"

func mount(t *testing.T) http.Handler {
	t.Helper()
	t.Setenv("CORE_API_TOKEN_SECRET", secret)
	t.Setenv("CORE_API_TOKEN_ISSUER", "admissions-test")

	m := chi.NewRouter()
	err := Mount(phttp.AdaptChi(m), Options{
		Config:   config.New(),
		Store:    &store.Store{PG: &svctest.TxDB{}},
		Registry: prometheus.NewRegistry(),
	})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return m
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	iss, err := token.New(token.Config{Secret: []byte(secret), Issuer: "admissions-test"})
	if err != nil {
		t.Fatalf("token.New: %v", err)
	}
	signed, _, err := iss.Issue(token.Subject{ID: "u-1", Email: "u@example.com", Role: role})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return "Bearer " + signed
}

func TestAdminGate_EndToEnd(t *testing.T) {
	h := mount(t)
	studentToken := bearer(t, "student")

	cases := []struct {
		name     string
		method   string
		path     string
		accept   string
		auth     string
		status   int
		location string
	}{
		{
			name: "api client without session", method: http.MethodGet, path: "/api/v1/admin/registrations",
			status: http.StatusUnauthorized,
		},
		{
			name: "browser without session", method: http.MethodGet, path: "/api/v1/admin/reviews?approved=false",
			accept: "text/html", status: http.StatusSeeOther,
			location: "/admin/login?callbackUrl=%2Fapi%2Fv1%2Fadmin%2Freviews%3Fapproved%3Dfalse",
		},
		{
			name: "student api client", method: http.MethodDelete, path: "/api/v1/admin/reviews/9a1e7d2b-3c4f-4e5a-8b6c-7d8e9f0a1b2c",
			auth: studentToken, status: http.StatusForbidden,
		},
		{
			name: "student browser", method: http.MethodGet, path: "/api/v1/admin/stats/dashboard",
			accept: "text/html", auth: studentToken, status: http.StatusSeeOther,
			location: "/admin/login?error=AccessDenied",
		},
		{
			name: "garbage token", method: http.MethodGet, path: "/api/v1/admin/users",
			auth: "Bearer not-a-jwt", status: http.StatusUnauthorized,
		},
		{
			// login is exempt, an empty body fails validation instead of the gate
			name: "login passes the gate", method: http.MethodPost, path: "/api/v1/admin/login",
			status: http.StatusBadRequest,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{}`))
			req.Header.Set("Content-Type", "application/json")
			if tc.accept != "" {
				req.Header.Set("Accept", tc.accept)
			}
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d body=%s", rec.Code, tc.status, rec.Body.String())
			}
			if tc.location != "" && rec.Header().Get("Location") != tc.location {
				t.Fatalf("location = %q, want %q", rec.Header().Get("Location"), tc.location)
			}
		})
	}
}

func TestPublicSubmitValidatesWithoutSession(t *testing.T) {
	h := mount(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", strings.NewReader(`{"name":"Arjun","email":"a@example.com","college":"COEP","rating":7,"review":"a very good hostel"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), `"rating"`) {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := mount(t)

	// one request so the route counters exist
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "admissions_http_requests_total") {
		t.Fatalf("metrics = %d %s", rec.Code, rec.Body.String())
	}
}

func TestMount_RequiresPostgres(t *testing.T) {
	if err := Mount(phttp.AdaptChi(chi.NewRouter()), Options{Store: &store.Store{}}); err == nil {
		t.Fatalf("Mount without postgres succeeded")
	}
}

func TestModulePortsExposeServices(t *testing.T) {
	t.Setenv("CORE_API_TOKEN_SECRET", secret)

	deps, err := NewDeps(Options{Config: config.New(), Store: &store.Store{PG: &svctest.TxDB{}}})
	if err != nil {
		t.Fatalf("NewDeps: %v", err)
	}

	cases := []struct {
		name string
		ok   func() bool
	}{
		{"auth", func() bool {
			_, ok := authmod.New(deps, authmod.FromConfig(deps.Cfg)).Ports().(authdomain.ServicePort)
			return ok
		}},
		{"registrations", func() bool { _, ok := regmod.New(deps).Ports().(regdomain.ServicePort); return ok }},
		{"reviews", func() bool { _, ok := reviewsmod.New(deps).Ports().(reviewsdomain.ServicePort); return ok }},
		{"users", func() bool { _, ok := usersmod.New(deps).Ports().(usersdomain.ServicePort); return ok }},
		{"stats", func() bool { _, ok := statsmod.New(deps).Ports().(statsdomain.ServicePort); return ok }},
	}
	for _, tc := range cases {
		if !tc.ok() {
			t.Fatalf("%s module ports do not satisfy its ServicePort", tc.name)
		}
	}
}
