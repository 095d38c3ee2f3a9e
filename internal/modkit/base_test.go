package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"admissions/internal/modkit/httpkit"
	phttp "admissions/internal/platform/net/http"
	"admissions/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

type baseModule struct{ Base }

func (baseModule) Ports() any { return nil }

func (m baseModule) MountAdminRoutes(r httpkit.Router) {
	m.Admin(r, func(rr httpkit.Router) {
		rr.Get("/", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
	})
}

func TestBase_MountsPublicThenRegisteredRoutes(t *testing.T) {
	t.Parallel()

	stamp := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "reviews")
			next.ServeHTTP(w, r)
		})
	}
	ok := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

	mod := baseModule{NewBase("reviews", "reviews/",
		func(r httpkit.Router) { r.Get("/", ok) },
		WithMiddlewares(stamp),
		WithRegister(func(r httpkit.Router) { r.Get("/extra", ok) }),
	)}
	if mod.Name() != "reviews" || mod.Prefix() != "/reviews" {
		t.Fatalf("name=%q prefix=%q", mod.Name(), mod.Prefix())
	}

	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), nil, mod)

	cases := []struct {
		path   string
		want   int
		header string
	}{
		{path: "/reviews", want: http.StatusOK, header: "reviews"},
		{path: "/reviews/extra", want: http.StatusOK, header: "reviews"},
		{path: "/admin/reviews", want: http.StatusAccepted},
		{path: "/registrations", want: http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rec.Code != tc.want {
			t.Fatalf("GET %s = %d, want %d", tc.path, rec.Code, tc.want)
		}
		if rec.Header().Get("X-Module") != tc.header {
			t.Fatalf("GET %s X-Module = %q, want %q", tc.path, rec.Header().Get("X-Module"), tc.header)
		}
	}
}

func TestBase_RequiresNameAndPrefix(t *testing.T) {
	t.Parallel()

	testkit.MustPanic(t, func() { _ = NewBase("", "/x", nil).Name() })
	testkit.MustPanic(t, func() { _ = NewBase("x", " / ", nil).Prefix() })
}
