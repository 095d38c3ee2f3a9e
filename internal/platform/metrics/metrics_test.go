package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestStatusBucket(t *testing.T) {
	t.Parallel()

	cases := map[int]string{101: "1xx", 200: "2xx", 303: "3xx", 404: "4xx", 429: "4xx", 500: "5xx", 503: "5xx"}
	for code, want := range cases {
		if got := statusBucket(code); got != want {
			t.Fatalf("statusBucket(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestProm_DomainCounters(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry())
	m.IncSubmission("review")
	m.IncSubmission("review")
	m.IncSubmission("registration")
	m.IncModeration("approved")
	m.IncLogin("denied")
	m.IncRateLimited("submissions")

	if got := testutil.ToFloat64(m.submissions.WithLabelValues("review")); got != 2 {
		t.Fatalf("review submissions = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.submissions.WithLabelValues("registration")); got != 1 {
		t.Fatalf("registration submissions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.moderations.WithLabelValues("approved")); got != 1 {
		t.Fatalf("approved = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.logins.WithLabelValues("denied")); got != 1 {
		t.Fatalf("denied logins = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.rateLimited.WithLabelValues("submissions")); got != 1 {
		t.Fatalf("rate limited = %v, want 1", got)
	}
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(Middleware(m))
	r.Delete("/reviews/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/reviews/"+id, nil))
	}

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/reviews/{id}", "4xx")); got != 3 {
		t.Fatalf("requests = %v, want 3", got)
	}
	if n := testutil.CollectAndCount(m.requestsTotal); n != 1 {
		t.Fatalf("series = %d, want one series for all ids", n)
	}
}

func TestMiddleware_DefaultStatusAndUnmatched(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry())
	h := Middleware(m)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("unmatched", "2xx")); got != 1 {
		t.Fatalf("requests = %v, want 1", got)
	}
}

func TestHandler_ExposesRegisteredCollectors(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg)
	m.IncLogin("ok")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `admissions_admin_logins_total{outcome="ok"} 1`) {
		t.Fatalf("exposition missing login counter:\n%s", body)
	}
}

func TestNoop_DoesNotPanic(t *testing.T) {
	t.Parallel()

	r := OrNoop(nil)
	r.IncRequestsTotal("/x", 200)
	r.ObserveRequestDuration("/x", time.Millisecond)
	r.IncSubmission("review")
	r.IncModeration("rejected")
	r.IncLogin("ok")
	r.IncRateLimited("submissions")
	if _, ok := Noop().(noop); !ok {
		t.Fatalf("Noop should return the no op recorder")
	}
}
