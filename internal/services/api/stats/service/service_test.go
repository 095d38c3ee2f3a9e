package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"admissions/internal/core/growth"
	"admissions/internal/modkit/repokit"
	perr "admissions/internal/platform/errors"
	"admissions/internal/platform/testkit"
	"admissions/internal/platform/testkit/svctest"
	"admissions/internal/services/api/stats/domain"
	"admissions/internal/services/api/stats/repo"
)

type fakeRepo struct {
	calls  []string
	counts repo.Counts
	events []time.Time
	total  int
	since  time.Time
	err    error
}

func (f *fakeRepo) Counts(context.Context) (repo.Counts, error) {
	f.calls = append(f.calls, "Counts")
	return f.counts, f.err
}

func (f *fakeRepo) RegistrationTimes(_ context.Context, since time.Time) ([]time.Time, error) {
	f.calls = append(f.calls, "RegistrationTimes")
	f.since = since
	var out []time.Time
	for _, e := range f.events {
		if !e.Before(since) {
			out = append(out, e)
		}
	}
	return out, f.err
}

func (f *fakeRepo) RegistrationTotal(context.Context) (int, error) {
	f.calls = append(f.calls, "RegistrationTotal")
	return f.total, f.err
}

var now = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func newSvc(r *fakeRepo) *Svc {
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return r })
	s := New(&svctest.TxDB{}, binder)
	s.Now = testkit.Clock(now)
	return s
}

func labels(bs []growth.Bucket) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Label
	}
	return out
}

func TestDashboard_EmptyHistoryIsSixZeroMonths(t *testing.T) {
	t.Parallel()

	out, err := newSvc(&fakeRepo{}).Dashboard(svctest.AdminCtx("a-1"))
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	want := []string{"Jan 24", "Feb 24", "Mar 24", "Apr 24", "May 24", "Jun 24"}
	if !reflect.DeepEqual(labels(out.RegistrationHistory), want) {
		t.Fatalf("labels = %v", labels(out.RegistrationHistory))
	}
	if growth.Sum(out.RegistrationHistory) != 0 {
		t.Fatalf("non zero history")
	}
}

func TestDashboard_CountsAndReviewChart(t *testing.T) {
	t.Parallel()

	r := &fakeRepo{
		counts: repo.Counts{
			Registrations: 10, RegistrationsPending: 4, RegistrationsContacted: 6,
			Reviews: 9, ReviewsPending: 2, ReviewsApproved: 5, ReviewsRejected: 2,
			Users: 7, UsersActive: 3,
		},
		events: []time.Time{
			time.Date(2023, time.November, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.March, 3, 9, 0, 0, 0, time.UTC),
			time.Date(2024, time.May, 31, 19, 0, 0, 0, time.UTC),
		},
	}
	out, err := newSvc(r).Dashboard(svctest.AdminCtx("a-1"))
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	c := out.Counts
	if c.Registrations != (domain.RegistrationCounts{Total: 10, Pending: 4, Contacted: 6}) ||
		c.Reviews != (domain.ReviewCounts{Total: 9, Pending: 2, Approved: 5, Rejected: 2}) ||
		c.Users != (domain.UserCounts{Total: 7, Active: 3}) {
		t.Fatalf("counts = %+v", c)
	}

	wantChart := []domain.ReviewSlice{
		{Status: "Approved", Count: 5, Fill: "#ECA400"},
		{Status: "Pending", Count: 2, Fill: "#E07A5F"},
		{Status: "Rejected", Count: 2, Fill: "#3D405B"},
	}
	if !reflect.DeepEqual(out.ReviewStats, wantChart) {
		t.Fatalf("review stats = %+v", out.ReviewStats)
	}

	if !r.since.Equal(growth.Dashboard.Start(now)) {
		t.Fatalf("since = %v", r.since)
	}
	// the November event is outside the window, the May evening event is June in org time
	if growth.Sum(out.RegistrationHistory) != 2 {
		t.Fatalf("history = %+v", out.RegistrationHistory)
	}
	last := out.RegistrationHistory[len(out.RegistrationHistory)-1]
	if last.Label != "Jun 24" || last.Value != 1 {
		t.Fatalf("last bucket = %+v", last)
	}
}

func TestDashboard_RequiresAdminBeforeRepo(t *testing.T) {
	t.Parallel()

	for _, ctx := range []context.Context{context.Background(), svctest.StudentCtx("s-1")} {
		r := &fakeRepo{}
		if _, err := newSvc(r).Dashboard(ctx); err == nil {
			t.Fatalf("dashboard allowed without admin")
		}
		if len(r.calls) != 0 {
			t.Fatalf("repo called: %v", r.calls)
		}
	}
}

func TestGrowth_TotalIsLifetimeCount(t *testing.T) {
	t.Parallel()

	r := &fakeRepo{
		total: 40,
		events: []time.Time{
			time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	out, err := newSvc(r).Growth(context.Background())
	if err != nil {
		t.Fatalf("Growth: %v", err)
	}
	if len(out.Growth) != 12 || out.Growth[0].Label != "Jul 23" || out.Growth[11].Label != "Jun 24" {
		t.Fatalf("window = %v", labels(out.Growth))
	}
	if out.TotalStudents != 40 || growth.Sum(out.Growth) != 1 {
		t.Fatalf("total=%d sum=%d", out.TotalStudents, growth.Sum(out.Growth))
	}
}

func TestDailyGrowth_BucketsInOrgOffset(t *testing.T) {
	t.Parallel()

	r := &fakeRepo{
		total: 3,
		events: []time.Time{
			time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC),
			time.Date(2024, time.June, 1, 23, 0, 0, 0, time.UTC),
			time.Date(2024, time.June, 2, 1, 0, 0, 0, time.UTC),
		},
	}
	out, err := newSvc(r).DailyGrowth(context.Background())
	if err != nil {
		t.Fatalf("DailyGrowth: %v", err)
	}
	if len(out.Growth) != 30 || out.Total != 3 {
		t.Fatalf("len=%d total=%d", len(out.Growth), out.Total)
	}
	byLabel := map[string]int{}
	for _, b := range out.Growth {
		byLabel[b.Label] = b.Value
	}
	if byLabel["Jun 1"] != 1 || byLabel["Jun 2"] != 2 {
		t.Fatalf("Jun 1=%d Jun 2=%d", byLabel["Jun 1"], byLabel["Jun 2"])
	}
}

func TestStoreFailuresAreMasked(t *testing.T) {
	t.Parallel()

	s := newSvc(&fakeRepo{err: errors.New("timeout")})
	if _, err := s.Growth(context.Background()); !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("growth err = %v", err)
	}
	if _, err := s.Dashboard(svctest.AdminCtx("a-1")); !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("dashboard err = %v", err)
	}
}
