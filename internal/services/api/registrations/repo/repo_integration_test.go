//go:build integration_pg
// +build integration_pg

package repo_test

import (
	"context"
	"errors"
	"testing"

	"admissions/internal/modkit/repokit"
	perr "admissions/internal/platform/errors"
	"admissions/internal/platform/store/pgtest"
	"admissions/internal/services/api/registrations/repo"
)

func TestIntegration_RegistrationsRepo(t *testing.T) {
	db := pgtest.Start(t)
	ctx := context.Background()
	r := repo.NewPG().Bind(db)

	mk := func(name, email, college string) string {
		id, err := r.Create(ctx, repo.NewRow{
			Name: name, Email: email, Phone: "9876543210", College: college,
			CurrentCity: "Pune", PermanentAddress: "12 MG Road",
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		return id
	}
	first := mk("Arjun Mehta", "arjun@example.com", "COEP")
	mk("Priya Nair", "priya@example.com", "Fergusson 100%")
	last := mk("Rahul Shah", "rahul@example.com", "MIT")

	rows, total, err := r.List(ctx, repo.Filter{}, repokit.NewPage(1, 2, 20, 100))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 || len(rows) != 2 || rows[0].ID != last {
		t.Fatalf("total=%d rows=%d first=%s, want newest first", total, len(rows), rows[0].ID)
	}

	// wildcard characters in search match literally
	rows, total, err = r.List(ctx, repo.Filter{Search: "100%"}, repokit.NewPage(1, 20, 20, 100))
	if err != nil || total != 1 || rows[0].Name != "Priya Nair" {
		t.Fatalf("search 100%%: total=%d err=%v", total, err)
	}
	rows, total, _ = r.List(ctx, repo.Filter{Search: "%"}, repokit.NewPage(1, 20, 20, 100))
	if total != 1 {
		t.Fatalf("search %% matched %d rows, want 1", total)
	}

	yes, st := true, "contacted"
	row, err := r.Update(ctx, first, repo.Patch{Contacted: &yes, Status: &st})
	if err != nil || !row.Contacted || row.Status != "contacted" || row.InternalNote != nil {
		t.Fatalf("Update: %+v err=%v", row, err)
	}
	_, total, _ = r.List(ctx, repo.Filter{Contacted: &yes}, repokit.NewPage(1, 20, 20, 100))
	if total != 1 {
		t.Fatalf("contacted filter total = %d", total)
	}

	missing := "00000000-0000-0000-0000-000000000000"
	if _, err := r.Update(ctx, missing, repo.Patch{}); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("update missing err = %v", err)
	}
	if err := r.Delete(ctx, missing); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("delete missing err = %v", err)
	}

	uid := pgtest.Insert(t, db, `insert into users (email, name) values ('s@example.com', 'Student') returning id::text`)
	ok, err := r.UserExists(ctx, uid)
	if err != nil || !ok {
		t.Fatalf("UserExists = %v err=%v", ok, err)
	}
	row, err = r.LinkUser(ctx, first, uid)
	if err != nil || row.UserID == nil || *row.UserID != uid {
		t.Fatalf("LinkUser: %+v err=%v", row, err)
	}

	if err := r.Delete(ctx, last); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
