package net_test

import (
	"context"
	"testing"
	"time"

	pnet "admissions/internal/platform/net"
)

func TestWithRequest_And_RequestID(t *testing.T) {
	base := context.Background()

	t.Run("sets request id", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "req-123")
		if got := pnet.RequestID(ctx); got != "req-123" {
			t.Fatalf("RequestID got %q want %q", got, "req-123")
		}
	})

	t.Run("empty id returns same ctx", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "")
		if ctx != base {
			t.Fatalf("expected ctx to be unchanged when id empty")
		}
		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
	})
}

func TestWithPrincipal(t *testing.T) {
	base := context.Background()
	exp := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("round trips the principal", func(t *testing.T) {
		in := pnet.Principal{UserID: "u-1", Role: "admin", Email: "a@example.org", TokenID: "jti", ExpiresAt: exp}
		ctx := pnet.WithPrincipal(base, in)

		got, ok := pnet.PrincipalFrom(ctx)
		if !ok {
			t.Fatalf("expected principal on ctx")
		}
		if got != in {
			t.Fatalf("principal got %+v want %+v", got, in)
		}
		if pnet.UserID(ctx) != "u-1" {
			t.Fatalf("UserID got %q want u-1", pnet.UserID(ctx))
		}
	})

	t.Run("ignores anonymous principal", func(t *testing.T) {
		ctx := pnet.WithPrincipal(base, pnet.Principal{Role: "admin"})
		if ctx != base {
			t.Fatalf("expected ctx unchanged for principal without user id")
		}
		if _, ok := pnet.PrincipalFrom(ctx); ok {
			t.Fatalf("expected no principal")
		}
		if pnet.UserID(ctx) != "" {
			t.Fatalf("expected empty user id")
		}
	})
}
