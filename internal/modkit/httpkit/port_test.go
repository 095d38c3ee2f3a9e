package httpkit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perrs "admissions/internal/platform/errors"
	pnet "admissions/internal/platform/net"
)

func withAuth(v string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/reviews", nil)
	if v != "" {
		r.Header.Set("Authorization", v)
	}
	return r
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	cases := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "Bearer eyJ.a.b", want: "eyJ.a.b", ok: true},
		{header: "   BEARER   eyJ.a.b   ", want: "eyJ.a.b", ok: true},
		{header: "bearer\teyJ.a.b", want: "eyJ.a.b", ok: true},
		{header: ""},
		{header: "Basic YWRtaW46cHc="},
		{header: "Bearer"},
		{header: "Bearer   \t "},
	}
	for _, tc := range cases {
		got, err := BearerToken(withAuth(tc.header))
		if (err == nil) != tc.ok || got != tc.want {
			t.Fatalf("BearerToken(%q) = %q, %v", tc.header, got, err)
		}
		if !tc.ok && !errors.Is(err, ErrMissingBearer) {
			t.Fatalf("BearerToken(%q) err = %v, want ErrMissingBearer", tc.header, err)
		}
	}
}

func TestPort_Parse(t *testing.T) {
	t.Parallel()

	admin := pnet.Principal{UserID: "7c9e6679-7425-40de-944b-e07fc1f90ae7", Role: "admin"}

	cases := []struct {
		name   string
		header string
		parse  TokenFunc
		want   pnet.Principal
		code   perrs.ErrorCode
		calls  int
	}{
		{name: "missing header", code: perrs.ErrorCodeUnauthorized},
		{name: "wrong scheme", header: "Basic abc", code: perrs.ErrorCodeUnauthorized},
		{
			name: "parser rejects", header: "Bearer expired.token", calls: 1, code: perrs.ErrorCodeUnauthorized,
			parse: func(context.Context, string) (pnet.Principal, error) { return pnet.Principal{}, errors.New("token is expired") },
		},
		{
			name: "principal without subject", header: "Bearer tok", calls: 1, code: perrs.ErrorCodeUnauthorized,
			parse: func(context.Context, string) (pnet.Principal, error) { return pnet.Principal{Role: "admin"}, nil },
		},
		{
			name: "session store down", header: "Bearer tok", calls: 1, code: perrs.ErrorCodeUnavailable,
			parse: func(context.Context, string) (pnet.Principal, error) {
				return pnet.Principal{}, perrs.Unavailablef("session store unavailable")
			},
		},
		{
			name: "admin session", header: "Bearer tok", calls: 1, want: admin,
			parse: func(_ context.Context, raw string) (pnet.Principal, error) {
				if raw != "tok" {
					return pnet.Principal{}, errors.New("unexpected token")
				}
				return admin, nil
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			p := NewPortFunc(func(ctx context.Context, raw string) (pnet.Principal, error) {
				calls++
				return tc.parse(ctx, raw)
			})
			who, err := p.Parse(withAuth(tc.header))

			if calls != tc.calls {
				t.Fatalf("parser calls = %d, want %d", calls, tc.calls)
			}
			if tc.code != perrs.ErrorCodeUnknown {
				if !perrs.IsCode(err, tc.code) {
					t.Fatalf("err = %v, want code %d", err, tc.code)
				}
				if err.Error() == "token is expired" {
					t.Fatalf("parser error leaked to caller")
				}
				return
			}
			if err != nil || who != tc.want {
				t.Fatalf("Parse = %+v, %v", who, err)
			}
		})
	}
}

func TestPort_ZeroValueRejects(t *testing.T) {
	t.Parallel()

	var p Port
	if _, err := p.Parse(withAuth("Bearer tok")); !perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
		t.Fatalf("zero Port err = %v", err)
	}
}
