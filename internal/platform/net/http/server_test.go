package http_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"admissions/internal/platform/config"
	phttp "admissions/internal/platform/net/http"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	_ = l.Close()
	return addr
}

func TestServer_ServesUntilShutdown(t *testing.T) {
	addr := freeAddr(t)
	t.Setenv("CORE_API_PORT", addr)

	srv := phttp.NewServer(config.New().Prefix("CORE_"))
	if srv.Addr() != addr {
		t.Fatalf("addr = %q, want %q", srv.Addr(), addr)
	}
	srv.Router().Get("/health", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "ok") })

	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background()) }()

	var res *http.Response
	var err error
	for i := 0; i < 50; i++ {
		if res, err = http.Get("http://" + addr + "/health"); err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never came up: %v", err)
	}
	body, _ := io.ReadAll(res.Body)
	_ = res.Body.Close()
	if string(body) != "ok" {
		t.Fatalf("body = %q", body)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run after Shutdown = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after Shutdown")
	}
}

func TestServer_DefaultAddr(t *testing.T) {
	if got := phttp.NewServer(config.New().Prefix("UNSET_")).Addr(); got != ":4000" {
		t.Fatalf("addr = %q, want :4000", got)
	}
}

func TestServer_RunReportsListenError(t *testing.T) {
	t.Setenv("BAD_API_PORT", "127.0.0.1:notaport")
	if err := phttp.NewServer(config.New().Prefix("BAD_")).Run(context.Background()); err == nil {
		t.Fatalf("Run with a bad address succeeded")
	}
}
