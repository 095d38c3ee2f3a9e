package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"admissions/internal/platform/config"
	"admissions/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns the root chi mux and the stdlib listener
type Server struct {
	mux *chi.Mux
	srv *stdhttp.Server
}

// NewServer reads API_PORT and the API_*_TIMEOUT keys from cfg
func NewServer(cfg config.Conf) *Server {
	m := chi.NewRouter()
	return &Server{
		mux: m,
		srv: &stdhttp.Server{
			Addr:              cfg.MayString("API_PORT", ":4000"),
			Handler:           m,
			ReadHeaderTimeout: cfg.MayDuration("API_READ_HEADER_TIMEOUT", 10*time.Second),
			ReadTimeout:       cfg.MayDuration("API_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:      cfg.MayDuration("API_WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:       cfg.MayDuration("API_IDLE_TIMEOUT", 120*time.Second),
		},
	}
}

// Router returns a Router facade over the root mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr returns the configured listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run listens until Shutdown, a closed server is not an error
func (s *Server) Run(ctx context.Context) error {
	logger.C(ctx).Info().Str("addr", s.srv.Addr).Msg("http listening")
	err := s.srv.ListenAndServe()
	if errors.Is(err, stdhttp.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in flight requests until ctx expires
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
