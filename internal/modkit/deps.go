// Package modkit provides module wiring and the deps every module receives
package modkit

import (
	"admissions/internal/core/token"
	"admissions/internal/modkit/repokit"
	"admissions/internal/platform/config"
	"admissions/internal/platform/logger"
	"admissions/internal/platform/metrics"
	"admissions/internal/platform/net/middleware"
	"admissions/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	RDS store.KV

	// Metrics is nil when metrics are disabled, use metrics.OrNoop
	Metrics metrics.Recorder

	// Tokens signs and verifies admin sessions, nil leaves auth routes unmounted
	Tokens *token.Issuer
	// Revoked holds logged out session ids
	Revoked token.Denylist

	// Limiter throttles public form posts per client ip, nil disables it
	Limiter middleware.Limiter
}
