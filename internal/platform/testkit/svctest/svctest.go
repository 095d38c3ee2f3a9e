// Package svctest provides fixtures for service and handler tests
package svctest

import (
	"context"
	"sync"

	"admissions/internal/platform/metrics"

	pnet "admissions/internal/platform/net"
	"admissions/internal/platform/store"
)

// AdminCtx returns a context carrying an admin principal with the given id
func AdminCtx(id string) context.Context {
	return pnet.WithPrincipal(context.Background(), pnet.Principal{UserID: id, Role: "admin", Email: "admin@example.com"})
}

// StudentCtx returns a context carrying an authenticated non admin principal
func StudentCtx(id string) context.Context {
	return pnet.WithPrincipal(context.Background(), pnet.Principal{UserID: id, Role: "student", Email: "student@example.com"})
}

// TxDB is a TxRunner for service tests whose repos are faked through a binder
// Tx runs fn inline and counts calls, direct sql use returns nil values
type TxDB struct {
	Txs int
}

// Tx runs fn with the TxDB itself as the querier
func (d *TxDB) Tx(_ context.Context, fn func(q store.RowQuerier) error) error {
	d.Txs++
	return fn(d)
}

// Exec is unused by faked repos
func (d *TxDB) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }

// Query is unused by faked repos
func (d *TxDB) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }

// QueryRow is unused by faked repos
func (d *TxDB) QueryRow(context.Context, string, ...any) store.Row { return nil }

// Recorder counts domain metric calls by name and label
// http level calls fall through to a no op recorder
type Recorder struct {
	metrics.Recorder

	mu     sync.Mutex
	counts map[string]int
}

// NewRecorder returns an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{Recorder: metrics.Noop(), counts: map[string]int{}}
}

func (r *Recorder) inc(key string) {
	r.mu.Lock()
	r.counts[key]++
	r.mu.Unlock()
}

// Count returns how often name was recorded with label, e.g. Count("submission", "review")
func (r *Recorder) Count(name, label string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[name+":"+label]
}

// IncSubmission counts a stored public form
func (r *Recorder) IncSubmission(kind string) { r.inc("submission:" + kind) }

// IncModeration counts a review decision
func (r *Recorder) IncModeration(decision string) { r.inc("moderation:" + decision) }

// IncLogin counts a login attempt outcome
func (r *Recorder) IncLogin(outcome string) { r.inc("login:" + outcome) }

// IncRateLimited counts a rejected request
func (r *Recorder) IncRateLimited(scope string) { r.inc("rate_limited:" + scope) }
