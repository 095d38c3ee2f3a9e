package token

import (
	"context"
	"time"
)

// RevokedPrefix namespaces revoked token ids in the key value store
const RevokedPrefix = "session:revoked:"

// KV is the slice of the key value store the denylist needs
type KV interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}

// KVDenylist keeps revoked ids in redis, the key ttl ends the revocation
type KVDenylist struct {
	kv  KV
	now func() time.Time
}

// NewKVDenylist returns a Denylist backed by kv
func NewKVDenylist(kv KV) *KVDenylist {
	return &KVDenylist{kv: kv, now: time.Now}
}

// Deny revokes id until the given instant, past instants are a no op
func (d *KVDenylist) Deny(ctx context.Context, id string, until time.Time) error {
	ttl := until.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	return d.kv.Set(ctx, RevokedPrefix+id, "1", ttl)
}

// Denied reports whether id is revoked
func (d *KVDenylist) Denied(ctx context.Context, id string) (bool, error) {
	return d.kv.Exists(ctx, RevokedPrefix+id)
}

var (
	_ Denylist = (*KVDenylist)(nil)
	_ Denylist = (*MemoryDenylist)(nil)
)
