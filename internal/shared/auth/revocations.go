package auth

import (
	"context"
	"time"

	"hireprompt-backend/internal/shared/storage/kv"
)

// Revocations tracks logged-out token ids until they would have expired.
type Revocations struct {
	Store kv.Store
}

func revocationKey(jti string) string { return "revoked:jti:" + jti }

// Revoke marks the token id as revoked until expiresAt.
func (r *Revocations) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.Store.Set(ctx, revocationKey(jti), "1", ttl)
}

// IsRevoked reports whether the token id was revoked.
func (r *Revocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if r == nil || r.Store == nil {
		return false, nil
	}
	return r.Store.Exists(ctx, revocationKey(jti))
}
