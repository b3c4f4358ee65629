package object

import (
	"context"
	"io"
	"strings"
	"time"

	"hireprompt-backend/internal/shared/apperr"
	"hireprompt-backend/internal/shared/metrics"
	"hireprompt-backend/internal/shared/telemetry"
)

// FallbackStore writes to a primary store and falls back to a local store
// when the primary fails. Fallback objects carry the local:// scheme in both
// key and URL so reads can be routed back to the local store.
type FallbackStore struct {
	Primary ObjectStore
	Local   ObjectStore
	Timeout time.Duration
}

// NewFallback wraps primary with a local fallback. A nil primary saves locally.
func NewFallback(primary, local ObjectStore, timeout time.Duration) *FallbackStore {
	return &FallbackStore{Primary: primary, Local: local, Timeout: timeout}
}

func (f *FallbackStore) Save(ctx context.Context, userID, fileName, contentType string, data []byte) (Object, error) {
	if f.Primary != nil {
		obj, err := f.saveWith(ctx, f.Primary, userID, fileName, contentType, data)
		if err == nil {
			return obj, nil
		}
		telemetry.Warn("storage.primary_failed", map[string]any{
			"user_id": userID,
			"file":    fileName,
			"error":   err.Error(),
		})
		metrics.IncBlobFallback()
	}

	obj, err := f.saveWith(ctx, f.Local, userID, fileName, contentType, data)
	if err != nil {
		return Object{}, apperr.Wrap(apperr.KindStorage, "failed to store file", err)
	}
	if !strings.HasPrefix(obj.Key, LocalScheme) {
		obj.Key = LocalScheme + obj.Key
	}
	obj.URL = obj.Key
	return obj, nil
}

// Open routes local:// keys to the local store and everything else to the
// primary. With a Timeout set, the deadline covers reading the object and is
// released when the reader is closed.
func (f *FallbackStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	store := f.Primary
	if f.Primary == nil || strings.HasPrefix(key, LocalScheme) {
		store, key = f.Local, strings.TrimPrefix(key, LocalScheme)
	}
	if f.Timeout <= 0 {
		return store.Open(ctx, key)
	}

	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	rc, err := store.Open(ctx, key)
	if err != nil {
		cancel()
		return nil, err
	}
	return &cancelOnClose{ReadCloser: rc, cancel: cancel}, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	defer c.cancel()
	return c.ReadCloser.Close()
}

func (f *FallbackStore) saveWith(ctx context.Context, store ObjectStore, userID, fileName, contentType string, data []byte) (Object, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	return store.Save(ctx, userID, fileName, contentType, data)
}

var _ ObjectStore = (*FallbackStore)(nil)
