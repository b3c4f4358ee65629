package object_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"hireprompt-backend/internal/shared/apperr"
	"hireprompt-backend/internal/shared/storage/object"
	"hireprompt-backend/internal/shared/storage/object/local"
)

type failingStore struct{ err error }

func (f failingStore) Save(context.Context, string, string, string, []byte) (object.Object, error) {
	return object.Object{}, f.err
}

func (f failingStore) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, f.err
}

// ctxStore hands out readers bound to the context Open was called with.
type ctxStore struct{ ctx context.Context }

func (s *ctxStore) Save(context.Context, string, string, string, []byte) (object.Object, error) {
	return object.Object{}, errors.New("read only")
}

func (s *ctxStore) Open(ctx context.Context, _ string) (io.ReadCloser, error) {
	s.ctx = ctx
	return io.NopCloser(strings.NewReader("%PDF")), nil
}

func TestFallbackStoresLocallyWhenPrimaryFails(t *testing.T) {
	ctx := context.Background()
	store := object.NewFallback(failingStore{err: errors.New("bucket unavailable")}, local.New(t.TempDir()), 0)

	obj, err := store.Save(ctx, "user-1", "cv.pdf", "application/pdf", []byte("%PDF-1.4 body"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !object.IsLocalURL(obj.URL) || obj.URL != obj.Key {
		t.Fatalf("expected local url and key, got %+v", obj)
	}
	if !strings.HasSuffix(obj.Key, "_cv.pdf") {
		t.Fatalf("expected file name in key, got %s", obj.Key)
	}

	rc, err := store.Open(ctx, obj.Key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "%PDF-1.4 body" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestFallbackReportsStorageErrorWhenBothFail(t *testing.T) {
	boom := errors.New("disk full")
	store := object.NewFallback(failingStore{err: errors.New("down")}, failingStore{err: boom}, 0)

	_, err := store.Save(context.Background(), "user-1", "cv.pdf", "", []byte("x"))
	if !errors.Is(err, apperr.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected cause to be preserved, got %v", err)
	}
}

func TestFallbackPrefersPrimary(t *testing.T) {
	ctx := context.Background()
	primary := local.New(t.TempDir())
	store := object.NewFallback(primary, failingStore{err: errors.New("unused")}, 0)

	obj, err := store.Save(ctx, "user-2", "resume.pdf", "", []byte("%PDF-1.7"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if obj.MimeType != "application/pdf" {
		t.Fatalf("expected sniffed pdf type, got %s", obj.MimeType)
	}
	rc, err := store.Open(ctx, obj.Key)
	if err != nil {
		t.Fatalf("open via primary: %v", err)
	}
	_ = rc.Close()
}

func TestNewKeyRejectsTraversal(t *testing.T) {
	if _, err := object.NewKey("u", "../etc/passwd"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
	a, _ := object.NewKey("u", "cv.pdf")
	b, _ := object.NewKey("u", "cv.pdf")
	if a == b {
		t.Fatalf("expected unique keys, got %s twice", a)
	}
}

func TestFallbackOpenAppliesTimeoutUntilClose(t *testing.T) {
	primary := &ctxStore{}
	store := object.NewFallback(primary, failingStore{err: errors.New("unused")}, time.Minute)

	rc, err := store.Open(context.Background(), "users/abc/cv.pdf")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := primary.ctx.Deadline(); !ok {
		t.Fatalf("expected open to carry a deadline")
	}
	if _, err := io.ReadAll(rc); err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := primary.ctx.Err(); err != nil {
		t.Fatalf("expected context alive while reading, got %v", err)
	}
	if err := rc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !errors.Is(primary.ctx.Err(), context.Canceled) {
		t.Fatalf("expected close to release the deadline, got %v", primary.ctx.Err())
	}
}

func TestFallbackOpenWithoutTimeoutKeepsCallerContext(t *testing.T) {
	primary := &ctxStore{}
	store := object.NewFallback(primary, failingStore{err: errors.New("unused")}, 0)

	rc, err := store.Open(context.Background(), "users/abc/cv.pdf")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	if _, ok := primary.ctx.Deadline(); ok {
		t.Fatalf("expected no deadline without a timeout")
	}
}

func TestFallbackOpenRoutesLocalKeys(t *testing.T) {
	primary := &ctxStore{}
	store := object.NewFallback(primary, failingStore{err: errors.New("not on disk")}, time.Second)

	if _, err := store.Open(context.Background(), object.LocalScheme+"users/abc/cv.pdf"); err == nil {
		t.Fatalf("expected local store error")
	}
	if primary.ctx != nil {
		t.Fatalf("expected primary to be skipped for local keys")
	}
}
