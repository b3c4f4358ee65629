package local

import (
	"context"
	"io"
	"testing"
)

func TestSaveAndOpen(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir())

	obj, err := s.Save(ctx, "user-1", "notes.txt", "", []byte("hello"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if obj.Size != 5 || obj.URL != "local://"+obj.Key {
		t.Fatalf("unexpected object %+v", obj)
	}

	for _, key := range []string{obj.Key, obj.URL} {
		rc, err := s.Open(ctx, key)
		if err != nil {
			t.Fatalf("open %s: %v", key, err)
		}
		body, _ := io.ReadAll(rc)
		rc.Close()
		if string(body) != "hello" {
			t.Fatalf("unexpected body %q", body)
		}
	}
}

func TestOpenRejectsEscapingKeys(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Open(context.Background(), "../outside"); err == nil {
		t.Fatalf("expected invalid key error")
	}
}
