package workerproc

import (
	"context"
	"errors"
	"testing"
	"time"

	"hireprompt-backend/internal/queue"
	"hireprompt-backend/internal/resumes"
	"hireprompt-backend/internal/shared/apperr"
)

type fakeReparser struct {
	err    error
	userID string
	docID  string
}

func (f *fakeReparser) Reparse(_ context.Context, userID, id string) (resumes.Document, error) {
	f.userID = userID
	f.docID = id
	return resumes.Document{ID: id}, f.err
}

func encode(t *testing.T, msg queue.Message) string {
	t.Helper()
	raw, err := queue.EncodeMessage(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return string(raw)
}

func TestParseMessage(t *testing.T) {
	valid := queue.NewParseDocument("doc-1", "user-1", "req-1", time.Now())
	tests := []struct {
		name      string
		body      string
		permanent bool
		wantErr   bool
	}{
		{name: "valid", body: encode(t, valid)},
		{name: "empty", body: "  ", wantErr: true, permanent: true},
		{name: "bad json", body: "{bad-json", wantErr: true, permanent: true},
		{name: "unknown type", body: `{"type":"analyze","documentId":"d","userId":"u"}`, wantErr: true, permanent: true},
		{name: "missing document", body: `{"type":"parse_document","userId":"u"}`, wantErr: true, permanent: true},
		{name: "missing user", body: `{"type":"parse_document","documentId":"d"}`, wantErr: true, permanent: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, meta, err := ParseMessage(tt.body)
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
			if IsPermanent(err) != tt.permanent {
				t.Fatalf("permanent=%v for %v", tt.permanent, err)
			}
			if tt.body != "" && meta.BodyLen != len(tt.body) {
				t.Fatalf("unexpected meta %+v", meta)
			}
		})
	}
}

func TestHandleMessageRunsReparse(t *testing.T) {
	svc := &fakeReparser{}
	msg, err := HandleMessage(context.Background(), svc, encode(t, queue.NewParseDocument("doc-1", "user-1", "req-1", time.Now())))
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if svc.userID != "user-1" || svc.docID != "doc-1" || msg.RequestID != "req-1" {
		t.Fatalf("unexpected call user=%s doc=%s msg=%+v", svc.userID, svc.docID, msg)
	}
}

func TestHandleMessageClassifiesFailures(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		permanent bool
	}{
		{name: "document gone", err: resumes.ErrNotFound, permanent: true},
		{name: "corrupt pdf", err: apperr.New(apperr.KindExtraction, "corrupt"), permanent: true},
		{name: "llm down", err: apperr.New(apperr.KindNormalization, "timeout"), permanent: false},
		{name: "blob store down", err: apperr.New(apperr.KindStorage, "unavailable"), permanent: false},
		{name: "unclassified", err: errors.New("boom"), permanent: false},
	}
	body := encode(t, queue.NewParseDocument("doc-1", "user-1", "", time.Now()))
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := HandleMessage(context.Background(), &fakeReparser{err: tt.err}, body)
			var proc ErrProcess
			if !errors.As(err, &proc) || proc.DocumentID != "doc-1" {
				t.Fatalf("expected ErrProcess, got %v", err)
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected cause %v in %v", tt.err, err)
			}
			if IsPermanent(err) != tt.permanent {
				t.Fatalf("permanent=%v for %v", tt.permanent, err)
			}
		})
	}
}

func TestHandleMessageWithoutService(t *testing.T) {
	if _, err := HandleMessage(context.Background(), nil, "{}"); err == nil {
		t.Fatalf("expected error")
	}
}
