package health

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestStatusWithoutDatabase(t *testing.T) {
	status, ok := NewService(nil, "local", "mock").Status(context.Background())
	if !ok || status["database"] != "memory" || status["storage"] != "local" {
		t.Fatalf("unexpected status %v ok=%v", status, ok)
	}
}

func TestStatusPingsDatabase(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	svc := NewService(db, "s3", "openai")
	if status, ok := svc.Status(context.Background()); !ok || status["database"] != "up" {
		t.Fatalf("expected healthy, got %v", status)
	}
	if status, ok := svc.Status(context.Background()); ok || status["database"] != "down" {
		t.Fatalf("expected unhealthy, got %v", status)
	}
}
