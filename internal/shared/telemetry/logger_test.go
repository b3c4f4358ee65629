package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestInfoWritesJSONFields(t *testing.T) {
	var buf bytes.Buffer
	Configure(Options{Output: &buf, Service: "test-svc"})
	t.Cleanup(func() { Configure(Options{}) })

	Info("resume.uploaded", map[string]any{"resume_id": "r-1", "size": 42})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "resume.uploaded" {
		t.Fatalf("expected msg, got %v", entry["msg"])
	}
	if entry["level"] != "info" {
		t.Fatalf("expected info level, got %v", entry["level"])
	}
	if entry["service"] != "test-svc" {
		t.Fatalf("expected service field, got %v", entry["service"])
	}
	if entry["resume_id"] != "r-1" {
		t.Fatalf("expected resume_id field, got %v", entry["resume_id"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts field")
	}
}

func TestErrorFieldIsRenderedAsError(t *testing.T) {
	var buf bytes.Buffer
	Configure(Options{Output: &buf})
	t.Cleanup(func() { Configure(Options{}) })

	Error("generation.failed", map[string]any{"error": errors.New("boom")})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["error"] != "boom" {
		t.Fatalf("expected error string, got %v", entry["error"])
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	Configure(Options{Output: &buf, Level: "warn"})
	t.Cleanup(func() { Configure(Options{}) })

	Info("dropped", nil)
	Debug("dropped", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %s", buf.String())
	}
	Warn("kept", nil)
	if buf.Len() == 0 {
		t.Fatalf("expected warn output")
	}
}
