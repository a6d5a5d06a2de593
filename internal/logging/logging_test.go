package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	logger := NewLogger(&bytes.Buffer{}, slog.LevelInfo)
	ctx := ContextWithLogger(context.Background(), logger)

	if got := FromContext(ctx); got != logger {
		t.Fatal("expected the attached logger back from the context")
	}
	if got := FromContext(context.Background()); got != nil {
		t.Fatal("expected nil for a context without a logger")
	}
	if got := ContextWithLogger(context.Background(), nil); got == nil {
		t.Fatal("expected the original context when no logger is provided")
	} else if FromContext(got) != nil {
		t.Fatal("expected no logger attached when nil was provided")
	}
}

func TestNewLoggerRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)

	logger.Info("suppressed")
	logger.Warn("emitted", "field", "value")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "emitted" {
		t.Fatalf("expected only the warning to be emitted, got %v", entry)
	}
	if entry["field"] != "value" {
		t.Fatalf("expected structured attribute, got %v", entry)
	}
}
