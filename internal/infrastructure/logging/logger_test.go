package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alexisbeaulieu97/colorterm/internal/ports"
)

func TestLoggerIncludesCorrelationIDAndComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{
		Writer:    &buf,
		Level:     "debug",
		Component: "generator",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := ports.WithCorrelationID(context.Background(), "abc123")
	logger.Info(ctx, "palette generated", "mode", "cubehelix")

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected log output, got empty string")
	}

	payload := make(map[string]interface{})
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("failed to parse log line %q: %v", line, err)
	}

	if payload["component"] != "generator" {
		t.Fatalf("expected component field, got %v", payload["component"])
	}
	if payload["correlation_id"] != "abc123" {
		t.Fatalf("expected correlation_id to be abc123, got %v", payload["correlation_id"])
	}
	if payload["mode"] != "cubehelix" {
		t.Fatalf("expected mode to be recorded, got %v", payload["mode"])
	}
	if payload["message"] != "palette generated" {
		t.Fatalf("expected message to be recorded, got %v", payload["message"])
	}
	if payload["level"] != "info" {
		t.Fatalf("expected info level, got %v", payload["level"])
	}
}

func TestLoggerWithAddsAndOverridesFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf, Component: "cli"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	child := logger.With("component", "export").(*Logger)
	child.Warn(context.Background(), "missing filename", "target", "warp")

	payload := make(map[string]interface{})
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &payload); err != nil {
		t.Fatalf("failed to parse log line: %v", err)
	}

	if payload["component"] != "export" {
		t.Fatalf("expected component=export, got %v", payload["component"])
	}
	if payload["target"] != "warp" {
		t.Fatalf("expected target warp, got %v", payload["target"])
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf, Level: "warn"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info(context.Background(), "should not appear")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %s", buf.String())
	}

	logger.Error(context.Background(), "request failed", "error", errors.New("boom"))
	payload := make(map[string]interface{})
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &payload); err != nil {
		t.Fatalf("failed to parse log line: %v", err)
	}
	if payload["error"] != "boom" {
		t.Fatalf("expected error field boom, got %v", payload["error"])
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNoOpLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noOp := NewNoOpLogger()
	noOp.Info(context.Background(), "hello world")

	if buf.Len() != 0 {
		t.Fatalf("expected no output from noop logger, got %s", buf.String())
	}

	if noOp.With("key", "value") != noOp {
		t.Fatalf("expected With to return same no-op logger instance")
	}
	var zero NoOpLogger
	zero.Error(context.Background(), "dropped")

	logger.Info(context.Background(), "emitted")
	if buf.Len() == 0 {
		t.Fatal("expected base logger to write output")
	}
}

func TestBufferedLoggerStoresAndFlushes(t *testing.T) {
	buffer := NewEventBuffer(10)
	bufLogger := NewBufferedLogger(buffer)

	ctx := ports.WithCorrelationID(context.Background(), "buffered")
	bufLogger.Info(ctx, "editor started", "component", "tui")
	bufLogger.With("component", "export").Error(ctx, "export failed", "status", 502)

	if buffer.Len() != 2 {
		t.Fatalf("expected 2 buffered events, got %d", buffer.Len())
	}

	var output bytes.Buffer
	delegate, err := New(Options{Writer: &output})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buffer.Flush(delegate)
	if buffer.Len() != 0 {
		t.Fatalf("expected buffer to be drained, got %d", buffer.Len())
	}

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}

	var first map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("failed to parse first log line: %v", err)
	}
	if first["message"] != "editor started" || first["component"] != "tui" {
		t.Fatalf("unexpected first event payload: %+v", first)
	}

	var second map[string]interface{}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("failed to parse second log line: %v", err)
	}
	if second["message"] != "export failed" || second["component"] != "export" {
		t.Fatalf("unexpected second event payload: %+v", second)
	}
	if second["correlation_id"] != "buffered" {
		t.Fatalf("expected correlation id to be preserved, got %v", second["correlation_id"])
	}
}

func TestEventBufferDropsOldest(t *testing.T) {
	buffer := NewEventBuffer(2)
	logger := NewBufferedLogger(buffer)

	logger.Info(context.Background(), "one")
	logger.Info(context.Background(), "two")
	logger.Info(context.Background(), "three")

	var output bytes.Buffer
	delegate, err := New(Options{Writer: &output})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buffer.Flush(delegate)

	if strings.Contains(output.String(), `"one"`) {
		t.Fatalf("expected oldest entry to be dropped: %s", output.String())
	}
	if !strings.Contains(output.String(), `"three"`) {
		t.Fatalf("expected newest entry to be kept: %s", output.String())
	}
}

func TestFlushTagsReplayedEntriesWithCaptureTime(t *testing.T) {
	captured := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	buffer := NewEventBuffer(4)
	bufLogger := NewBufferedLogger(buffer)
	bufLogger.now = func() time.Time { return captured }

	bufLogger.With("component", "tui").Warn(context.Background(), "contrast below target", "role", "comment")

	var output bytes.Buffer
	delegate, err := New(Options{Writer: &output})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buffer.Flush(delegate)

	var payload map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(output.Bytes()), &payload); err != nil {
		t.Fatalf("failed to parse replayed line %q: %v", output.String(), err)
	}
	if payload["replayed"] != true {
		t.Fatalf("expected replayed=true, got %v", payload["replayed"])
	}
	if payload["logged_at"] != captured.Format(time.RFC3339Nano) {
		t.Fatalf("expected logged_at %s, got %v", captured.Format(time.RFC3339Nano), payload["logged_at"])
	}
	if payload["level"] != "warn" || payload["role"] != "comment" || payload["component"] != "tui" {
		t.Fatalf("unexpected replayed payload: %+v", payload)
	}
}
