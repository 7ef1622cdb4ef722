package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestNewJSONWriter_WritesKeyValueFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, LevelInfo, "service", "live-dattacks")

	logger.InfoContext(context.Background(), "live poll cycle applied", "cycle", 3, "error", errors.New("HTTP 503"))

	var line map[string]any
	if err := sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if got, _ := line["msg"].(string); got != "live poll cycle applied" {
		t.Fatalf("unexpected msg: %v", line["msg"])
	}
	if got, _ := line["service"].(string); got != "live-dattacks" {
		t.Fatalf("unexpected service field: %v", line["service"])
	}
	if got, _ := line["cycle"].(float64); got != 3 {
		t.Fatalf("unexpected cycle field: %v", line["cycle"])
	}
	if got, _ := line["error"].(string); got != "HTTP 503" {
		t.Fatalf("unexpected error field: %v", line["error"])
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, LevelWarn)
	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info line to be filtered, got %q", buf.String())
	}
	logger.Warn("kept", "odd")
	if buf.Len() == 0 {
		t.Fatalf("expected warn line to be written")
	}
}

func TestLogger_NilReceiverUsesDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected non-nil child logger")
	}
}
