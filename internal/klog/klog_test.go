package klog

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestHandlerWritesToFile(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}, false)
	logger := slog.New(h)
	logger.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "key=value") {
		t.Fatalf("got %q, missing expected substrings", out)
	}
}

func TestHandlerNilFileDoesNotPanic(t *testing.T) {
	h := NewHandler(nil, &slog.HandlerOptions{Level: slog.LevelDebug}, false)
	logger := slog.New(h)
	logger.Info("no sink configured")
}

func TestHandlerWithAttrsPreservesSink(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}, false)
	logger := slog.New(h).With("component", "test")
	logger.Info("message")

	if !strings.Contains(buf.String(), "component=test") {
		t.Fatalf("got %q, want component=test", buf.String())
	}
}
