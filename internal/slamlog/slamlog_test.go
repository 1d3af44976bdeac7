package slamlog

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.expected)
		}
	}
}

func TestFieldCreators(t *testing.T) {
	if f := String("key", "value"); f.Key != "key" || f.Value != "value" {
		t.Errorf("String field incorrect: %+v", f)
	}
	if f := Int("count", 42); f.Key != "count" || f.Value != 42 {
		t.Errorf("Int field incorrect: %+v", f)
	}
	if f := Int64("bytes", 1024); f.Key != "bytes" || f.Value != int64(1024) {
		t.Errorf("Int64 field incorrect: %+v", f)
	}

	err := errors.New("boom")
	if f := Err(err); f.Key != "error" || f.Value != "boom" {
		t.Errorf("Err field incorrect: %+v", f)
	}
	if f := Err(nil); f.Value != nil {
		t.Errorf("Err(nil) field incorrect: %+v", f)
	}
}

func TestNullLoggerIsNoop(t *testing.T) {
	logger := &nullLogger{}
	logger.Debug("x")
	logger.Info("x")
	logger.Warn("x")
	logger.Error("x")

	if child := logger.WithFields(String("k", "v")); child != Logger(logger) {
		t.Error("nullLogger.WithFields should return the same instance")
	}
}

func TestSimpleLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSimpleLogger(&buf, LevelWarn)

	logger.Debug("ignored")
	logger.Info("ignored too")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below configured level, got %q", buf.String())
	}

	logger.Warn("heads up", String("entry", "a.txt"))
	out := buf.String()
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "heads up") || !strings.Contains(out, "entry=a.txt") {
		t.Errorf("unexpected log line: %q", out)
	}
}

func TestSimpleLoggerWithFieldsInherits(t *testing.T) {
	var buf bytes.Buffer
	base := NewSimpleLogger(&buf, LevelInfo).WithFields(String("op", "pack"))
	base.Info("starting")
	if out := buf.String(); !strings.Contains(out, "op=pack") {
		t.Errorf("inherited field missing from log line: %q", out)
	}
}

func TestLogRoutesSeverity(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewSimpleLogger(&buf, LevelDebug))
	defer SetLogger(nil)

	Log(SeverityDebug, "decoding entry %d", 3)
	Log(SeverityBasic, "archive %s packed", "out.slm")

	out := buf.String()
	if !strings.Contains(out, "DEBUG") || !strings.Contains(out, "decoding entry 3") {
		t.Errorf("Debug severity not routed to Debug level: %q", out)
	}
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "archive out.slm packed") {
		t.Errorf("Basic severity not routed to Info level: %q", out)
	}
}
