package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// captureLogOutput temporarily redirects the global logger to a buffer.
func captureLogOutput(f func()) string {
	var buf bytes.Buffer

	oldLogger := defaultLogger
	defaultLogger = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	f()

	defaultLogger = oldLogger
	return buf.String()
}

// captureWithInit runs f with a logger built by InitLoggerTo so that the
// ReplaceAttr hook is exercised.
func captureWithInit(level Level, format Format, f func()) string {
	var buf bytes.Buffer
	InitLoggerTo(&buf, level, format)
	f()
	InitLogger(LevelInfo, FormatText)
	return buf.String()
}

func TestInit(t *testing.T) {
	if defaultLogger == nil {
		t.Error("Expected defaultLogger to be initialized by init()")
	}
}

func TestInitLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     Level
		wantDebug bool
		wantWarn  bool
	}{
		{"debug", LevelDebug, true, true},
		{"info", LevelInfo, false, true},
		{"warn", LevelWarn, false, true},
		{"error", LevelError, false, false},
		{"unknown falls back to info", Level(99), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureWithInit(tt.level, FormatJSON, func() {
				defaultLogger.Debug("debug message")
				defaultLogger.Warn("warn message")
			})
			if got := strings.Contains(output, "debug message"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(output, "warn message"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{" error ", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"Text", FormatText, false},
		{"", FormatText, false},
		{"xml", FormatText, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGetRunID(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		expected string
	}{
		{
			name:     "Context with run ID",
			ctx:      WithRunID(context.Background(), "run-1"),
			expected: "run-1",
		},
		{
			name:     "Context without run ID",
			ctx:      context.Background(),
			expected: "",
		},
		{
			name:     "Context with wrong type value",
			ctx:      context.WithValue(context.Background(), RunIDKey, 12345),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := GetRunID(tt.ctx); result != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestContextLoggingFunctions(t *testing.T) {
	ctx := WithRunID(context.Background(), "test-run-id")

	tests := []struct {
		name string
		fn   func()
	}{
		{"DebugContext", func() { DebugContext(ctx, "debug message") }},
		{"InfoContext", func() { InfoContext(ctx, "info message") }},
		{"LoggerFromContext", func() { LoggerFromContext(ctx).Warn("warning message") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureLogOutput(tt.fn)
			if !strings.Contains(output, "test-run-id") {
				t.Errorf("Expected output to contain run ID, got %q", output)
			}
		})
	}
}

func TestReplaceAttrTimestamp(t *testing.T) {
	output := captureWithInit(LevelInfo, FormatJSON, func() {
		InfoContext(context.Background(), "timestamp test")
	})

	var rec map[string]any
	if err := json.Unmarshal([]byte(output), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, output)
	}
	ts, _ := rec["time"].(string)
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("time %q is not RFC3339: %v", ts, err)
	}
}

func TestTextFormat(t *testing.T) {
	output := captureWithInit(LevelInfo, FormatText, func() {
		InfoContext(context.Background(), "test message text", "key", "value")
	})
	if !strings.Contains(output, `msg="test message text"`) || !strings.Contains(output, "key=value") {
		t.Errorf("unexpected text output %q", output)
	}
}

func TestAlignmentDone(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelDebug, FormatJSON)

	AlignmentDone(logger, "gale-church", 2, 5, 6, 7, 1500*time.Millisecond, "workers", 4)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	want := map[string]any{
		"msg":         "alignment_done",
		"level":       "DEBUG",
		"method":      "gale-church",
		"groups":      float64(2),
		"blocks":      float64(5),
		"left_units":  float64(6),
		"right_units": float64(7),
		"duration_ms": float64(1500),
		"workers":     float64(4),
	}
	for k, v := range want {
		if rec[k] != v {
			t.Errorf("%s = %v, want %v", k, rec[k], v)
		}
	}
}

func TestAlignmentDoneBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	AlignmentDone(New(&buf, LevelInfo, FormatJSON), "gale-church", 1, 1, 1, 1, time.Millisecond)
	if buf.Len() != 0 {
		t.Errorf("debug event logged at info level: %q", buf.String())
	}
}

func TestAlignmentFailed(t *testing.T) {
	var buf bytes.Buffer
	AlignmentFailed(New(&buf, LevelInfo, FormatText), "align_text", errors.New("anchor mismatch"))

	output := buf.String()
	for _, want := range []string{"level=ERROR", "alignment_failed", "operation=align_text", `error="anchor mismatch"`} {
		if !strings.Contains(output, want) {
			t.Errorf("output %q missing %q", output, want)
		}
	}
}

func TestCacheStats(t *testing.T) {
	var buf bytes.Buffer
	CacheStats(New(&buf, LevelDebug, FormatText), 3, 1, 0, 4)
	if !strings.Contains(buf.String(), "hits=3") || !strings.Contains(buf.String(), "size=4") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("Discard() logger is enabled at error level")
	}
}

func TestContextKeyType(t *testing.T) {
	if RunIDKey != "run_id" {
		t.Errorf("Expected RunIDKey to be 'run_id', got '%s'", RunIDKey)
	}
}

func TestLevelConstants(t *testing.T) {
	if !(LevelDebug < LevelInfo && LevelInfo < LevelWarn && LevelWarn < LevelError) {
		t.Error("Expected LevelDebug < LevelInfo < LevelWarn < LevelError")
	}
	if FormatJSON == FormatText {
		t.Error("Expected FormatJSON != FormatText")
	}
}
