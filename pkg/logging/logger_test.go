package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warning", WarnLevel},
		{" Warn ", WarnLevel},
		{"error", ErrorLevel},
		{"verbose", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDomainFields(t *testing.T) {
	tests := []struct {
		field Field
		key   string
		value any
	}{
		{QuerySlug("q1_parts_materials"), "query", "q1_parts_materials"},
		{Assembly("A100"), "assembly", "A100"},
		{Triples(54), "triples", 54},
		{Rows(4), "rows", 4},
		{Path("out/q1.csv"), "path", "out/q1.csv"},
		{Duration("timeout", 5 * time.Second), "timeout", "5s"},
		{Error(errors.New("boom")), "error", "boom"},
		{Error(nil), "error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if tt.field.Key != tt.key || tt.field.Value != tt.value {
				t.Errorf("field = %+v, want {%s %v}", tt.field, tt.key, tt.value)
			}
		})
	}
}

func TestJSONLogger_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Info("graph loaded", Path("kg.ttl"), Triples(54))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal log entry: %v", err)
	}

	if entry.Level != "INFO" {
		t.Errorf("Level = %v, want INFO", entry.Level)
	}
	if entry.Message != "graph loaded" {
		t.Errorf("Message = %v, want 'graph loaded'", entry.Message)
	}
	if entry.Fields["path"] != "kg.ttl" {
		t.Errorf("Fields[path] = %v, want kg.ttl", entry.Fields["path"])
	}
	if entry.Fields["triples"] != float64(54) {
		t.Errorf("Fields[triples] = %v, want 54", entry.Fields["triples"])
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(lines))
	}

	var first LogEntry
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if first.Level != "WARN" {
		t.Errorf("First entry level = %v, want WARN", first.Level)
	}
}

func TestJSONLogger_WithSharesWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(Component("export"), Assembly("A100"))
	child.Info("wrote file", Path("out/q1_parts_materials.csv"))
	logger.Info("parent entry")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(lines))
	}

	var entry LogEntry
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if entry.Fields["component"] != "export" || entry.Fields["assembly"] != "A100" {
		t.Errorf("preset fields missing: %v", entry.Fields)
	}

	var parent LogEntry
	if err := json.Unmarshal([]byte(lines[1]), &parent); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if parent.Fields != nil {
		t.Errorf("parent logger picked up child fields: %v", parent.Fields)
	}
}

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTextLogger(&buf, InfoLevel)

	logger.Debug("hidden")
	logger.With(QuerySlug("q3_total_weight")).Info("query done", Rows(1))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry written at info level: %q", out)
	}
	if !strings.Contains(out, "INFO query done query=q3_total_weight rows=1") {
		t.Errorf("unexpected text output: %q", out)
	}
}

func TestNewLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	if _, ok := NewLogger(&buf, "json", InfoLevel).(*JSONLogger); !ok {
		t.Error("json format should produce a JSONLogger")
	}
	if _, ok := NewLogger(&buf, "text", InfoLevel).(*TextLogger); !ok {
		t.Error("text format should produce a TextLogger")
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	op := StartTimer(logger, "run query", QuerySlug("q1_parts_materials"))
	op.End(Rows(4))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if entry.Level != "DEBUG" {
		t.Errorf("Level = %v, want DEBUG", entry.Level)
	}
	if _, ok := entry.Fields["latency"]; !ok {
		t.Error("latency field missing")
	}
	if entry.Fields["rows"] != float64(4) {
		t.Errorf("rows = %v, want 4", entry.Fields["rows"])
	}

	buf.Reset()
	StartTimer(logger, "load graph").EndError(errors.New("no such file"))
	if !strings.Contains(buf.String(), `"error":"no such file"`) {
		t.Errorf("EndError output missing error: %s", buf.String())
	}
}

func TestDefaultLoggerOverride(t *testing.T) {
	var buf bytes.Buffer
	SetDefaultLogger(NewJSONLogger(&buf, DebugLevel))
	defer SetDefaultLogger(NewNopLogger())

	Info("info msg")
	Warn("warn msg")
	ErrorLog("error msg")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Errorf("Expected 3 log entries, got %d", len(lines))
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("ignored")
	if logger.With(Count(1)) == nil {
		t.Error("With should return a logger")
	}
}
