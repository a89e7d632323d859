package app

import (
	"fmt"
	"testing"
)

type recordingSink struct {
	name  string
	lines *[]string
}

func (s recordingSink) record(level, format string, values ...any) {
	*s.lines = append(*s.lines, fmt.Sprintf("%s %s: %s", level, s.name, fmt.Sprintf(format, values...)))
}

func (s recordingSink) Debugf(format string, values ...any)   { s.record("DEBUG", format, values...) }
func (s recordingSink) Infof(format string, values ...any)    { s.record("INFO", format, values...) }
func (s recordingSink) Warningf(format string, values ...any) { s.record("WARN", format, values...) }
func (s recordingSink) Errorf(format string, values ...any)   { s.record("ERROR", format, values...) }

func newTestLogger(level LogLevel) (*Logger, *[]string) {
	var lines []string
	l := newLogger(level, "pagestorm", func(name string) sink {
		return recordingSink{name: name, lines: &lines}
	})
	return l, &lines
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if result := tt.level.String(); result != tt.expected {
			t.Errorf("LogLevel(%d).String() = '%s', expected '%s'", tt.level, result, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"INFO", LogLevelInfo},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo}, // Default
		{"", LogLevelInfo},        // Default
	}

	for _, tt := range tests {
		if result := ParseLogLevel(tt.input); result != tt.expected {
			t.Errorf("ParseLogLevel('%s') = %d, expected %d", tt.input, result, tt.expected)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, lines := newTestLogger(LogLevelWarn)

	l.Debug("debug %d", 1)
	l.Info("info %d", 2)
	l.Warn("warn %d", 3)
	l.Error("error %d", 4)

	want := []string{"WARN pagestorm: warn 3", "ERROR pagestorm: error 4"}
	if len(*lines) != len(want) {
		t.Fatalf("got %d lines %v, want %v", len(*lines), *lines, want)
	}
	for i := range want {
		if (*lines)[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, (*lines)[i], want[i])
		}
	}

	l.SetLevel(LogLevelDebug)
	l.Debug("now visible")
	if got := (*lines)[len(*lines)-1]; got != "DEBUG pagestorm: now visible" {
		t.Errorf("last line = %q", got)
	}
}

func TestLogger_WithComponent(t *testing.T) {
	l, lines := newTestLogger(LogLevelInfo)

	child := l.WithComponent("engine")
	if child.Name() != "pagestorm.engine" {
		t.Errorf("Name() = %q, want 'pagestorm.engine'", child.Name())
	}
	if child.Level() != LogLevelInfo {
		t.Errorf("child level = %v, want INFO", child.Level())
	}

	child.Info("opened")
	if len(*lines) != 1 || (*lines)[0] != "INFO pagestorm.engine: opened" {
		t.Errorf("lines = %v", *lines)
	}
}

func TestLogger_Disable(t *testing.T) {
	l, lines := newTestLogger(LogLevelDebug)

	l.Disable()
	l.Error("hidden")
	if len(*lines) != 0 {
		t.Errorf("disabled logger wrote %v", *lines)
	}

	l.Enable()
	l.Error("shown")
	if len(*lines) != 1 {
		t.Errorf("enabled logger wrote %v", *lines)
	}
}

func TestNullLogger(t *testing.T) {
	// Must not panic without a sink
	NullLogger.Error("dropped")
	NullLogger.WithComponent("engine").Info("dropped")
}
