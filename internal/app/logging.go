package app

import (
	"sync"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LogLevelDebug is for detailed debugging information.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string into a LogLevel.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug", "DEBUG":
		return LogLevelDebug
	case "info", "INFO":
		return LogLevelInfo
	case "warn", "WARN", "warning", "WARNING":
		return LogLevelWarn
	case "error", "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// sink is the printf surface of a commonlog logger.
type sink interface {
	Debugf(format string, values ...any)
	Infof(format string, values ...any)
	Warningf(format string, values ...any)
	Errorf(format string, values ...any)
}

func commonlogSink(name string) sink {
	return commonlog.GetLogger(name)
}

// Logger is a leveled logger writing through commonlog.
// Messages use printf formatting.
type Logger struct {
	mu       sync.Mutex
	level    LogLevel
	name     string
	out      sink
	sinkFor  func(name string) sink
	disabled bool
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum log level to output.
	Level LogLevel
	// Name is the commonlog logger name.
	Name string
	// File receives log output. Empty means stderr.
	File string
}

// DefaultLoggerConfig returns the default logger configuration.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level: LogLevelInfo,
		Name:  "pagestorm",
	}
}

// ConfigureLogging sets up the commonlog backend and returns the root
// logger. The backend passes every message; Logger filters by level.
func ConfigureLogging(cfg LoggerConfig) *Logger {
	var path *string
	if cfg.File != "" {
		path = &cfg.File
	}
	commonlog.Configure(2, path)
	return NewLogger(cfg)
}

// NewLogger creates a logger with the given configuration.
func NewLogger(cfg LoggerConfig) *Logger {
	return newLogger(cfg.Level, cfg.Name, commonlogSink)
}

func newLogger(level LogLevel, name string, sinkFor func(string) sink) *Logger {
	return &Logger{
		level:   level,
		name:    name,
		out:     sinkFor(name),
		sinkFor: sinkFor,
	}
}

// Name returns the logger name.
func (l *Logger) Name() string {
	return l.name
}

// WithComponent returns a child logger named after the component.
func (l *Logger) WithComponent(component string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.sinkFor == nil {
		return l
	}

	name := component
	if l.name != "" {
		name = l.name + "." + component
	}
	child := newLogger(l.level, name, l.sinkFor)
	child.disabled = l.disabled
	return child
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Level returns the minimum log level.
func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Disable disables all logging.
func (l *Logger) Disable() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.disabled = true
}

// Enable enables logging.
func (l *Logger) Enable() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.disabled = false
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	if l.enabled(LogLevelDebug) {
		l.out.Debugf(msg, args...)
	}
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	if l.enabled(LogLevelInfo) {
		l.out.Infof(msg, args...)
	}
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	if l.enabled(LogLevelWarn) {
		l.out.Warningf(msg, args...)
	}
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	if l.enabled(LogLevelError) {
		l.out.Errorf(msg, args...)
	}
}

func (l *Logger) enabled(level LogLevel) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.disabled && l.out != nil && level >= l.level
}

// NullLogger is a logger that discards all output.
var NullLogger = &Logger{disabled: true}
