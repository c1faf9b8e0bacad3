// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug
// any structured logger. It also offers a richer ElicitLogger with
// contextual helpers (component, session) and domain specific helpers for
// oracle calls and turns.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// LogLevel is a thin enum for user friendly level configuration decoupled
// from slog.
type LogLevel int

const (
	// LogLevelDebug is the debug logging level.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the informational logging level.
	LogLevelInfo
	// LogLevelWarn is the warning logging level.
	LogLevelWarn
	// LogLevelError is the error logging level.
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

// Logger defines the minimal logging interface used across the engine.
// Args are alternating key/value pairs, as in slog.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewDefaultSlogLogger creates a Logger using slog.Default().
func NewDefaultSlogLogger() Logger {
	return NewSlogAdapter(slog.Default())
}

// NoOpLogger discards all log messages. Useful for testing or when logging
// is disabled.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}

// LoggerConfig configures construction of an ElicitLogger.
type LoggerConfig struct {
	Level     LogLevel
	Format    string // json or text
	Output    io.Writer
	AddSource bool
	Component string
	SessionID string
}

// DefaultLoggerConfig returns a baseline JSON info level configuration.
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{Level: LogLevelInfo, Format: "json", Output: os.Stdout}
}

// ElicitLogger wraps slog.Logger adding contextual cloning helpers and
// domain convenience methods. It is cheap to copy via the With* methods.
type ElicitLogger struct {
	logger    *slog.Logger
	component string
	sessionID string
}

// NewLogger builds an ElicitLogger from a config (or defaults if nil).
func NewLogger(cfg *LoggerConfig) *ElicitLogger {
	if cfg == nil {
		cfg = DefaultLoggerConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: slogLevel(cfg.Level), AddSource: cfg.AddSource}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	return &ElicitLogger{logger: slog.New(handler), component: cfg.Component, sessionID: cfg.SessionID}
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithComponent sets the logical component (coordinator, agent, bus, ...).
func (l *ElicitLogger) WithComponent(c string) *ElicitLogger {
	nl := *l
	nl.component = c
	return &nl
}

// WithSession attaches a session identifier to every entry.
func (l *ElicitLogger) WithSession(sid string) *ElicitLogger {
	nl := *l
	nl.sessionID = sid
	return &nl
}

func (l *ElicitLogger) log(level slog.Level, msg string, args ...any) {
	attrs := make([]any, 0, len(args)+4)
	if l.component != "" {
		attrs = append(attrs, "component", l.component)
	}
	if l.sessionID != "" {
		attrs = append(attrs, "session_id", l.sessionID)
	}
	attrs = append(attrs, args...)
	l.logger.Log(context.Background(), level, msg, attrs...)
}

// Debug logs at debug level.
func (l *ElicitLogger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args...) }

// Info logs at info level.
func (l *ElicitLogger) Info(msg string, args ...any) { l.log(slog.LevelInfo, msg, args...) }

// Warn logs at warn level.
func (l *ElicitLogger) Warn(msg string, args ...any) { l.log(slog.LevelWarn, msg, args...) }

// Error logs at error level.
func (l *ElicitLogger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args...) }

// LogOracleCall records latency and outcome of a model invocation.
func (l *ElicitLogger) LogOracleCall(provider, model string, dur time.Duration, err error) {
	if err != nil {
		l.Error("oracle call failed", "provider", provider, "model", model, "duration", dur, "error", err)
		return
	}
	l.Info("oracle call completed", "provider", provider, "model", model, "duration", dur)
}

// NewSlogLogger creates a new ElicitLogger with the specified configuration.
func NewSlogLogger(level LogLevel, format string, addSource bool) *ElicitLogger {
	cfg := DefaultLoggerConfig()
	cfg.Level = level
	if format != "" {
		cfg.Format = format
	}
	cfg.AddSource = addSource
	return NewLogger(cfg)
}

// LogTurn records an appended conversation turn.
func (l *ElicitLogger) LogTurn(sequence int, speaker string, chars int) {
	l.Debug("turn appended", "sequence", sequence, "speaker", speaker, "chars", chars)
}
