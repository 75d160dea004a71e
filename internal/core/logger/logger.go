// Package logger provides the structured logging engine for greet.
// Uses log/slog writing to stderr and an optional log file, plus an
// append-only audit log of every greeting issued.
package logger

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Logger
// ─────────────────────────────────────────────────────────────────────────────

// Logger wraps slog.Logger with greet-specific utilities.
type Logger struct {
	*slog.Logger

	mu      sync.Mutex
	auditW  io.Writer // append-only audit log writer (nil = disabled)
	closers []io.Closer
}

// Options configures Init.
type Options struct {
	Level   string    // debug | info | warn | error
	Format  string    // json | text
	LogFile string    // empty = no file sink
	Home    string    // directory for audit.log; empty = audit disabled
	Debug   bool      // forces debug level and source locations
	Stderr  io.Writer // defaults to os.Stderr
}

// ParseLevel maps a config level name to a slog.Level; unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init builds a Logger and installs it as the slog default.
// File sinks that cannot be opened are skipped with a warning on stderr.
func Init(opts Options) *Logger {
	lvl := ParseLevel(opts.Level)
	if opts.Debug {
		lvl = slog.LevelDebug
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	writers := []io.Writer{stderr}
	l := &Logger{}

	var sinkErrs []error
	if opts.LogFile != "" {
		if f, err := openAppend(opts.LogFile); err == nil {
			writers = append(writers, f)
			l.closers = append(l.closers, f)
		} else {
			sinkErrs = append(sinkErrs, err)
		}
	}

	out := io.MultiWriter(writers...)

	var handler slog.Handler
	hopts := &slog.HandlerOptions{Level: lvl, AddSource: opts.Debug}
	if opts.Format == "json" {
		handler = slog.NewJSONHandler(out, hopts)
	} else {
		handler = slog.NewTextHandler(out, hopts)
	}

	l.Logger = slog.New(handler)
	slog.SetDefault(l.Logger)

	if opts.Home != "" {
		if af, err := openAppend(filepath.Join(opts.Home, "audit.log")); err == nil {
			l.auditW = af
			l.closers = append(l.closers, af)
		} else {
			sinkErrs = append(sinkErrs, err)
		}
	}

	for _, err := range sinkErrs {
		l.Warn("log sink disabled", "err", err)
	}
	return l
}

// Close releases any file sinks.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	l.closers = nil
	l.auditW = nil
	return first
}

func openAppend(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
}

// ─────────────────────────────────────────────────────────────────────────────
// Audit logging
// ─────────────────────────────────────────────────────────────────────────────

// AuditEntry represents a single audit log event.
type AuditEntry struct {
	Timestamp time.Time `json:"ts"`
	Op        string    `json:"op"`
	User      string    `json:"user"`
	Name      string    `json:"name"`
	Result    string    `json:"result"` // success | failure
}

// Audit writes an append-only audit log entry and a debug line.
func (l *Logger) Audit(entry AuditEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	entry.Timestamp = entry.Timestamp.UTC()
	l.Debug("audit", "op", entry.Op, "user", entry.User, "name", entry.Name, "result", entry.Result)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.auditW == nil {
		return
	}
	line, err := json.Marshal(entry)
	if err != nil {
		l.Warn("audit entry not encoded", "op", entry.Op, "err", err)
		return
	}
	if _, err := l.auditW.Write(append(line, '\n')); err != nil {
		l.Warn("audit entry not written", "op", entry.Op, "err", err)
	}
}
