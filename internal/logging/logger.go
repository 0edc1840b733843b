package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// logLevel represents the severity of a log message.
type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

// String returns the human-readable tag for the level (e.g. "DEBUG").
func (l logLevel) String() string {
	switch l {
	case levelDebug:
		return "DEBUG"
	case levelInfo:
		return "INFO"
	case levelWarn:
		return "WARN"
	case levelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// parseLevel converts a string level name to the internal logLevel value.
// Unrecognised strings default to levelInfo.
func parseLevel(s string) logLevel {
	switch strings.ToLower(s) {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Logger is a thread-safe, level-filtered logger that writes timestamped,
// component-tagged lines. File-backed loggers rotate once the file exceeds
// its size threshold and may mirror every line to stderr.
type Logger struct {
	mu        sync.Mutex
	component string
	level     atomic.Int32
	logger    *log.Logger

	// Set only for file-backed loggers.
	filePath  string
	file      *os.File
	maxBytes  int64
	toConsole bool
}

// NewLogger opens (or creates) the log file at path. level is one of
// "debug", "info", "warn", "error"; rotationMB is the size in megabytes at
// which the file is rotated.
func NewLogger(path, component, level string, rotationMB int, toConsole bool) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", path, err)
	}

	l := &Logger{
		component: component,
		logger:    log.New(f, "", 0),
		filePath:  path,
		file:      f,
		maxBytes:  int64(rotationMB) * 1024 * 1024,
		toConsole: toConsole,
	}
	l.level.Store(int32(parseLevel(level)))
	return l, nil
}

// NewWriterLogger returns a Logger that writes to w without rotation. It is
// used for stderr output from CLI commands.
func NewWriterLogger(w io.Writer, component, level string) *Logger {
	l := &Logger{
		component: component,
		logger:    log.New(w, "", 0),
	}
	l.level.Store(int32(parseLevel(level)))
	return l
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return NewWriterLogger(io.Discard, "", "error")
}

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(level string) {
	l.level.Store(int32(parseLevel(level)))
}

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(msg string, args ...any) {
	l.logMsg(levelDebug, msg, args...)
}

// Info logs a message at INFO level.
func (l *Logger) Info(msg string, args ...any) {
	l.logMsg(levelInfo, msg, args...)
}

// Warn logs a message at WARN level.
func (l *Logger) Warn(msg string, args ...any) {
	l.logMsg(levelWarn, msg, args...)
}

// Error logs a message at ERROR level.
func (l *Logger) Error(msg string, args ...any) {
	l.logMsg(levelError, msg, args...)
}

func (l *Logger) logMsg(lvl logLevel, msg string, args ...any) {
	if lvl < logLevel(l.level.Load()) {
		return
	}

	text := msg
	if len(args) > 0 {
		text = fmt.Sprintf(msg, args...)
	}

	line := time.Now().Format(time.RFC3339) + " [" + lvl.String() + "]"
	if l.component != "" {
		line += " " + l.component + ":"
	}
	line += " " + text

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		l.checkRotate()
	}

	l.logger.Output(0, line)

	if l.toConsole {
		fmt.Fprintln(os.Stderr, line)
	}
}

// checkRotate rotates the log file once it reaches maxBytes. Must be called
// with l.mu held.
func (l *Logger) checkRotate() {
	info, err := l.file.Stat()
	if err != nil || info.Size() < l.maxBytes {
		return
	}

	// The open handle stays valid on Unix after the rename.
	if err := rotate(l.filePath, maxBackups); err != nil {
		fmt.Fprintf(os.Stderr, "logging: rotation failed: %v\n", err)
		return
	}

	f, err := os.OpenFile(l.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: reopen after rotation failed: %v\n", err)
		return
	}

	old := l.file
	l.file = f
	l.logger.SetOutput(f)
	old.Close()
}

// Close closes the underlying log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.logger.SetOutput(io.Discard)
	return err
}
