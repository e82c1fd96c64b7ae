// Package logger provides leveled diagnostics for rwc.
//
// Every message is written as a single line with one Write call while holding
// the logger's mutex, so lines from concurrent goroutines never interleave.
// The level tag is colorized only when the writer is a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// ConsoleLogger writes leveled diagnostics prefixed with the program name.
// Format: "<prefix>: <level>: <message>"
type ConsoleLogger struct {
	writer      io.Writer
	prefix      string
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// An empty or unknown logLevel falls back to DefaultLevel.
func NewConsoleLogger(writer io.Writer, prefix, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		prefix:      prefix,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal reports whether w is an *os.File attached to a TTY and color
// has not been disabled (NO_COLOR, dumb terminal).
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if ValidLevel(normalized) {
		return normalized
	}
	return DefaultLevel
}

func logLevelToInt(level string) int {
	switch level {
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelWarn
	}
}

func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("debug", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("info", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("warn", message)
}

// LogFailure logs err at error level and returns the write error, if any.
// The sink uses the return value to tell a broken stderr from a logged failure.
func (cl *ConsoleLogger) LogFailure(err error) error {
	return cl.write("error", err.Error())
}

func (cl *ConsoleLogger) logWithLevel(level, message string) {
	_ = cl.write(level, message)
}

func (cl *ConsoleLogger) write(level, message string) error {
	if cl == nil || cl.writer == nil {
		return nil
	}
	if !cl.shouldLog(level) {
		return nil
	}

	// A message must stay on one line.
	message = strings.ReplaceAll(message, "\n", " ")

	tag := level
	if cl.colorOutput {
		tag = levelColor(level).Sprint(level)
	}

	var line string
	if cl.prefix != "" {
		line = fmt.Sprintf("%s: %s: %s\n", cl.prefix, tag, message)
	} else {
		line = fmt.Sprintf("%s: %s\n", tag, message)
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	_, err := io.WriteString(cl.writer, line)
	return err
}

func levelColor(level string) *color.Color {
	switch level {
	case "debug":
		return color.New(color.FgCyan)
	case "info":
		return color.New(color.FgBlue)
	case "warn":
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

// NewNoOpLogger returns a logger that discards everything.
func NewNoOpLogger() *ConsoleLogger {
	return NewConsoleLogger(nil, "", "error")
}
