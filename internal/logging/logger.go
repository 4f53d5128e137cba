package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// LevelEnvVar selects the minimum level ("debug", "info", "warn", "error").
const LevelEnvVar = "SCREEN_TRANSLATOR_LOG_LEVEL"

// ParseLevel maps a level name to a Level. Unknown names map to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger provides leveled key/value logging for the pipeline components
type Logger struct {
	prefix string
	level  Level
	logger *log.Logger
}

// NewLogger creates a logger writing to stderr with the level taken from the environment.
// Stdout is reserved for the tool protocol.
func NewLogger(prefix string) *Logger {
	return NewLoggerTo(os.Stderr, prefix, ParseLevel(os.Getenv(LevelEnvVar)))
}

// NewLoggerTo creates a logger writing to w at the given minimum level.
func NewLoggerTo(w io.Writer, prefix string, level Level) *Logger {
	return &Logger{
		prefix: prefix,
		level:  level,
		logger: log.New(w, fmt.Sprintf("[%s] ", prefix), log.LstdFlags),
	}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return NewLoggerTo(io.Discard, "nop", LevelError+1)
}

// With returns a logger sharing the output and level with a nested prefix.
func (l *Logger) With(prefix string) *Logger {
	return &Logger{
		prefix: l.prefix + "/" + prefix,
		level:  l.level,
		logger: log.New(l.logger.Writer(), fmt.Sprintf("[%s/%s] ", l.prefix, prefix), l.logger.Flags()),
	}
}

// Info logs an informational message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.logWithKV(LevelInfo, "INFO", msg, keysAndValues...)
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.logWithKV(LevelWarn, "WARN", msg, keysAndValues...)
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.logWithKV(LevelError, "ERROR", msg, keysAndValues...)
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.logWithKV(LevelDebug, "DEBUG", msg, keysAndValues...)
}

func (l *Logger) logWithKV(level Level, label, msg string, keysAndValues ...interface{}) {
	if l == nil || level < l.level {
		return
	}
	var kv strings.Builder
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fmt.Fprintf(&kv, " %v=%v", keysAndValues[i], keysAndValues[i+1])
		}
	}
	l.logger.Printf("[%s] %s%s", label, msg, kv.String())
}
