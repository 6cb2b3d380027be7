// Package logging provides the structured JSON logger used across the
// inventory service. Every entry is a single JSON line on stdout with a
// timestamp, level, logger name and message, plus any structured fields.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Fields carries structured key/value context attached to a log entry.
type Fields map[string]any

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

var (
	mu       sync.Mutex
	output   io.Writer = os.Stdout
	minLevel           = levelFromEnv()
)

func levelFromEnv() Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return LevelDebug
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// SetOutput redirects log output, primarily for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetLevel overrides the minimum level read from LOG_LEVEL at startup.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

// Logger writes structured log lines tagged with a component name.
type Logger struct {
	name string
}

// New creates a logger for the named component.
func New(name string) *Logger {
	return &Logger{name: name}
}

func (l *Logger) Debug(msg string, fields Fields) { l.log(LevelDebug, msg, fields) }
func (l *Logger) Info(msg string, fields Fields)  { l.log(LevelInfo, msg, fields) }
func (l *Logger) Error(msg string, fields Fields) { l.log(LevelError, msg, fields) }

// Fatal logs at error level and exits the process.
func (l *Logger) Fatal(msg string, fields Fields) {
	l.log(LevelError, msg, fields)
	os.Exit(1)
}

func (l *Logger) log(level Level, msg string, fields Fields) {
	mu.Lock()
	defer mu.Unlock()
	if level < minLevel {
		return
	}
	entry := make(map[string]any, len(fields)+4)
	for k, v := range fields {
		entry[k] = v
	}
	entry["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level.String()
	entry["logger"] = l.name
	entry["msg"] = msg
	line, err := json.Marshal(entry)
	if err != nil {
		line = []byte(fmt.Sprintf(`{"level":%q,"logger":%q,"msg":%q}`, level.String(), l.name, msg))
	}
	output.Write(append(line, '\n'))
}

var std = New("inventory-service")

// Info logs at info level on the default logger.
func Info(msg string, fields Fields) { std.Info(msg, fields) }

// Infof logs a formatted message on the default logger.
func Infof(format string, args ...any) { std.Info(fmt.Sprintf(format, args...), nil) }

// Errorf logs a formatted message at error level on the default logger.
func Errorf(format string, args ...any) { std.Error(fmt.Sprintf(format, args...), nil) }
