package mocks

import (
	"fmt"
	"strings"

	"github.com/user/framelabel/pkg/ports"
)

// Logger records formatted messages by level.
type Logger struct {
	entries *[]LogEntry
	prefix  string
}

// LogEntry is one recorded message.
type LogEntry struct {
	Level   ports.LogLevel
	Message string
}

// NewLogger creates an empty recording logger.
func NewLogger() *Logger {
	return &Logger{entries: &[]LogEntry{}}
}

func (m *Logger) Debug(msg string, args ...interface{}) { m.add(ports.LevelDebug, msg, args) }
func (m *Logger) Info(msg string, args ...interface{})  { m.add(ports.LevelInfo, msg, args) }
func (m *Logger) Warn(msg string, args ...interface{})  { m.add(ports.LevelWarn, msg, args) }
func (m *Logger) Error(msg string, args ...interface{}) { m.add(ports.LevelError, msg, args) }

func (m *Logger) WithComponent(component string) ports.Logger {
	return &Logger{entries: m.entries, prefix: "[" + component + "] "}
}

func (m *Logger) add(level ports.LogLevel, msg string, args []interface{}) {
	*m.entries = append(*m.entries, LogEntry{Level: level, Message: m.prefix + fmt.Sprintf(msg, args...)})
}

// Entries returns messages at the given level.
func (m *Logger) Entries(level ports.LogLevel) []string {
	var out []string
	for _, e := range *m.entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Contains reports whether any message at level contains substr.
func (m *Logger) Contains(level ports.LogLevel, substr string) bool {
	for _, msg := range m.Entries(level) {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

var _ ports.Logger = (*Logger)(nil)
