package logging

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogLevel defines the severity of the message
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// NewMockLogger returns a convenient mock logger for testing
func NewMockLogger() *DefaultLogger {
	l := NewDefaultLogger()
	l.SetOutput(bytes.NewBufferString(""))
	return l
}

// Logger interface defines logging operations
//
//go:generate mockery --name=Logger --output=./mocks
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	SetOutput(w io.Writer)
	SetLevel(level LogLevel)
}

// DefaultLogger is a Logger backed by logrus. It writes to stderr so that
// stdout stays reserved for the inventory document.
type DefaultLogger struct {
	entry *logrus.Logger
}

// NewDefaultLogger creates a new logger instance at WARN level
func NewDefaultLogger() *DefaultLogger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05",
	})
	d := &DefaultLogger{entry: l}
	d.SetLevel(WARN)
	return d
}

// Debug logs debug messages
func (l *DefaultLogger) Debug(format string, args ...any) {
	l.entry.Debugf(format, args...)
}

// Info logs informational messages
func (l *DefaultLogger) Info(format string, args ...any) {
	l.entry.Infof(format, args...)
}

// Warn logs warning messages
func (l *DefaultLogger) Warn(format string, args ...any) {
	l.entry.Warnf(format, args...)
}

// Error logs error messages
func (l *DefaultLogger) Error(format string, args ...any) {
	l.entry.Errorf(format, args...)
}

// SetOutput sets the output destination for the logger
func (l *DefaultLogger) SetOutput(w io.Writer) {
	l.entry.SetOutput(w)
}

// SetLevel sets the logging level
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.entry.SetLevel(toLogrusLevel(level))
}

func toLogrusLevel(level LogLevel) logrus.Level {
	switch level {
	case DEBUG:
		return logrus.DebugLevel
	case INFO:
		return logrus.InfoLevel
	case ERROR:
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}

// StringToLogLevel converts a string representation to a LogLevel.
// Unknown values map to WARN.
func StringToLogLevel(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return WARN
	}
}
