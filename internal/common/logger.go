package common

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"evedecode/internal/eve"
)

// Severity represents log message severity levels
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity maps a command line level name onto a Severity.
func ParseSeverity(s string) (Severity, error) {
	lvl, err := logrus.ParseLevel(s)
	if err != nil {
		return SeverityInfo, err
	}
	switch {
	case lvl >= logrus.DebugLevel:
		return SeverityDebug, nil
	case lvl == logrus.InfoLevel:
		return SeverityInfo, nil
	case lvl == logrus.WarnLevel:
		return SeverityWarning, nil
	}
	return SeverityError, nil
}

// Logger interface defines the logging contract for the decoder
type Logger interface {
	// Log logs a message with the specified severity
	Log(severity Severity, msg string)

	// Logf logs a formatted message with the specified severity
	Logf(severity Severity, format string, args ...interface{})

	// WithFields returns a logger that attaches the fields to every message
	WithFields(fields map[string]interface{}) Logger

	// Error logs an error
	Error(err error)

	// Debug logs a debug message
	Debug(msg string)

	// Info logs an info message
	Info(msg string)

	// Warning logs a warning message
	Warning(msg string)
}

// LogrusLogger implements the Logger interface on a logrus entry.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger creates a logger writing text records to out.
func NewLogrusLogger(out io.Writer, minLevel Severity) *LogrusLogger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(toLogrusLevel(minLevel))
	return &LogrusLogger{entry: logrus.NewEntry(l)}
}

func toLogrusLevel(s Severity) logrus.Level {
	switch s {
	case SeverityDebug:
		return logrus.DebugLevel
	case SeverityInfo:
		return logrus.InfoLevel
	case SeverityWarning:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}

// Log logs a message with the specified severity
func (l *LogrusLogger) Log(severity Severity, msg string) {
	l.entry.Log(toLogrusLevel(severity), msg)
}

// Logf logs a formatted message with the specified severity
func (l *LogrusLogger) Logf(severity Severity, format string, args ...interface{}) {
	l.Log(severity, fmt.Sprintf(format, args...))
}

// WithFields returns a child logger carrying the fields.
func (l *LogrusLogger) WithFields(fields map[string]interface{}) Logger {
	return &LogrusLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// Error logs an error
func (l *LogrusLogger) Error(err error) {
	if err != nil {
		l.entry.Error(err.Error())
	}
}

// Debug logs a debug message
func (l *LogrusLogger) Debug(msg string) {
	l.Log(SeverityDebug, msg)
}

// Info logs an info message
func (l *LogrusLogger) Info(msg string) {
	l.Log(SeverityInfo, msg)
}

// Warning logs a warning message
func (l *LogrusLogger) Warning(msg string) {
	l.Log(SeverityWarning, msg)
}

// NoOpLogger is a logger that doesn't log anything
type NoOpLogger struct{}

// NewNoOpLogger creates a new no-op logger
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (l *NoOpLogger) Log(severity Severity, msg string)                          {}
func (l *NoOpLogger) Logf(severity Severity, format string, args ...interface{}) {}
func (l *NoOpLogger) WithFields(fields map[string]interface{}) Logger            { return l }
func (l *NoOpLogger) Error(err error)                                            {}
func (l *NoOpLogger) Debug(msg string)                                           {}
func (l *NoOpLogger) Info(msg string)                                            {}
func (l *NoOpLogger) Warning(msg string)                                         {}

// ErrLogAdapter routes component error logging into a Logger.
type ErrLogAdapter struct {
	Logger Logger
}

func sevToSeverity(sev eve.ErrSeverity) Severity {
	switch sev {
	case eve.ErrSevError:
		return SeverityError
	case eve.ErrSevWarn:
		return SeverityWarning
	case eve.ErrSevInfo:
		return SeverityInfo
	}
	return SeverityDebug
}

// LogError implements TraceErrorLog.
func (a *ErrLogAdapter) LogError(filterLevel eve.ErrSeverity, msg string) {
	a.Logger.Log(sevToSeverity(filterLevel), msg)
}

// LogMessage implements TraceErrorLog.
func (a *ErrLogAdapter) LogMessage(filterLevel eve.ErrSeverity, msg string) {
	a.Logger.Log(sevToSeverity(filterLevel), msg)
}
