package logging

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogrusLogger implements Logger on top of a logrus entry
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger wraps a logrus logger. A nil logger uses the logrus standard logger.
func NewLogrusLogger(logger *logrus.Logger) Logger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusLogger{entry: logrus.NewEntry(logger)}
}

// Debug logs a debug message
func (l *LogrusLogger) Debug(msg string, fields ...Field) {
	l.with(fields).Debug(msg)
}

// Info logs an info message
func (l *LogrusLogger) Info(msg string, fields ...Field) {
	l.with(fields).Info(msg)
}

// Warn logs a warning message
func (l *LogrusLogger) Warn(msg string, fields ...Field) {
	l.with(fields).Warn(msg)
}

// Error logs an error message
func (l *LogrusLogger) Error(msg string, fields ...Field) {
	l.with(fields).Error(msg)
}

// WithFields returns a new logger with additional fields
func (l *LogrusLogger) WithFields(fields ...Field) Logger {
	return &LogrusLogger{entry: l.with(fields)}
}

// WithContext attaches ctx to entries and adds its request ID
func (l *LogrusLogger) WithContext(ctx context.Context) Logger {
	return &LogrusLogger{entry: l.entry.WithContext(ctx).WithFields(logrusFields(contextFields(ctx)))}
}

// WithError returns a new logger with error context
func (l *LogrusLogger) WithError(err error) Logger {
	return &LogrusLogger{entry: l.with(errorFields(err))}
}

// SetLevel sets the level of the underlying logrus logger
func (l *LogrusLogger) SetLevel(level Level) {
	l.entry.Logger.SetLevel(toLogrusLevel(level))
}

// GetLevel returns the level of the underlying logrus logger
func (l *LogrusLogger) GetLevel() Level {
	return fromLogrusLevel(l.entry.Logger.GetLevel())
}

func (l *LogrusLogger) with(fields []Field) *logrus.Entry {
	if len(fields) == 0 {
		return l.entry
	}
	return l.entry.WithFields(logrusFields(fields))
}

func logrusFields(fields []Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}

func toLogrusLevel(level Level) logrus.Level {
	switch level {
	case DebugLevel:
		return logrus.DebugLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func fromLogrusLevel(level logrus.Level) Level {
	switch {
	case level >= logrus.DebugLevel:
		return DebugLevel
	case level == logrus.WarnLevel:
		return WarnLevel
	case level <= logrus.ErrorLevel:
		return ErrorLevel
	default:
		return InfoLevel
	}
}
