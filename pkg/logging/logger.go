// Package logging provides structured logging for the MCP core.
//
// The Logger interface is implemented by a built-in writer-based logger with
// text and JSON formatters, and by adapters over logrus and zap so that
// embedding applications can route codec diagnostics into their own logs.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	mcperrors "github.com/ajitpratap0/mcp-core-go/pkg/errors"
	"github.com/ajitpratap0/mcp-core-go/pkg/protocol"
)

// Level is the minimum severity a logger emits
type Level int

const (
	DebugLevel Level = iota - 1
	InfoLevel
	WarnLevel
	ErrorLevel
)

var levelNames = map[Level]string{
	DebugLevel: "DEBUG",
	InfoLevel:  "INFO",
	WarnLevel:  "WARN",
	ErrorLevel: "ERROR",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// Field is one key/value attached to a log entry
type Field struct {
	Key   string
	Value interface{}
}

func String(key, value string) Field                 { return Field{key, value} }
func Int(key string, value int) Field                { return Field{key, value} }
func Bool(key string, value bool) Field              { return Field{key, value} }
func Duration(key string, value time.Duration) Field { return Field{key, value} }
func Any(key string, value interface{}) Field        { return Field{key, value} }

// ErrorField attaches err under the "error" key
func ErrorField(err error) Field { return Field{"error", err} }

// Kind attaches the variant of a JSON-RPC message
func Kind(kind protocol.MessageKind) Field { return Field{"kind", string(kind)} }

// Method attaches a JSON-RPC method name
func Method(method string) Field { return Field{"method", method} }

// Logger is a leveled structured logger. Derived loggers share the level of
// the logger they came from.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	WithFields(fields ...Field) Logger
	// WithContext adds the request id carried by ctx, if any
	WithContext(ctx context.Context) Logger
	// WithError adds err and, for MCPError values, its code, category and context
	WithError(err error) Logger

	SetLevel(level Level)
	GetLevel() Level
}

// Entry represents a log entry
type Entry struct {
	Level     Level
	Message   string
	Fields    map[string]interface{}
	Timestamp time.Time
	RequestID string
	Component string
}

// Formatter formats log entries
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// levelHolder is shared between a logger and the loggers derived from it,
// so SetLevel on any of them applies to all
type levelHolder struct {
	mu    sync.RWMutex
	level Level
}

func (h *levelHolder) get() Level {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.level
}

func (h *levelHolder) set(level Level) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.level = level
}

// writer serialises writes to the shared output
type writer struct {
	mu  sync.Mutex
	out io.Writer
}

func (w *writer) write(data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := w.out.Write(data)
	return err
}

// baseLogger is the writer-based implementation of Logger
type baseLogger struct {
	level     *levelHolder
	output    *writer
	formatter Formatter
	fields    map[string]interface{}
}

// New creates a new structured logger writing to output at InfoLevel
func New(output io.Writer, formatter Formatter) Logger {
	if output == nil {
		output = os.Stderr
	}
	if formatter == nil {
		formatter = NewTextFormatter()
	}

	return &baseLogger{
		level:     &levelHolder{level: InfoLevel},
		output:    &writer{out: output},
		formatter: formatter,
		fields:    map[string]interface{}{},
	}
}

func (l *baseLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields) }
func (l *baseLogger) Info(msg string, fields ...Field)  { l.log(InfoLevel, msg, fields) }
func (l *baseLogger) Warn(msg string, fields ...Field)  { l.log(WarnLevel, msg, fields) }
func (l *baseLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields) }

func (l *baseLogger) SetLevel(level Level) { l.level.set(level) }
func (l *baseLogger) GetLevel() Level      { return l.level.get() }

func (l *baseLogger) WithFields(fields ...Field) Logger {
	derived := *l
	derived.fields = mergeFields(l.fields, fields)
	return &derived
}

func (l *baseLogger) WithContext(ctx context.Context) Logger {
	return l.WithFields(contextFields(ctx)...)
}

func (l *baseLogger) WithError(err error) Logger {
	return l.WithFields(errorFields(err)...)
}

// mergeFields copies base and applies fields over it
func mergeFields(base map[string]interface{}, fields []Field) map[string]interface{} {
	merged := make(map[string]interface{}, len(base)+len(fields))
	for k, v := range base {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	return merged
}

func (l *baseLogger) log(level Level, msg string, fields []Field) {
	if level < l.level.get() {
		return
	}

	entry := &Entry{
		Level:     level,
		Message:   msg,
		Fields:    mergeFields(l.fields, fields),
		Timestamp: time.Now(),
	}
	if requestID, ok := entry.Fields[RequestIDKey].(string); ok {
		entry.RequestID = requestID
	}
	if component, ok := entry.Fields["component"].(string); ok {
		entry.Component = component
	}

	data, err := l.formatter.Format(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: format %q: %v\n", msg, err)
		return
	}
	if err := l.output.write(data); err != nil {
		fmt.Fprintf(os.Stderr, "logging: write %q: %v\n", msg, err)
	}
}

// errorFields describes err, adding code and category for MCP errors
func errorFields(err error) []Field {
	if err == nil {
		return nil
	}
	fields := []Field{ErrorField(err)}

	if mcpErr, ok := mcperrors.AsMCPError(err); ok {
		fields = append(fields,
			Int("error_code", int(mcpErr.Code())),
			String("error_category", string(mcpErr.Category())),
		)
		if ctx := mcpErr.Context(); ctx != nil {
			if ctx.RequestID != "" {
				fields = append(fields, String(RequestIDKey, ctx.RequestID))
			}
			if ctx.Method != "" {
				fields = append(fields, Method(ctx.Method))
			}
			if ctx.Component != "" {
				fields = append(fields, String("component", ctx.Component))
			}
		}
	}
	return fields
}

func contextFields(ctx context.Context) []Field {
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		return []Field{String(RequestIDKey, requestID)}
	}
	return nil
}

// RequestIDKey is the field name request IDs are logged under
const RequestIDKey = "request_id"

type contextKey string

const requestIDKey contextKey = "request_id"

// ContextWithRequestID returns a context with a request ID
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request ID from a context
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// nopLogger discards everything
type nopLogger struct{}

// NewNopLogger returns a logger that discards all entries
func NewNopLogger() Logger {
	return nopLogger{}
}

func (nopLogger) Debug(string, ...Field)               {}
func (nopLogger) Info(string, ...Field)                {}
func (nopLogger) Warn(string, ...Field)                {}
func (nopLogger) Error(string, ...Field)               {}
func (n nopLogger) WithFields(...Field) Logger         { return n }
func (n nopLogger) WithContext(context.Context) Logger { return n }
func (n nopLogger) WithError(error) Logger             { return n }
func (nopLogger) SetLevel(Level)                       {}
func (nopLogger) GetLevel() Level                      { return ErrorLevel }
