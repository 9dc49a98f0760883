package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TextFormatter formats log entries as single human-readable lines:
//
//	2024-01-02 15:04:05.000 [INFO] [req-1] codec: decoded message | kind=request method=ping
type TextFormatter struct {
	// TimestampFormat is the format for timestamps
	TimestampFormat string
	// DisableTimestamp disables timestamp output
	DisableTimestamp bool
	// EnableColors colours the level for terminals
	EnableColors bool
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05.000",
	}
}

// Format formats a log entry as text
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	var buf bytes.Buffer

	if !f.DisableTimestamp {
		buf.WriteString(entry.Timestamp.Format(f.TimestampFormat))
		buf.WriteByte(' ')
	}

	level := "[" + entry.Level.String() + "]"
	if f.EnableColors {
		level = colorize(entry.Level, level)
	}
	buf.WriteString(level)
	buf.WriteByte(' ')

	if entry.RequestID != "" {
		fmt.Fprintf(&buf, "[%s] ", entry.RequestID)
	}
	if entry.Component != "" {
		buf.WriteString(entry.Component)
		buf.WriteString(": ")
	}
	buf.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		if k == RequestIDKey || (k == "component" && entry.Component != "") {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) > 0 {
		sort.Strings(keys)
		buf.WriteString(" |")
		for _, k := range keys {
			buf.WriteByte(' ')
			buf.WriteString(k)
			buf.WriteByte('=')
			buf.WriteString(textValue(entry.Fields[k]))
		}
	}

	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func textValue(v interface{}) string {
	var s string
	switch val := v.(type) {
	case error:
		s = val.Error()
	case string:
		s = val
	case fmt.Stringer:
		s = val.String()
	default:
		s = fmt.Sprintf("%v", v)
	}
	if strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

func colorize(level Level, text string) string {
	const reset = "\033[0m"
	var color string
	switch level {
	case DebugLevel:
		color = "\033[90m"
	case InfoLevel:
		color = "\033[34m"
	case WarnLevel:
		color = "\033[33m"
	case ErrorLevel:
		color = "\033[31m"
	default:
		return text
	}
	return color + text + reset
}

// JSONFormatter formats log entries as one JSON object per line
type JSONFormatter struct {
	// TimestampFormat is the format for timestamps
	TimestampFormat string
	// DisableTimestamp disables timestamp output
	DisableTimestamp bool
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	}
}

// Format formats a log entry as JSON. Fields never override the level,
// message or timestamp keys.
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	data := make(map[string]interface{}, len(entry.Fields)+3)
	for k, v := range entry.Fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		data[k] = v
	}

	data["level"] = entry.Level.String()
	data["message"] = entry.Message
	if !f.DisableTimestamp {
		data["timestamp"] = entry.Timestamp.Format(f.TimestampFormat)
	}

	out, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal log entry: %w", err)
	}
	return append(out, '\n'), nil
}
