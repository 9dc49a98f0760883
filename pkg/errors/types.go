// Package errors provides structured error handling for the MCP core.
// It defines error values that carry a JSON-RPC error code and a category, so
// that validation failures raised by builders and failures raised while
// interpreting envelopes can both be turned into a wire error object.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/ajitpratap0/mcp-core-go/pkg/protocol"
)

// Category groups errors by who is at fault
type Category string

const (
	CategoryValidation Category = "validation"
	CategoryNotFound   Category = "not_found"
	CategoryTransport  Category = "transport"
	CategoryInternal   Category = "internal"
	CategoryProtocol   Category = "protocol"
)

// Severity is carried into logs; it never changes the wire code
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Context records where an error was raised
type Context struct {
	RequestID string `json:"request_id,omitempty"`
	Method    string `json:"method,omitempty"`
	Component string `json:"component,omitempty"`
	Operation string `json:"operation,omitempty"`
}

// MCPError is implemented by every error this module returns. It carries
// the JSON-RPC code it is reported with, plus diagnostics that stay local.
type MCPError interface {
	error

	Code() protocol.ErrorCode
	Message() string
	// Details is technical text appended to Message in Error()
	Details() string
	// Data is sent as the "data" member of the wire error object
	Data() interface{}
	Category() Category
	Severity() Severity
	Context() *Context

	// The With methods return a modified copy
	WithContext(ctx *Context) MCPError
	WithDetail(detail string) MCPError
	WithData(data interface{}) MCPError

	Unwrap() error
	ToJSON() map[string]interface{}
}

type codedError struct {
	code     protocol.ErrorCode
	message  string
	details  []string
	data     interface{}
	category Category
	severity Severity
	context  *Context
	cause    error
}

func (e *codedError) Error() string {
	if len(e.details) == 0 {
		return e.message
	}
	return e.message + ": " + strings.Join(e.details, "; ")
}

func (e *codedError) Code() protocol.ErrorCode { return e.code }
func (e *codedError) Message() string          { return e.message }
func (e *codedError) Details() string          { return strings.Join(e.details, "; ") }
func (e *codedError) Data() interface{}        { return e.data }
func (e *codedError) Category() Category       { return e.category }
func (e *codedError) Severity() Severity       { return e.severity }
func (e *codedError) Context() *Context        { return e.context }
func (e *codedError) Unwrap() error            { return e.cause }

func (e *codedError) with(modify func(*codedError)) MCPError {
	c := *e
	c.details = append([]string(nil), e.details...)
	modify(&c)
	return &c
}

func (e *codedError) WithContext(ctx *Context) MCPError {
	return e.with(func(c *codedError) { c.context = ctx })
}

func (e *codedError) WithDetail(detail string) MCPError {
	return e.with(func(c *codedError) { c.details = append(c.details, detail) })
}

func (e *codedError) WithData(data interface{}) MCPError {
	return e.with(func(c *codedError) { c.data = data })
}

// errorJSON is the diagnostic form of an error, used in logs and combined errors
type errorJSON struct {
	Code     int         `json:"code"`
	Message  string      `json:"message"`
	Category Category    `json:"category"`
	Severity Severity    `json:"severity"`
	Details  string      `json:"details,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Context  *Context    `json:"context,omitempty"`
	Cause    string      `json:"cause,omitempty"`
}

func (e *codedError) diagnostic() errorJSON {
	out := errorJSON{
		Code:     int(e.code),
		Message:  e.message,
		Category: e.category,
		Severity: e.severity,
		Details:  e.Details(),
		Data:     e.data,
		Context:  e.context,
	}
	if e.cause != nil {
		out.Cause = e.cause.Error()
	}
	return out
}

// ToJSON returns the diagnostic form as a map. Empty members are left out.
func (e *codedError) ToJSON() map[string]interface{} {
	d := e.diagnostic()
	m := map[string]interface{}{
		"code":     d.Code,
		"message":  d.Message,
		"category": string(d.Category),
		"severity": string(d.Severity),
	}
	optional := map[string]interface{}{"details": d.Details, "cause": d.Cause}
	for k, v := range optional {
		if v != "" {
			m[k] = v
		}
	}
	if d.Data != nil {
		m["data"] = d.Data
	}
	if d.Context != nil {
		m["context"] = d.Context
	}
	return m
}

func (e *codedError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.diagnostic())
}

// NewError creates an error reported with code
func NewError(code protocol.ErrorCode, message string, category Category, severity Severity) MCPError {
	return &codedError{code: code, message: message, category: category, severity: severity}
}

// NewErrorf is NewError with a formatted message
func NewErrorf(code protocol.ErrorCode, category Category, severity Severity, format string, args ...interface{}) MCPError {
	return NewError(code, fmt.Sprintf(format, args...), category, severity)
}

// WrapError creates an error reported with code whose cause is err
func WrapError(err error, code protocol.ErrorCode, message string, category Category, severity Severity) MCPError {
	return &codedError{code: code, message: message, category: category, severity: severity, cause: err}
}

// AsMCPError finds the first MCPError in err's chain
func AsMCPError(err error) (MCPError, bool) {
	var mcpErr MCPError
	if err != nil && stderrors.As(err, &mcpErr) {
		return mcpErr, true
	}
	return nil, false
}

func matches(err error, pred func(MCPError) bool) bool {
	mcpErr, ok := AsMCPError(err)
	return ok && pred(mcpErr)
}

// IsMCPError reports whether err's chain holds an MCPError
func IsMCPError(err error) bool {
	return matches(err, func(MCPError) bool { return true })
}

// IsCategory reports whether err's chain holds an MCPError of category
func IsCategory(err error, category Category) bool {
	return matches(err, func(e MCPError) bool { return e.Category() == category })
}

// IsCode reports whether err's chain holds an MCPError reported with code
func IsCode(err error, code protocol.ErrorCode) bool {
	return matches(err, func(e MCPError) bool { return e.Code() == code })
}
