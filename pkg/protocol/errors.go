package protocol

import "fmt"

// ErrorKind classifies failures raised while interpreting envelopes
type ErrorKind int

const (
	// KindTransport is a failure reported by the transport collaborator
	KindTransport ErrorKind = iota
	// KindParse means the payload was not valid JSON
	KindParse
	// KindProtocol means the JSON was not a valid JSON-RPC message
	KindProtocol
	// KindMethodNotImplemented means no handler exists for the method
	KindMethodNotImplemented
	// KindInvalidParams means the params did not match the method
	KindInvalidParams
	// KindInternal is any other failure inside the endpoint
	KindInternal
)

// String returns the human-readable label of the kind
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "Transport error"
	case KindParse:
		return "Parse error"
	case KindProtocol:
		return "Protocol error"
	case KindMethodNotImplemented:
		return "Method not implemented"
	case KindInvalidParams:
		return "Invalid parameters"
	default:
		return "Internal error"
	}
}

// Code returns the JSON-RPC code a kind is reported with on the wire
func (k ErrorKind) Code() ErrorCode {
	switch k {
	case KindParse:
		return ParseError
	case KindProtocol:
		return InvalidRequest
	case KindMethodNotImplemented:
		return MethodNotFound
	case KindInvalidParams:
		return InvalidParams
	default:
		// transport and internal failures share the internal error code
		return InternalError
	}
}

// ProtocolError is a recoverable failure of the envelope layer
type ProtocolError struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ErrorData converts the error into its wire representation.
// The conversion never fails and keeps the message text unchanged.
func (e *ProtocolError) ErrorData() ErrorData {
	return ErrorData{
		Code:    e.Kind.Code(),
		Message: e.Message,
	}
}

// NewTransportError creates a transport failure
func NewTransportError(msg string) *ProtocolError {
	return &ProtocolError{Kind: KindTransport, Message: msg}
}

// NewParseError creates a parse failure
func NewParseError(msg string) *ProtocolError {
	return &ProtocolError{Kind: KindParse, Message: msg}
}

// NewProtocolError creates a malformed-message failure
func NewProtocolError(msg string) *ProtocolError {
	return &ProtocolError{Kind: KindProtocol, Message: msg}
}

// NewMethodNotImplementedError creates an unknown-method failure
func NewMethodNotImplementedError(method string) *ProtocolError {
	return &ProtocolError{Kind: KindMethodNotImplemented, Message: method}
}

// NewInvalidParamsError creates an invalid-params failure
func NewInvalidParamsError(msg string) *ProtocolError {
	return &ProtocolError{Kind: KindInvalidParams, Message: msg}
}

// NewInternalError creates an internal failure
func NewInternalError(msg string) *ProtocolError {
	return &ProtocolError{Kind: KindInternal, Message: msg}
}
