package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	// JSONRPCVersion is the supported JSON-RPC version
	JSONRPCVersion = "2.0"
)

// ErrorCode represents standard JSON-RPC 2.0 error codes
type ErrorCode int

// Standard JSON-RPC 2.0 error codes
const (
	ParseError     ErrorCode = -32700
	InvalidRequest ErrorCode = -32600
	MethodNotFound ErrorCode = -32601
	InvalidParams  ErrorCode = -32602
	InternalError  ErrorCode = -32603
)

// ResourceNotFound indicates a requested resource was not found (MCP reserved range)
const ResourceNotFound ErrorCode = -32002

// ErrNilMessage is returned when the notification reply sentinel is marshaled.
var ErrNilMessage = errors.New("nil message is never sent on the wire")

// Envelope carries the version field shared by every JSON-RPC message
type Envelope struct {
	JSONRPC string `json:"jsonrpc"`
}

// Request represents a JSON-RPC 2.0 request
type Request struct {
	Envelope
	ID     json.RawMessage `json:"id,omitempty"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// NewRequest creates a new JSON-RPC 2.0 request. The id is required: a
// message without one is a Notification. A nil params is omitted.
func NewRequest(id interface{}, method string, params interface{}) (*Request, error) {
	idJSON, err := marshalOptional(id)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal id: %w", err)
	}
	if idJSON == nil {
		return nil, errRequestWithoutID
	}
	paramsJSON, err := marshalOptional(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}

	return &Request{
		Envelope: Envelope{JSONRPC: JSONRPCVersion},
		ID:       idJSON,
		Method:   method,
		Params:   paramsJSON,
	}, nil
}

// NewRequestID returns a fresh string request identifier.
func NewRequestID() string {
	return uuid.NewString()
}

// Response represents a successful JSON-RPC 2.0 response.
//
// Error is never set on a Response that is sent: error replies are
// ErrorResponse values, which is how ParseMessage decodes them.
type Response struct {
	Envelope
	ID     json.RawMessage `json:"id,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *ErrorData      `json:"error,omitempty"`
}

// NewResponse creates a new JSON-RPC 2.0 success response.
// A nil result is encoded as JSON null so the response still carries a result.
func NewResponse(id interface{}, result interface{}) (*Response, error) {
	idJSON, err := marshalOptional(id)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal id: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &Response{
		Envelope: Envelope{JSONRPC: JSONRPCVersion},
		ID:       idJSON,
		Result:   resultJSON,
	}, nil
}

// Validate checks that the response carries a result and no error
func (r *Response) Validate() error {
	switch {
	case r.Error != nil && len(r.Result) > 0:
		return NewProtocolError("response must not carry both result and error")
	case r.Error != nil:
		return NewProtocolError("error replies must be sent as ErrorResponse")
	case len(r.Result) == 0:
		return NewProtocolError("response must carry a result")
	}
	return nil
}

var errRequestWithoutID = NewProtocolError("request must carry an id; send a notification instead")

// Validate checks that the request carries an id
func (r *Request) Validate() error {
	if len(normalizeRaw(r.ID)) == 0 {
		return errRequestWithoutID
	}
	return nil
}

// Notification represents a JSON-RPC 2.0 notification
type Notification struct {
	Envelope
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// NewNotification creates a new JSON-RPC 2.0 notification
func NewNotification(method string, params interface{}) (*Notification, error) {
	paramsJSON, err := marshalOptional(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}

	return &Notification{
		Envelope: Envelope{JSONRPC: JSONRPCVersion},
		Method:   method,
		Params:   paramsJSON,
	}, nil
}

// ErrorResponse is a JSON-RPC 2.0 reply that carries only an error
type ErrorResponse struct {
	Envelope
	ID    json.RawMessage `json:"id,omitempty"`
	Error ErrorData       `json:"error"`
}

// NewErrorResponse creates a new JSON-RPC 2.0 error reply
func NewErrorResponse(id interface{}, data ErrorData) (*ErrorResponse, error) {
	idJSON, err := marshalOptional(id)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal id: %w", err)
	}

	return &ErrorResponse{
		Envelope: Envelope{JSONRPC: JSONRPCVersion},
		ID:       idJSON,
		Error:    data,
	}, nil
}

// ErrorData represents a JSON-RPC 2.0 error object
type ErrorData struct {
	Code    ErrorCode       `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// NewErrorData creates an error object, marshaling data when it is not nil
func NewErrorData(code ErrorCode, message string, data interface{}) (ErrorData, error) {
	dataJSON, err := marshalOptional(data)
	if err != nil {
		return ErrorData{}, fmt.Errorf("failed to marshal error data: %w", err)
	}
	return ErrorData{Code: code, Message: message, Data: dataJSON}, nil
}

// Error returns a string representation of the error object
func (e ErrorData) Error() string {
	return fmt.Sprintf("rpc error: code = %d desc = %s", e.Code, e.Message)
}

// marshalOptional encodes v, treating nil and pre-encoded JSON null as absent.
func marshalOptional(v interface{}) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	if raw, ok := v.(json.RawMessage); ok {
		if len(raw) == 0 {
			return nil, nil
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, err
		}
		return normalizeRaw(buf.Bytes()), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return normalizeRaw(data), nil
}

// normalizeRaw drops JSON null so optional members stay absent
func normalizeRaw(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return raw
}
