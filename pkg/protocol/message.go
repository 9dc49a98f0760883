package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MessageKind names the variant of a Message
type MessageKind string

const (
	KindRequest      MessageKind = "request"
	KindResponse     MessageKind = "response"
	KindNotification MessageKind = "notification"
	KindError        MessageKind = "error"
	KindNil          MessageKind = "nil"
)

// Message is the closed set of JSON-RPC messages exchanged on a connection:
// *Request, *Response, *Notification, *ErrorResponse and Nil.
type Message interface {
	Kind() MessageKind
	isMessage()
}

func (*Request) Kind() MessageKind       { return KindRequest }
func (*Response) Kind() MessageKind      { return KindResponse }
func (*Notification) Kind() MessageKind  { return KindNotification }
func (*ErrorResponse) Kind() MessageKind { return KindError }

func (*Request) isMessage()       {}
func (*Response) isMessage()      {}
func (*Notification) isMessage()  {}
func (*ErrorResponse) isMessage() {}

type nilMessage struct{}

func (nilMessage) Kind() MessageKind { return KindNil }
func (nilMessage) isMessage()        {}

// Nil is the reply to a notification. Nothing is written to the wire for it.
var Nil Message = nilMessage{}

// IsNil reports whether msg is the notification reply sentinel
func IsNil(msg Message) bool {
	if msg == nil {
		return true
	}
	_, ok := msg.(nilMessage)
	return ok
}

// MarshalMessage encodes a message for the wire.
// Marshaling Nil fails with ErrNilMessage. Shapes ParseMessage would decode
// as another variant are rejected: a Request without an id and a Response
// carrying an error.
func MarshalMessage(msg Message) ([]byte, error) {
	if IsNil(msg) {
		return nil, ErrNilMessage
	}
	switch m := msg.(type) {
	case *Request:
		if err := m.Validate(); err != nil {
			return nil, err
		}
	case *Response:
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	return json.Marshal(msg)
}

// memberSet records which members a raw message carries.
type memberSet map[string]json.RawMessage

func (p memberSet) has(key string) bool {
	_, ok := p[key]
	return ok
}

// hasValue reports whether key is present and not JSON null
func (p memberSet) hasValue(key string) bool {
	raw, ok := p[key]
	return ok && string(raw) != "null"
}

// ParseMessage decodes a raw JSON document into a Message.
//
// The union carries no tag, so members are checked in a fixed order:
//  1. a "method" with a non-null "id" is a Request, without one a Notification;
//  2. otherwise a "result" makes a Response (an "error" next to it is rejected);
//  3. otherwise an "error" makes an ErrorResponse;
//  4. anything else is an invalid request.
//
// Malformed JSON fails with a KindParse error, structural problems with KindProtocol.
func ParseMessage(data []byte) (Message, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		if !json.Valid(trimmed) {
			return nil, NewParseError("invalid JSON")
		}
		return nil, NewProtocolError("message must be a JSON object")
	}

	var p memberSet
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, NewParseError(err.Error())
	}

	var version string
	if err := json.Unmarshal(p["jsonrpc"], &version); err != nil || version != JSONRPCVersion {
		return nil, NewProtocolError(fmt.Sprintf("jsonrpc must be %q", JSONRPCVersion))
	}

	switch {
	case p.has("method"):
		if p.hasValue("id") {
			var req Request
			if err := json.Unmarshal(trimmed, &req); err != nil {
				return nil, NewProtocolError(fmt.Sprintf("invalid request: %v", err))
			}
			req.ID = normalizeRaw(req.ID)
			req.Params = normalizeRaw(req.Params)
			return &req, nil
		}
		var n Notification
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return nil, NewProtocolError(fmt.Sprintf("invalid notification: %v", err))
		}
		n.Params = normalizeRaw(n.Params)
		return &n, nil

	case p.has("result"):
		if p.has("error") {
			return nil, NewProtocolError("response must not carry both result and error")
		}
		var resp Response
		if err := json.Unmarshal(trimmed, &resp); err != nil {
			return nil, NewProtocolError(fmt.Sprintf("invalid response: %v", err))
		}
		resp.ID = normalizeRaw(resp.ID)
		return &resp, nil

	case p.hasValue("error"):
		var e ErrorResponse
		if err := json.Unmarshal(trimmed, &e); err != nil {
			return nil, NewProtocolError(fmt.Sprintf("invalid error response: %v", err))
		}
		e.ID = normalizeRaw(e.ID)
		return &e, nil
	}

	return nil, NewProtocolError("message is neither a request, notification nor response")
}

// PeekID extracts the "id" member of a raw message, if any.
// It is used to address error replies for documents that fail to parse.
func PeekID(data []byte) json.RawMessage {
	var p memberSet
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	return normalizeRaw(p["id"])
}

// IsRequest checks if a raw JSON message is a JSON-RPC 2.0 request
func IsRequest(data []byte) bool {
	msg, err := ParseMessage(data)
	return err == nil && msg.Kind() == KindRequest
}

// IsResponse checks if a raw JSON message is a JSON-RPC 2.0 response or error reply
func IsResponse(data []byte) bool {
	msg, err := ParseMessage(data)
	return err == nil && (msg.Kind() == KindResponse || msg.Kind() == KindError)
}

// IsNotification checks if a raw JSON message is a JSON-RPC 2.0 notification
func IsNotification(data []byte) bool {
	msg, err := ParseMessage(data)
	return err == nil && msg.Kind() == KindNotification
}
