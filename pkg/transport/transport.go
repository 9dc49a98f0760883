package transport

import (
	"context"

	"github.com/ajitpratap0/mcp-core-go/pkg/protocol"
)

// MessageHandler receives messages decoded by a transport
type MessageHandler func(ctx context.Context, msg protocol.Message)

// ErrorHandler receives transport failures, typically *protocol.ProtocolError
// values of kind protocol.KindTransport
type ErrorHandler func(err error)

// CloseHandler is called once when a transport closes
type CloseHandler func()

// Transport moves messages between endpoints.
// Implementations report failures as protocol errors of kind KindTransport.
type Transport interface {
	// Start begins receiving. It blocks until ctx is done or the transport closes.
	Start(ctx context.Context) error

	// Send writes a message. Sending protocol.Nil writes nothing.
	Send(ctx context.Context, msg protocol.Message) error

	// Close stops the transport and invokes the close handler
	Close(ctx context.Context) error

	// OnMessage registers the handler for incoming messages
	OnMessage(handler MessageHandler)

	// OnError registers the handler for transport failures
	OnError(handler ErrorHandler)

	// OnClose registers the handler called when the transport closes
	OnClose(handler CloseHandler)
}
