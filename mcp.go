package mcp

import (
	"github.com/ajitpratap0/mcp-core-go/pkg/prompt"
	"github.com/ajitpratap0/mcp-core-go/pkg/protocol"
	"github.com/ajitpratap0/mcp-core-go/pkg/resource"
	"github.com/ajitpratap0/mcp-core-go/pkg/transport"
)

// Version represents the current version of the module
const Version = "0.2.0"

// ProtocolVersion is the protocol revision spoken by this module
const ProtocolVersion = protocol.ProtocolVersion

// Message handling
var (
	// NewCodec creates a message codec
	NewCodec = transport.NewCodec

	// ParseMessage decodes a single JSON-RPC message
	ParseMessage = protocol.ParseMessage

	// MarshalMessage encodes a message for the wire
	MarshalMessage = protocol.MarshalMessage

	NewRequest       = protocol.NewRequest
	NewResponse      = protocol.NewResponse
	NewNotification  = protocol.NewNotification
	NewErrorResponse = protocol.NewErrorResponse

	// NewInitializeResult creates the server's initialize reply
	NewInitializeResult = protocol.NewInitializeResult
)

// Codec options
var (
	WithLogger              = transport.WithLogger
	WithMetrics             = transport.WithMetrics
	WithTracer              = transport.WithTracer
	WithMaxBatchConcurrency = transport.WithMaxBatchConcurrency
)

// Resources
var (
	NewResourceBuilder     = resource.NewBuilder
	NewTextContentsBuilder = resource.NewTextContentsBuilder
	NewBlobContents        = resource.NewBlobContents
	ParseURI               = resource.ParseURI
)

// Prompts
var (
	NewPromptBuilder   = prompt.NewBuilder
	NewMessageBuilder  = prompt.NewMessageBuilder
	NewTextMessage     = prompt.NewTextMessage
	NewImageMessage    = prompt.NewImageMessage
	NewResourceMessage = prompt.NewResourceMessage
	NewImageContent    = prompt.NewImageContent
)

// Nil is the reply to a notification; nothing is sent for it
var Nil = protocol.Nil
