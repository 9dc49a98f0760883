// Package mcp is the typed message and content model of the Model Context
// Protocol: the JSON-RPC envelope exchanged between endpoints and the prompt
// and resource values carried inside it.
//
// The root package re-exports the most used entry points. The sub-packages
// hold the full API:
//
//   - pkg/protocol: the message union, parsing, error codes and capabilities
//   - pkg/resource: resources and their text and blob contents
//   - pkg/prompt: prompts, prompt messages and their content
//   - pkg/pagination: cursors for the list methods
//   - pkg/errors: structured errors and their wire mapping
//   - pkg/transport: the Transport boundary and the message Codec
//   - pkg/logging and pkg/observability: logging, metrics and tracing
//
// # Decoding a Message
//
//	codec := mcp.NewCodec()
//	msg, errResp := codec.Decode(ctx, frame)
//	if errResp != nil {
//	    reply, _ := codec.Encode(ctx, errResp)
//	    // write reply
//	    return
//	}
//	switch m := msg.(type) {
//	case *protocol.Request:
//	    // dispatch on m.Method
//	case *protocol.Notification:
//	    // no reply
//	}
//
// # Building Content
//
//	uri, _ := resource.ParseURI("file:///docs/readme.md")
//	res, err := mcp.NewResourceBuilder().URI(uri).MimeType("text/markdown").Build()
//
//	msg, err := mcp.NewImageMessage(prompt.RoleUser, base64Data, "image/png")
//
// Every constructor validates its input and reports failures as errors of the
// invalid-parameters kind. Nothing in this module panics on bad input.
package mcp
