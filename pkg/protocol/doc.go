// Package protocol defines the JSON-RPC 2.0 envelope used by MCP endpoints.
//
// The package is the leaf of the module: it knows nothing about prompts or
// resources and treats params and results as raw JSON.
//
// # Package Organization
//
//   - jsonrpc.go: Request, Response, Notification, ErrorResponse and ErrorData
//   - message.go: the Message union, ParseMessage and MarshalMessage
//   - errors.go: the ProtocolError taxonomy and its mapping onto wire codes
//   - mcp.go: method names and the initialize result with server capabilities
//   - batch.go: splitting batched frames
//
// # Message Discrimination
//
// JSON-RPC messages carry no type tag. ParseMessage decides the variant from
// the members present, in this order: "method" (Request when a non-null "id"
// is present, Notification otherwise), "result" (Response), "error"
// (ErrorResponse). Error replies are always represented as ErrorResponse;
// a Response value always carries a result.
//
// # Optional Members
//
// Absent optional members are omitted from the encoded JSON, never written as
// null. A null "id" or "params" on input is treated as absent.
//
// # Notifications
//
// Notifications never receive a reply on the wire. Handlers that need to
// return something for a notification return Nil, which MarshalMessage refuses
// to encode.
//
// # Example Messages
//
// Initialize response:
//
//	{
//	    "jsonrpc": "2.0",
//	    "id": 1,
//	    "result": {
//	        "protocolVersion": "0.2.0",
//	        "capabilities": {
//	            "prompts": {"listChanged": true},
//	            "resources": {"subscribe": false, "listChanged": true}
//	        },
//	        "serverInfo": {"name": "ExampleServer", "version": "1.0.0"}
//	    }
//	}
//
// Error reply:
//
//	{"jsonrpc": "2.0", "id": 1, "error": {"code": -32601, "message": "foo"}}
package protocol
