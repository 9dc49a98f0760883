package errors

import "github.com/ajitpratap0/mcp-core-go/pkg/protocol"

// JSON-RPC 2.0 standard error codes, re-exported for callers that only
// import this package
const (
	// CodeParseError indicates invalid JSON was received
	CodeParseError = protocol.ParseError

	// CodeInvalidRequest indicates the JSON sent is not a valid request object
	CodeInvalidRequest = protocol.InvalidRequest

	// CodeMethodNotFound indicates the method does not exist or is not available
	CodeMethodNotFound = protocol.MethodNotFound

	// CodeInvalidParams indicates invalid method parameter(s)
	CodeInvalidParams = protocol.InvalidParams

	// CodeInternalError indicates an internal JSON-RPC error
	CodeInternalError = protocol.InternalError
)

// MCP-specific error codes
const (
	// CodeResourceNotFound indicates a requested resource does not exist
	CodeResourceNotFound = protocol.ResourceNotFound
)

// ErrorCodeDescription returns a human-readable description of an error code
func ErrorCodeDescription(code protocol.ErrorCode) string {
	switch code {
	case CodeParseError:
		return "Parse error"
	case CodeInvalidRequest:
		return "Invalid request"
	case CodeMethodNotFound:
		return "Method not found"
	case CodeInvalidParams:
		return "Invalid params"
	case CodeInternalError:
		return "Internal error"
	case CodeResourceNotFound:
		return "Resource not found"
	default:
		return "Unknown error"
	}
}

// IsStandardJSONRPCError reports whether code is one of the reserved JSON-RPC 2.0 codes
func IsStandardJSONRPCError(code protocol.ErrorCode) bool {
	return code >= -32700 && code <= -32600
}
