package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/ajitpratap0/mcp-core-go/pkg/protocol"
)

// ToErrorData converts any error into a JSON-RPC error object.
// The conversion never fails: errors it does not recognise become internal errors.
// The message text of MCPError and ProtocolError values is carried unchanged.
func ToErrorData(err error) protocol.ErrorData {
	if err == nil {
		return protocol.ErrorData{Code: CodeInternalError, Message: "unknown error"}
	}

	if mcpErr, ok := AsMCPError(err); ok {
		data := protocol.ErrorData{Code: mcpErr.Code(), Message: mcpErr.Message()}
		if d := mcpErr.Data(); d != nil {
			// structured data that cannot be encoded is dropped, not reported
			if raw, mErr := json.Marshal(d); mErr == nil {
				data.Data = raw
			}
		}
		return data
	}

	var protoErr *protocol.ProtocolError
	if stderrors.As(err, &protoErr) {
		return protoErr.ErrorData()
	}

	var rpcErr protocol.ErrorData
	if stderrors.As(err, &rpcErr) {
		return rpcErr
	}

	converted := ConvertStandardError(err)
	return protocol.ErrorData{Code: converted.Code(), Message: converted.Message()}
}

// ToErrorResponse converts an error into an error reply addressed to id
func ToErrorResponse(err error, id interface{}) (*protocol.ErrorResponse, error) {
	return protocol.NewErrorResponse(id, ToErrorData(err))
}

// FromErrorData converts a received JSON-RPC error object into an MCPError
func FromErrorData(data protocol.ErrorData) MCPError {
	var category Category
	switch data.Code {
	case CodeParseError, CodeInvalidRequest, CodeMethodNotFound:
		category = CategoryProtocol
	case CodeInvalidParams:
		category = CategoryValidation
	case CodeResourceNotFound:
		category = CategoryNotFound
	default:
		category = CategoryInternal
	}

	err := NewError(data.Code, data.Message, category, SeverityError)
	if len(data.Data) > 0 {
		var decoded interface{}
		if jsonErr := json.Unmarshal(data.Data, &decoded); jsonErr == nil {
			err = err.WithData(decoded)
		}
	}
	return err
}

// ConvertStandardError converts common Go errors to appropriate MCP errors
func ConvertStandardError(err error) MCPError {
	if err == nil {
		return nil
	}

	if mcpErr, ok := AsMCPError(err); ok {
		return mcpErr
	}

	var syntaxErr *json.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		return WrapError(err, CodeParseError, "Invalid JSON", CategoryProtocol, SeverityError)
	}

	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		return WrapError(err, CodeInvalidParams, "Invalid parameter type", CategoryValidation, SeverityError)
	}

	return WrapError(err, CodeInternalError, err.Error(), CategoryInternal, SeverityError)
}

// CombineErrors combines multiple errors into a single MCPError
func CombineErrors(errs []error) MCPError {
	validErrors := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			validErrors = append(validErrors, err)
		}
	}

	switch len(validErrors) {
	case 0:
		return nil
	case 1:
		return ConvertStandardError(validErrors[0])
	}

	messages := make([]string, len(validErrors))
	errorData := make([]interface{}, len(validErrors))
	for i, err := range validErrors {
		messages[i] = err.Error()
		if mcpErr, ok := AsMCPError(err); ok {
			errorData[i] = mcpErr.ToJSON()
		} else {
			errorData[i] = map[string]interface{}{
				"message": err.Error(),
				"type":    fmt.Sprintf("%T", err),
			}
		}
	}

	return NewError(
		CodeInternalError,
		fmt.Sprintf("Multiple errors occurred: %v", messages),
		CategoryInternal,
		SeverityError,
	).WithData(map[string]interface{}{
		"errors": errorData,
		"count":  len(validErrors),
	})
}
