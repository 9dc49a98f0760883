package errors

import "fmt"

// ParameterErrorData contains structured data for parameter-related errors
type ParameterErrorData struct {
	Parameter string      `json:"parameter"`
	Value     interface{} `json:"value,omitempty"`
	Reason    string      `json:"reason,omitempty"`
}

// InvalidParameters is raised by builders and decoders when a caller-supplied
// value violates a content rule. The message is kept verbatim on the wire.
func InvalidParameters(message string) MCPError {
	return NewError(CodeInvalidParams, message, CategoryValidation, SeverityError)
}

// InvalidParametersf creates an invalid parameters error with formatting
func InvalidParametersf(format string, args ...interface{}) MCPError {
	return NewErrorf(CodeInvalidParams, CategoryValidation, SeverityError, format, args...)
}

// Other reports a failure that fits no other category
func Other(message string) MCPError {
	return NewError(CodeInternalError, message, CategoryInternal, SeverityError)
}

// InvalidURI creates an error for a string that is not an absolute URI
func InvalidURI(raw string, cause error) MCPError {
	return WrapError(
		cause,
		CodeInvalidParams,
		fmt.Sprintf("Invalid URI %q", raw),
		CategoryValidation,
		SeverityError,
	).WithData(&ParameterErrorData{
		Parameter: "uri",
		Value:     raw,
		Reason:    causeText(cause),
	})
}

// InvalidFilePath creates an error for a path that cannot become a file URI
func InvalidFilePath(path string, reason string) MCPError {
	return NewError(
		CodeInvalidParams,
		fmt.Sprintf("Invalid file path %q: %s", path, reason),
		CategoryValidation,
		SeverityError,
	).WithData(&ParameterErrorData{
		Parameter: "path",
		Value:     path,
		Reason:    reason,
	})
}

// ResourceNotFound creates an error for a resource URI nothing answers for
func ResourceNotFound(uri string) MCPError {
	return NewError(
		CodeResourceNotFound,
		fmt.Sprintf("Resource not found: %s", uri),
		CategoryNotFound,
		SeverityError,
	).WithData(map[string]interface{}{"uri": uri})
}

// IsInvalidParameters reports whether err is a content validation failure
func IsInvalidParameters(err error) bool {
	return IsCategory(err, CategoryValidation) && IsCode(err, CodeInvalidParams)
}

func causeText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
