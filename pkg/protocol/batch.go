package protocol

import (
	"bytes"
	"encoding/json"
)

// SplitBatch reports whether data is a JSON-RPC batch and, if so, returns its
// members undecoded. An empty batch is an invalid request.
func SplitBatch(data []byte) ([]json.RawMessage, bool, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false, nil
	}

	var members []json.RawMessage
	if err := json.Unmarshal(trimmed, &members); err != nil {
		return nil, true, NewParseError(err.Error())
	}
	if len(members) == 0 {
		return nil, true, NewProtocolError("batch must not be empty")
	}
	return members, true, nil
}
