package graphql

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Result is a successfully transported response envelope
type Result struct {
	Operation  string
	StatusCode int
	Data       map[string]json.RawMessage
	Errors     []ErrorEntry
}

// Decode unmarshals the top-level data field into dest. A missing, null or
// undecodable field is an application error.
func (r *Result) Decode(field string, dest interface{}) error {
	raw, ok := r.Data[field]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return &OperationError{
			Kind:       KindApplication,
			Operation:  r.Operation,
			StatusCode: r.StatusCode,
			Messages:   messages(r.Errors),
			Err:        fmt.Errorf("%w: %s", ErrMissingData, field),
		}
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return &OperationError{
			Kind:       KindApplication,
			Operation:  r.Operation,
			StatusCode: r.StatusCode,
			Err:        fmt.Errorf("decode %s: %w", field, err),
		}
	}
	return nil
}
