package graphql

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrMalformedBody    = errors.New("malformed response body")
	ErrMissingData      = errors.New("response carries no usable data")
	ErrRemote           = errors.New("remote reported errors")
)

// ErrorKind classifies an OperationError
type ErrorKind string

const (
	// KindTransport covers network failures, non-200/201 statuses and
	// bodies that are not a JSON envelope.
	KindTransport ErrorKind = "transport"
	// KindApplication covers well-formed responses that carry errors or
	// lack the expected data.
	KindApplication ErrorKind = "application"
)

// OperationError is the single failure type surfaced by Client
type OperationError struct {
	Kind       ErrorKind
	Operation  string
	StatusCode int
	Messages   []string
	Err        error
}

func (e *OperationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s failed", e.Operation, e.Kind)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if len(e.Messages) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(e.Messages, "; "))
	}
	return b.String()
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is a transport-level OperationError
func IsTransport(err error) bool {
	return kindOf(err) == KindTransport
}

// IsApplication reports whether err is an application-level OperationError
func IsApplication(err error) bool {
	return kindOf(err) == KindApplication
}

func kindOf(err error) ErrorKind {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	return ""
}
