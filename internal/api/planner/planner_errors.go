package planner

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a relay attempt failed.
type ErrorKind string

const (
	KindConfiguration   ErrorKind = "configuration"
	KindUpstreamHTTP    ErrorKind = "upstream_http"
	KindUpstreamTimeout ErrorKind = "timeout"
	KindUpstreamNetwork ErrorKind = "network"
	KindInvalidResponse ErrorKind = "invalid_response"
)

// RelayError is returned for every failure after request validation. Message is
// safe to show to any client; Detail carries raw upstream diagnostics and must
// only be exposed outside production.
type RelayError struct {
	Kind       ErrorKind
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *RelayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

// AsRelayError extracts a *RelayError from err.
func AsRelayError(err error) (*RelayError, bool) {
	var re *RelayError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsKind reports whether err is a RelayError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	re, ok := AsRelayError(err)
	return ok && re.Kind == kind
}
