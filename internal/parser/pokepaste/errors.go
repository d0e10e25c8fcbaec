package pokepaste

import (
	"errors"
	"fmt"
)

// ErrNoEntries is returned when a document contains no decodable pokemon
var ErrNoEntries = errors.New("no valid pokemon found in paste")

// TransportError reports a non-success response from the paste host
type TransportError struct {
	URL        string
	StatusCode int
	Status     string // status text without the code, e.g. "Not Found"
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// UnexpectedError wraps any lower-level failure with the operation that hit it
type UnexpectedError struct {
	Op  string // "parse text", "parse url"
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

// panicError turns a recovered value into an error
func panicError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("%v", v)
}
