// Package neterr defines the closed set of failures surfaced by the router.
//
// Every failure path of the client ends in an *Error. Match on the failure
// kind with errors.Is and the exported sentinels:
//
//	if errors.Is(err, neterr.ErrConnectionFailed) {
//	    // offline, timed out or cancelled
//	}
//
// Use Description for text meant for end users, and Error for logs.
package neterr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brkyvrkn/network-kit/status"
)

// Kind identifies a failure category.
type Kind int

const (
	// Environment means the environment or its base URL could not be resolved.
	Environment Kind = iota + 1
	// Coding means a request body could not be encoded or a response body decoded.
	Coding
	// MissingURL means the endpoint has no base URL, or the request no URL.
	MissingURL
	// MissingParameters is reserved for required-parameter checks.
	MissingParameters
	// ConnectionFailed means the transport failed without a usable response.
	ConnectionFailed
	// NoResponse means a response arrived but could not be used.
	NoResponse
	// ResponseKind wraps a classified status outcome.
	ResponseKind
	// Custom carries an id and a free-form message.
	Custom
)

var kindNames = map[Kind]string{
	Environment:       "environment",
	Coding:            "coding",
	MissingURL:        "missing url",
	MissingParameters: "missing parameters",
	ConnectionFailed:  "connection failed",
	NoResponse:        "no response",
	ResponseKind:      "response",
	Custom:            "custom",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Identifiers used with Custom errors.
const (
	// IDStatus marks a redirect or failure status classification.
	IDStatus = 10
	// IDInvalidRequest marks a request that could not be assembled.
	IDInvalidRequest = 400
	// IDInvalidQueryValue marks a non-string query parameter value.
	IDInvalidQueryValue = 403
)

// Error is the only error type delivered to failure continuations.
type Error struct {
	Kind Kind

	// ID and Message are set for Custom errors.
	ID      int
	Message string

	// Response is set for ResponseKind errors.
	Response status.Response

	// StatusCode is the HTTP status that produced the error, or 0.
	StatusCode int

	// Err is the underlying cause, if any.
	Err error
}

// Description returns the user-facing text for the error.
func (e *Error) Description() string {
	switch e.Kind {
	case Environment:
		return "Could not access to the given environment."
	case MissingParameters:
		if e.Message != "" {
			return "Some of the required parameters are not given: " + e.Message
		}
		return "Some of the required parameters are not given."
	case Coding:
		return "Unsuccessful parsing between the given model and type."
	case MissingURL:
		return "URL is not defined."
	case ResponseKind:
		return e.Response.Message()
	case ConnectionFailed:
		return "Check your network connection."
	case Custom:
		return e.Message
	case NoResponse:
		return "Response could not retrieved."
	default:
		return "Unknown network error."
	}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Description(), e.Err)
	}
	return e.Description()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors of the same kind. A Custom target with a non-zero ID also
// requires the IDs to match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	if t.Kind == Custom && t.ID != 0 {
		return t.ID == e.ID
	}
	return true
}

// Sentinels for errors.Is.
var (
	ErrEnvironment       = &Error{Kind: Environment}
	ErrCoding            = &Error{Kind: Coding}
	ErrMissingURL        = &Error{Kind: MissingURL}
	ErrMissingParameters = &Error{Kind: MissingParameters}
	ErrConnectionFailed  = &Error{Kind: ConnectionFailed}
	ErrNoResponse        = &Error{Kind: NoResponse}
	ErrResponse          = &Error{Kind: ResponseKind}
	ErrCustom            = &Error{Kind: Custom}
	ErrStatus            = &Error{Kind: Custom, ID: IDStatus}
)

// EnvironmentError wraps a failure to resolve the environment.
func EnvironmentError(err error) *Error {
	return &Error{Kind: Environment, Err: err}
}

// CodingError wraps an encode or decode failure.
func CodingError(err error) *Error {
	return &Error{Kind: Coding, Err: err}
}

// MissingURLError reports an absent URL.
func MissingURLError() *Error {
	return &Error{Kind: MissingURL}
}

// MissingParametersError reports required parameters that were not supplied.
func MissingParametersError(names ...string) *Error {
	return &Error{Kind: MissingParameters, Message: strings.Join(names, ", ")}
}

// ConnectionFailedError wraps a transport-level failure.
func ConnectionFailedError(err error) *Error {
	return &Error{Kind: ConnectionFailed, Err: err}
}

// NoResponseError wraps a failure to use a received response.
func NoResponseError(err error) *Error {
	return &Error{Kind: NoResponse, Err: err}
}

// ResponseError wraps a known status response.
func ResponseError(r status.Response) *Error {
	return &Error{Kind: ResponseKind, Response: r, StatusCode: r.Code()}
}

// CustomError builds a catch-all error.
func CustomError(id int, message string) *Error {
	return &Error{Kind: Custom, ID: id, Message: message}
}

// StatusError builds the error delivered for a redirect or failure classification.
func StatusError(code int, outcome status.Outcome) *Error {
	return &Error{Kind: Custom, ID: IDStatus, Message: outcome.Message, StatusCode: code}
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// From converts any error into an *Error. Errors that are not already typed
// are treated as coding failures.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	return CodingError(err)
}
