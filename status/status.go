// Package status classifies HTTP status codes into the outcomes the router acts on.
//
// Classification is a pure table lookup. Only an explicit allow-list of
// informational and success codes is treated as success; every other code,
// including un-enumerated 2xx and 3xx codes, is a failure. Extend the table
// deliberately when a new status must reach a success continuation.
package status

import "fmt"

// Response enumerates the status codes the client knows a message for.
type Response int

const (
	Continue Response = iota
	SwitchingProtocols
	Processing
	EarlyHints
	OK
	Created
	Accepted
	NoContent
	NotModified
	BadRequest
	Unauthorized
	Forbidden
	NotFound
	Conflict
	InternalServerError
)

type responseInfo struct {
	code    int
	name    string
	message string
}

var responses = map[Response]responseInfo{
	Continue:            {100, "Continue", "Should continue the request, or ignore the response if the request is already finished."},
	SwitchingProtocols:  {101, "Switching Protocols", "The server understands and is willing to comply with the client's request."},
	Processing:          {102, "Processing", "The server has received and is processing the request, but no response is available yet."},
	EarlyHints:          {103, "Early Hints", "Let the user agent start preloading resources while the server prepares a response."},
	OK:                  {200, "OK", "The request has succeeded"},
	Created:             {201, "Created", "The request has been fulfilled and resulted in a new resource being created"},
	Accepted:            {202, "Accepted", "The request has been accepted for processing, but the processing has not been completed."},
	NoContent:           {204, "No Content", "The server has fulfilled the request but does not need to return an entity-body, and might want to return updated metainformation"},
	NotModified:         {304, "Not Modified", "The resource has not been modified since last requested"},
	BadRequest:          {400, "Bad Request", "The request could not be understood by the server due to malformed syntax"},
	Unauthorized:        {401, "Unauthorized", "The request requires user authentication. The response MUST include a www-authenticate header field"},
	Forbidden:           {403, "Forbidden", "The server understood the request, but is refusing to fulfill it"},
	NotFound:            {404, "Not Found", "The server has not found anything matching the Request-URI. No indication is given of whether the condition is temporary or permanent"},
	Conflict:            {409, "Conflict", "The request could not be completed due to a conflict with the current state of the resource"},
	InternalServerError: {500, "Internal Server Error", "The server encountered an unexpected condition which prevented it from fulfilling the request."},
}

// Code returns the numeric HTTP status code.
func (r Response) Code() int {
	return responses[r].code
}

// Message returns the human-readable description of the response.
func (r Response) Message() string {
	return responses[r].message
}

// String returns the status text, e.g. "Not Found".
func (r Response) String() string {
	info, ok := responses[r]
	if !ok {
		return fmt.Sprintf("Response(%d)", int(r))
	}
	return info.name
}

// Lookup returns the Response for a numeric code, if it is known.
func Lookup(code int) (Response, bool) {
	for r, info := range responses {
		if info.code == code {
			return r, true
		}
	}
	return 0, false
}
