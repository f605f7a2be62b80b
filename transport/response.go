package transport

import (
	"net/http"
	"time"
)

// TimingInfo contains detailed timing information for a round trip.
type TimingInfo struct {
	// StartTime is when the request started
	StartTime time.Time

	// DNSLookupTime is the time spent looking up the DNS address
	DNSLookupTime time.Duration

	// TCPConnectTime is the time spent establishing a TCP connection
	TCPConnectTime time.Duration

	// TLSHandshakeTime is the time spent performing the TLS handshake (for HTTPS)
	TLSHandshakeTime time.Duration

	// TimeToFirstByte is the time from the last completed connection phase to the first response byte
	TimeToFirstByte time.Duration

	// ContentTransferTime is the time spent reading the body
	ContentTransferTime time.Duration

	// TotalTime is the total time from start to the end of the body
	TotalTime time.Duration
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       []byte
	Timing     TimingInfo
}

// BodyString returns the response body as a string.
func (r *Response) BodyString() string {
	return string(r.Body)
}

// Header returns the value of the specified header.
func (r *Response) Header(key string) string {
	return r.Headers.Get(key)
}

// IsSuccess returns true if the response status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsRedirect returns true if the response status code is in the 3xx range.
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// IsClientError returns true if the response status code is in the 4xx range.
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError returns true if the response status code is in the 5xx range.
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}

func (r *Response) TotalTimeMillis() int64           { return r.Timing.TotalTime.Milliseconds() }
func (r *Response) DNSLookupTimeMillis() int64       { return r.Timing.DNSLookupTime.Milliseconds() }
func (r *Response) TCPConnectTimeMillis() int64      { return r.Timing.TCPConnectTime.Milliseconds() }
func (r *Response) TLSHandshakeTimeMillis() int64    { return r.Timing.TLSHandshakeTime.Milliseconds() }
func (r *Response) TimeToFirstByteMillis() int64     { return r.Timing.TimeToFirstByte.Milliseconds() }
func (r *Response) ContentTransferTimeMillis() int64 { return r.Timing.ContentTransferTime.Milliseconds() }
