package output

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/brkyvrkn/network-kit/metrics"
	"github.com/brkyvrkn/network-kit/neterr"
	"github.com/brkyvrkn/network-kit/transport"
)

func newRequest(t *testing.T, method, rawURL, body string) *http.Request {
	t.Helper()

	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("url.Parse: %v", err)
	}
	req := &http.Request{Method: method, URL: u, Header: http.Header{}}
	if body != "" {
		req.Body = io.NopCloser(strings.NewReader(body))
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		}
	}
	return req
}

func newResponse(code int, status, body string) *transport.Response {
	return &transport.Response{
		StatusCode: code,
		Status:     status,
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(body),
		Timing: transport.TimingInfo{
			DNSLookupTime:       2 * time.Millisecond,
			TCPConnectTime:      3 * time.Millisecond,
			TimeToFirstByte:     10 * time.Millisecond,
			ContentTransferTime: 5 * time.Millisecond,
			TotalTime:           20 * time.Millisecond,
		},
	}
}

func TestFormatter_FormatRequest(t *testing.T) {
	formatter := NewFormatter(false, true)

	req := newRequest(t, "POST", "https://api.example.com/users?page=1", `{"name":"Ada"}`)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	result := formatter.FormatRequest(req)

	for _, want := range []string{
		"REQUEST: POST https://api.example.com/users?page=1",
		"Headers:",
		"Accept: application/json",
		"Content-Type: application/json",
		"Body:",
		`"name": "Ada"`,
	} {
		if !strings.Contains(result, want) {
			t.Errorf("FormatRequest() missing %q in:\n%s", want, result)
		}
	}

	if strings.Index(result, "Accept") > strings.Index(result, "Content-Type") {
		t.Errorf("headers should be sorted:\n%s", result)
	}

	// the body stays readable for the transport
	data, _ := io.ReadAll(req.Body)
	if string(data) != `{"name":"Ada"}` {
		t.Errorf("request body consumed, got %q", data)
	}
}

func TestFormatter_FormatRequest_NoBody(t *testing.T) {
	formatter := NewFormatter(false, true)
	result := formatter.FormatRequest(newRequest(t, "GET", "https://example.com/", ""))

	if strings.Contains(result, "Body:") {
		t.Errorf("unexpected body section:\n%s", result)
	}
	if strings.Contains(result, "Headers:") {
		t.Errorf("unexpected headers section without verbose:\n%s", result)
	}
}

func TestFormatter_FormatResponse(t *testing.T) {
	resp := newResponse(200, "200 OK", `{"id":1,"tags":["a","b"]}`)

	t.Run("Normal", func(t *testing.T) {
		result := NewFormatter(false, true).FormatResponse(resp)

		if !strings.Contains(result, "RESPONSE: 200 OK (20ms)") {
			t.Errorf("missing status line:\n%s", result)
		}
		if !strings.Contains(result, `"id": 1`) {
			t.Errorf("body should be pretty printed:\n%s", result)
		}
		if strings.Contains(result, "Timing:") {
			t.Errorf("timing should only be shown when verbose:\n%s", result)
		}
	})

	t.Run("Verbose", func(t *testing.T) {
		result := NewFormatter(true, true).FormatResponse(resp)

		for _, want := range []string{
			"Timing:",
			"DNS Lookup:         2ms",
			"TCP Connection:     3ms",
			"Time to First Byte: 10ms",
			"Content Transfer:   5ms",
			"Total:              20ms",
			"Content-Type: application/json",
		} {
			if !strings.Contains(result, want) {
				t.Errorf("FormatResponse() missing %q in:\n%s", want, result)
			}
		}
	})

	t.Run("PlainBody", func(t *testing.T) {
		result := NewFormatter(false, true).FormatResponse(newResponse(500, "500 Internal Server Error", "boom"))
		if !strings.Contains(result, "boom") {
			t.Errorf("plain body should be shown as is:\n%s", result)
		}
	})
}

func TestFormatter_FormatError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	nerr := neterr.ConnectionFailedError(cause)

	result := NewFormatter(false, true).FormatError(nerr)
	if !strings.Contains(result, "ERROR (connection failed): Check your network connection.") {
		t.Errorf("FormatError() = %q", result)
	}
	if strings.Contains(result, "Cause:") {
		t.Errorf("cause should only be shown when verbose: %q", result)
	}

	verbose := NewFormatter(true, true).FormatError(nerr)
	if !strings.Contains(verbose, "Cause: dial tcp: connection refused") {
		t.Errorf("FormatError() verbose = %q", verbose)
	}
}

func TestFormatter_FormatExtracted(t *testing.T) {
	formatter := NewFormatter(false, true)

	if got := formatter.FormatExtracted(nil); got != "" {
		t.Errorf("FormatExtracted(nil) = %q, want empty", got)
	}

	result := formatter.FormatExtracted(map[string]string{"token": "abc", "id": "7"})
	if !strings.Contains(result, "id = 7") || !strings.Contains(result, "token = abc") {
		t.Errorf("FormatExtracted() = %q", result)
	}
	if strings.Index(result, "id = 7") > strings.Index(result, "token = abc") {
		t.Errorf("values should be sorted by name: %q", result)
	}
}

func TestFormatter_FormatSummary(t *testing.T) {
	snap := metrics.Snapshot{
		Latency: metrics.LatencyStats{
			Count: 4,
			Min:   time.Millisecond,
			Max:   9 * time.Millisecond,
			Mean:  4 * time.Millisecond,
			P50:   3 * time.Millisecond,
			P90:   8 * time.Millisecond,
			P95:   9 * time.Millisecond,
			P99:   9 * time.Millisecond,
		},
		Total:       4,
		Failed:      1,
		StatusCodes: map[int]int64{200: 3, 404: 1},
	}

	result := NewFormatter(false, true).FormatSummary(snap)

	for _, want := range []string{
		"✗ SUMMARY: 4 requests, 1 failed (25.0%)",
		"min 1ms, mean 4ms, max 9ms",
		"p50 3ms, p90 8ms, p95 9ms, p99 9ms",
		"200: 3",
		"404: 1",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("FormatSummary() missing %q in:\n%s", want, result)
		}
	}
	if strings.Index(result, "200: 3") > strings.Index(result, "404: 1") {
		t.Errorf("status codes should be sorted:\n%s", result)
	}
}

func TestFormatter_Colors(t *testing.T) {
	plain := NewFormatter(false, true).formatJSON(`{"a":1}`)
	if bytes.Contains([]byte(plain), []byte("\x1b[")) {
		t.Errorf("no-color output contains escape codes: %q", plain)
	}

	colored := NewFormatter(false, false).formatJSON(`{"a":1}`)
	if !bytes.Contains([]byte(colored), []byte("\x1b[")) {
		t.Errorf("colored JSON should contain escape codes: %q", colored)
	}
}
