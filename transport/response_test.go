package transport

import (
	"net/http"
	"testing"
	"time"
)

func TestResponse_StatusHelpers(t *testing.T) {
	tests := []struct {
		name          string
		statusCode    int
		isSuccess     bool
		isRedirect    bool
		isClientError bool
		isServerError bool
	}{
		{"200 OK", 200, true, false, false, false},
		{"201 Created", 201, true, false, false, false},
		{"301 Moved Permanently", 301, false, true, false, false},
		{"304 Not Modified", 304, false, true, false, false},
		{"400 Bad Request", 400, false, false, true, false},
		{"404 Not Found", 404, false, false, true, false},
		{"500 Internal Server Error", 500, false, false, false, true},
		{"503 Service Unavailable", 503, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &Response{StatusCode: tt.statusCode}

			if resp.IsSuccess() != tt.isSuccess {
				t.Errorf("IsSuccess() = %v, want %v", resp.IsSuccess(), tt.isSuccess)
			}
			if resp.IsRedirect() != tt.isRedirect {
				t.Errorf("IsRedirect() = %v, want %v", resp.IsRedirect(), tt.isRedirect)
			}
			if resp.IsClientError() != tt.isClientError {
				t.Errorf("IsClientError() = %v, want %v", resp.IsClientError(), tt.isClientError)
			}
			if resp.IsServerError() != tt.isServerError {
				t.Errorf("IsServerError() = %v, want %v", resp.IsServerError(), tt.isServerError)
			}
		})
	}
}

func TestResponse_Timing(t *testing.T) {
	resp := &Response{
		StatusCode: 200,
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
		Timing: TimingInfo{
			DNSLookupTime:       10 * time.Millisecond,
			TCPConnectTime:      20 * time.Millisecond,
			TLSHandshakeTime:    30 * time.Millisecond,
			TimeToFirstByte:     40 * time.Millisecond,
			ContentTransferTime: 50 * time.Millisecond,
			TotalTime:           150 * time.Millisecond,
		},
	}

	if resp.DNSLookupTimeMillis() != 10 {
		t.Errorf("Expected DNS lookup time to be 10ms, got %dms", resp.DNSLookupTimeMillis())
	}
	if resp.TCPConnectTimeMillis() != 20 {
		t.Errorf("Expected TCP connect time to be 20ms, got %dms", resp.TCPConnectTimeMillis())
	}
	if resp.TLSHandshakeTimeMillis() != 30 {
		t.Errorf("Expected TLS handshake time to be 30ms, got %dms", resp.TLSHandshakeTimeMillis())
	}
	if resp.TimeToFirstByteMillis() != 40 {
		t.Errorf("Expected time to first byte to be 40ms, got %dms", resp.TimeToFirstByteMillis())
	}
	if resp.ContentTransferTimeMillis() != 50 {
		t.Errorf("Expected content transfer time to be 50ms, got %dms", resp.ContentTransferTimeMillis())
	}
	if resp.TotalTimeMillis() != 150 {
		t.Errorf("Expected total time to be 150ms, got %dms", resp.TotalTimeMillis())
	}
	if resp.Header("content-type") != "application/json" {
		t.Errorf("Expected case-insensitive header lookup, got %q", resp.Header("content-type"))
	}
}
