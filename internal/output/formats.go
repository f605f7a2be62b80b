package output

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/brkyvrkn/network-kit/metrics"
	"github.com/brkyvrkn/network-kit/neterr"
	"github.com/brkyvrkn/network-kit/transport"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs one JSON document per element
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs one YAML document per element
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat accepts text, json or yaml.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// RequestData represents the structured data of a request
type RequestData struct {
	Method    string            `json:"method" yaml:"method"`
	URL       string            `json:"url" yaml:"url"`
	Headers   map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body      interface{}       `json:"body,omitempty" yaml:"body,omitempty"`
	Timestamp string            `json:"timestamp" yaml:"timestamp"`
}

// TimingData represents detailed timing information of a round trip
type TimingData struct {
	DNSLookup       int64 `json:"dnsLookupMs,omitempty" yaml:"dnsLookupMs,omitempty"`
	TCPConnection   int64 `json:"tcpConnectionMs,omitempty" yaml:"tcpConnectionMs,omitempty"`
	TLSHandshake    int64 `json:"tlsHandshakeMs,omitempty" yaml:"tlsHandshakeMs,omitempty"`
	TimeToFirstByte int64 `json:"timeToFirstByteMs,omitempty" yaml:"timeToFirstByteMs,omitempty"`
	ContentTransfer int64 `json:"contentTransferMs,omitempty" yaml:"contentTransferMs,omitempty"`
	Total           int64 `json:"totalMs" yaml:"totalMs"`
}

// ResponseData represents the structured data of a response
type ResponseData struct {
	StatusCode int               `json:"statusCode" yaml:"statusCode"`
	Status     string            `json:"status" yaml:"status"`
	Headers    map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body       interface{}       `json:"body,omitempty" yaml:"body,omitempty"`
	Timing     TimingData        `json:"timing" yaml:"timing"`
	Timestamp  string            `json:"timestamp" yaml:"timestamp"`
}

// ErrorData represents a router failure
type ErrorData struct {
	Kind        string `json:"kind" yaml:"kind"`
	ID          int    `json:"id,omitempty" yaml:"id,omitempty"`
	StatusCode  int    `json:"statusCode,omitempty" yaml:"statusCode,omitempty"`
	Description string `json:"description" yaml:"description"`
	Cause       string `json:"cause,omitempty" yaml:"cause,omitempty"`
}

// SummaryData represents latency statistics of repeated requests
type SummaryData struct {
	Total       int64            `json:"total" yaml:"total"`
	Failed      int64            `json:"failed" yaml:"failed"`
	MinMs       float64          `json:"minMs" yaml:"minMs"`
	MeanMs      float64          `json:"meanMs" yaml:"meanMs"`
	MaxMs       float64          `json:"maxMs" yaml:"maxMs"`
	P50Ms       float64          `json:"p50Ms" yaml:"p50Ms"`
	P90Ms       float64          `json:"p90Ms" yaml:"p90Ms"`
	P95Ms       float64          `json:"p95Ms" yaml:"p95Ms"`
	P99Ms       float64          `json:"p99Ms" yaml:"p99Ms"`
	StatusCodes map[int]int64    `json:"statusCodes,omitempty" yaml:"statusCodes,omitempty"`
	Routes      map[string]int64 `json:"routes,omitempty" yaml:"routes,omitempty"`
}

func requestData(req *http.Request) RequestData {
	return RequestData{
		Method:    req.Method,
		URL:       req.URL.String(),
		Headers:   flatten(req.Header),
		Body:      decodeBody(requestBody(req)),
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func responseData(resp *transport.Response) ResponseData {
	return ResponseData{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    flatten(resp.Headers),
		Body:       decodeBody(resp.BodyString()),
		Timing: TimingData{
			DNSLookup:       resp.DNSLookupTimeMillis(),
			TCPConnection:   resp.TCPConnectTimeMillis(),
			TLSHandshake:    resp.TLSHandshakeTimeMillis(),
			TimeToFirstByte: resp.TimeToFirstByteMillis(),
			ContentTransfer: resp.ContentTransferTimeMillis(),
			Total:           resp.TotalTimeMillis(),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func errorData(err *neterr.Error) ErrorData {
	data := ErrorData{
		Kind:        err.Kind.String(),
		ID:          err.ID,
		StatusCode:  err.StatusCode,
		Description: err.Description(),
	}
	if err.Err != nil {
		data.Cause = err.Err.Error()
	}
	return data
}

func summaryData(snap metrics.Snapshot) SummaryData {
	ms := func(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

	data := SummaryData{
		Total:       snap.Total,
		Failed:      snap.Failed,
		MinMs:       ms(snap.Latency.Min),
		MeanMs:      ms(snap.Latency.Mean),
		MaxMs:       ms(snap.Latency.Max),
		P50Ms:       ms(snap.Latency.P50),
		P90Ms:       ms(snap.Latency.P90),
		P95Ms:       ms(snap.Latency.P95),
		P99Ms:       ms(snap.Latency.P99),
		StatusCodes: snap.StatusCodes,
		Routes:      make(map[string]int64, len(snap.Routes)),
	}
	for name, stats := range snap.Routes {
		data.Routes[name] = stats.Count
	}
	return data
}

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

func (f *JSONFormatter) marshal(v interface{}) string {
	var output []byte
	var err error
	if f.Pretty {
		output, err = json.MarshalIndent(v, "", "  ")
	} else {
		output, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Sprintf(`{"error":"Failed to marshal output: %s"}`, err) + "\n"
	}
	return string(output) + "\n"
}

// FormatRequest formats a request as JSON
func (f *JSONFormatter) FormatRequest(req *http.Request) string {
	return f.marshal(map[string]interface{}{"request": requestData(req)})
}

// FormatResponse formats a response as JSON
func (f *JSONFormatter) FormatResponse(resp *transport.Response) string {
	return f.marshal(map[string]interface{}{"response": responseData(resp)})
}

// FormatError formats a failure as JSON
func (f *JSONFormatter) FormatError(err *neterr.Error) string {
	return f.marshal(map[string]interface{}{"error": errorData(err)})
}

// FormatExtracted formats extracted values as JSON
func (f *JSONFormatter) FormatExtracted(values map[string]string) string {
	if len(values) == 0 {
		return ""
	}
	return f.marshal(map[string]interface{}{"extracted": values})
}

// FormatSummary formats latency statistics as JSON
func (f *JSONFormatter) FormatSummary(snap metrics.Snapshot) string {
	return f.marshal(map[string]interface{}{"summary": summaryData(snap)})
}

// YAMLFormatter formats output as YAML documents
type YAMLFormatter struct{}

func (f *YAMLFormatter) marshal(v interface{}) string {
	output, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: Failed to marshal output: %s\n", err)
	}
	return "---\n" + string(output)
}

// FormatRequest formats a request as YAML
func (f *YAMLFormatter) FormatRequest(req *http.Request) string {
	return f.marshal(map[string]interface{}{"request": requestData(req)})
}

// FormatResponse formats a response as YAML
func (f *YAMLFormatter) FormatResponse(resp *transport.Response) string {
	return f.marshal(map[string]interface{}{"response": responseData(resp)})
}

// FormatError formats a failure as YAML
func (f *YAMLFormatter) FormatError(err *neterr.Error) string {
	return f.marshal(map[string]interface{}{"error": errorData(err)})
}

// FormatExtracted formats extracted values as YAML
func (f *YAMLFormatter) FormatExtracted(values map[string]string) string {
	if len(values) == 0 {
		return ""
	}
	return f.marshal(map[string]interface{}{"extracted": values})
}

// FormatSummary formats latency statistics as YAML
func (f *YAMLFormatter) FormatSummary(snap metrics.Snapshot) string {
	return f.marshal(map[string]interface{}{"summary": summaryData(snap)})
}

// GetFormatter returns the appropriate formatter for the given format
func GetFormatter(format OutputFormat, verbose bool, noColor bool) FormatProvider {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: verbose}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return NewFormatter(verbose, noColor)
	}
}

func flatten(headers http.Header) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	flat := make(map[string]string, len(headers))
	for key, values := range headers {
		if len(values) > 0 {
			flat[key] = values[0]
		}
	}
	return flat
}

// decodeBody returns parsed JSON, the raw text, or nil when empty.
func decodeBody(s string) interface{} {
	if s == "" {
		return nil
	}
	if !validJSON([]byte(s)) {
		return s
	}
	var body interface{}
	if err := json.Unmarshal([]byte(s), &body); err != nil {
		return s
	}
	return body
}

func validJSON(data []byte) bool {
	return len(data) > 0 && gjson.ValidBytes(data)
}
