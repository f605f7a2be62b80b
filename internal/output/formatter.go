// Package output renders requests, responses and failures for the terminal.
package output

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/brkyvrkn/network-kit/metrics"
	"github.com/brkyvrkn/network-kit/neterr"
	"github.com/brkyvrkn/network-kit/transport"
)

// FormatProvider is implemented by every output format.
type FormatProvider interface {
	FormatRequest(req *http.Request) string
	FormatResponse(resp *transport.Response) string
	FormatError(err *neterr.Error) string
	FormatExtracted(values map[string]string) string
	FormatSummary(snap metrics.Snapshot) string
}

// Formatter is responsible for formatting requests and responses in text format
type Formatter struct {
	Verbose bool
	NoColor bool
	scheme  *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(verbose, noColor bool) *Formatter {
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
		scheme:  scheme,
	}
}

// FormatRequest formats a built request for display
func (f *Formatter) FormatRequest(req *http.Request) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n",
		f.scheme.Method.Sprint(req.Method),
		f.scheme.URL.Sprint(req.URL.String())))

	if f.Verbose || len(req.Header) > 0 {
		writeHeaders(&buf, req.Header, f.scheme)
	}

	if body := requestBody(req); body != "" {
		buf.WriteString("  Body:\n")
		buf.WriteString(f.formatJSON(body))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatResponse formats a response for display
func (f *Formatter) FormatResponse(resp *transport.Response) string {
	var buf strings.Builder

	statusColor := f.scheme.StatusError
	if resp.IsSuccess() {
		statusColor = f.scheme.StatusOK
	} else if resp.IsRedirect() {
		statusColor = f.scheme.StatusWarn
	}

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s (%dms)\n",
		statusColor.Sprint(resp.Status),
		resp.TotalTimeMillis()))

	if f.Verbose {
		buf.WriteString("  Timing:\n")
		buf.WriteString(fmt.Sprintf("    DNS Lookup:         %dms\n", resp.DNSLookupTimeMillis()))
		buf.WriteString(fmt.Sprintf("    TCP Connection:     %dms\n", resp.TCPConnectTimeMillis()))
		buf.WriteString(fmt.Sprintf("    TLS Handshake:      %dms\n", resp.TLSHandshakeTimeMillis()))
		buf.WriteString(fmt.Sprintf("    Time to First Byte: %dms\n", resp.TimeToFirstByteMillis()))
		buf.WriteString(fmt.Sprintf("    Content Transfer:   %dms\n", resp.ContentTransferTimeMillis()))
		buf.WriteString(fmt.Sprintf("    Total:              %dms\n", resp.TotalTimeMillis()))

		writeHeaders(&buf, resp.Headers, f.scheme)
	}

	if body := resp.BodyString(); body != "" {
		buf.WriteString("  Body:\n")
		buf.WriteString(f.formatJSON(body))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatError formats a router failure
func (f *Formatter) FormatError(err *neterr.Error) string {
	line := fmt.Sprintf("%s ERROR (%s): %s", ErrorIcon(f.NoColor), err.Kind, err.Description())
	if f.Verbose && err.Err != nil {
		line += "\n  Cause: " + err.Err.Error()
	}
	return f.scheme.Error.Sprint(line) + "\n"
}

// FormatExtracted formats values extracted from a response body
func (f *Formatter) FormatExtracted(values map[string]string) string {
	if len(values) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("%s Extracted:\n", InfoIcon(f.NoColor)))
	for _, key := range sortedKeys(values) {
		buf.WriteString(fmt.Sprintf("    %s = %s\n", f.scheme.Highlight.Sprint(key), values[key]))
	}
	return buf.String()
}

// FormatSummary formats latency statistics of repeated requests
func (f *Formatter) FormatSummary(snap metrics.Snapshot) string {
	var buf strings.Builder

	icon := SuccessIcon(f.NoColor)
	if snap.Failed > 0 {
		icon = ErrorIcon(f.NoColor)
	}
	buf.WriteString(fmt.Sprintf("%s SUMMARY: %d requests, %d failed (%.1f%%)\n",
		icon, snap.Total, snap.Failed, snap.ErrorRate()*100))
	buf.WriteString(fmt.Sprintf("  Latency: min %v, mean %v, max %v\n",
		snap.Latency.Min, snap.Latency.Mean, snap.Latency.Max))
	buf.WriteString(fmt.Sprintf("  Percentiles: p50 %v, p90 %v, p95 %v, p99 %v\n",
		snap.Latency.P50, snap.Latency.P90, snap.Latency.P95, snap.Latency.P99))

	if len(snap.StatusCodes) > 0 {
		codes := make([]int, 0, len(snap.StatusCodes))
		for code := range snap.StatusCodes {
			codes = append(codes, code)
		}
		sort.Ints(codes)

		buf.WriteString("  Status codes:\n")
		for _, code := range codes {
			buf.WriteString(fmt.Sprintf("    %d: %d\n", code, snap.StatusCodes[code]))
		}
	}

	return buf.String()
}

// formatJSON pretty-prints JSON, colored when colors are enabled. Other
// content is returned unchanged.
func (f *Formatter) formatJSON(s string) string {
	data := []byte(s)
	if !validJSON(data) {
		return s
	}

	out := pretty.PrettyOptions(data, &pretty.Options{Width: 80, Prefix: "  ", Indent: "  "})
	if !f.NoColor {
		out = pretty.Color(out, nil)
	}
	return strings.TrimRight(string(out), "\n")
}

func writeHeaders(buf *strings.Builder, headers http.Header, scheme *ColorScheme) {
	buf.WriteString("  Headers:\n")

	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		for _, value := range headers[key] {
			buf.WriteString(fmt.Sprintf("    %s: %s\n", scheme.HeaderKey.Sprint(key), value))
		}
	}
}

// requestBody reads the body without consuming it.
func requestBody(req *http.Request) string {
	if req.GetBody == nil {
		return ""
	}
	body, err := req.GetBody()
	if err != nil {
		return ""
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return ""
	}
	return string(data)
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
