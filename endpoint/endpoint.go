// Package endpoint describes remote operations declaratively.
//
// An Endpoint is not a network call; it is the description the router turns
// into a single *http.Request. Call sites usually implement one type per
// family of endpoints:
//
//	type countries struct{ apiKey string }
//
//	func (c countries) BaseURL() *url.URL      { u, _ := config.Shared().BaseURL(); return u }
//	func (c countries) Path() string           { return "countries" }
//	func (c countries) Header() endpoint.Header { return nil }
//	func (c countries) Method() endpoint.Method { return endpoint.MethodGet }
//	func (c countries) Task() endpoint.Task {
//	    return endpoint.Params{Parameters: endpoint.ParameterSet{
//	        Query: endpoint.Parameters{"apiKey": c.apiKey},
//	    }}
//	}
package endpoint

import (
	"fmt"
	"net/url"
	"strings"
)

// Endpoint is the contract the router depends on.
type Endpoint interface {
	// BaseURL returns the target base URL, or nil when it cannot be determined.
	BaseURL() *url.URL
	// Path is appended to the base URL.
	Path() string
	// Header returns static headers, or nil.
	Header() Header
	Method() Method
	Task() Task
}

// Method is an HTTP method supported by endpoints.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPut    Method = "PUT"
	MethodPost   Method = "POST"
	MethodDelete Method = "DELETE"
	MethodPatch  Method = "PATCH"
	MethodCopy   Method = "COPY"
)

var methods = []Method{MethodGet, MethodPut, MethodPost, MethodDelete, MethodPatch, MethodCopy}

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	for _, known := range methods {
		if m == known {
			return true
		}
	}
	return false
}

// ParseMethod parses a method name, ignoring case.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unsupported method: %q", s)
	}
	return m, nil
}

// Parameters is a generic key/value parameter map.
type Parameters map[string]any

// Header maps header names to values. Names are unique, so order does not matter.
type Header map[string]string

// Descriptor is a ready-made Endpoint built from plain values.
type Descriptor struct {
	Base    *url.URL
	Route   string
	Verb    Method
	Headers Header
	Work    Task
}

func (d Descriptor) BaseURL() *url.URL { return d.Base }
func (d Descriptor) Path() string      { return d.Route }
func (d Descriptor) Header() Header    { return d.Headers }

// Method defaults to GET when Verb is empty.
func (d Descriptor) Method() Method {
	if d.Verb == "" {
		return MethodGet
	}
	return d.Verb
}

// Task defaults to Plain when Work is nil.
func (d Descriptor) Task() Task {
	if d.Work == nil {
		return Plain{}
	}
	return d.Work
}
