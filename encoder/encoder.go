// Package encoder attaches endpoint parameters to an in-progress request.
//
// Each encoder mutates one aspect of the request: Form and JSON set the body,
// Query rewrites the URL query. Failures are *neterr.Error values.
package encoder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/brkyvrkn/network-kit/endpoint"
	"github.com/brkyvrkn/network-kit/neterr"
)

// Func is the shape shared by the map-based encoders.
type Func func(req *http.Request, params endpoint.Parameters) error

// prettyOptions keep the JSON body stable across runs.
var prettyOptions = &pretty.Options{Width: 80, Indent: "  ", SortKeys: true}

// Form sets a "key=value&key2=value2" body. Values use their default string
// form and are not percent-encoded. An empty map leaves the request untouched.
func Form(req *http.Request, params endpoint.Parameters) error {
	if len(params) == 0 {
		return nil
	}

	pairs := make([]string, 0, len(params))
	for _, key := range sortedKeys(params) {
		pairs = append(pairs, fmt.Sprintf("%s=%v", key, params[key]))
	}

	setBody(req, []byte(strings.Join(pairs, "&")))
	return nil
}

// Query replaces the query string of the request URL with params. Every
// value must be a string; otherwise the URL is left unchanged and a Custom
// error with IDInvalidQueryValue is returned.
func Query(req *http.Request, params endpoint.Parameters) error {
	if req.URL == nil {
		return neterr.MissingURLError()
	}

	values := make(url.Values, len(params))
	for key, value := range params {
		s, ok := value.(string)
		if !ok {
			return neterr.CustomError(neterr.IDInvalidQueryValue, "Query parameter values must be String type")
		}
		values.Set(key, s)
	}

	u := *req.URL
	u.RawQuery = values.Encode()
	u.ForceQuery = false
	req.URL = &u
	return nil
}

// JSON sets a pretty-printed JSON body with sorted keys.
func JSON(req *http.Request, params endpoint.Parameters) error {
	data, err := json.Marshal(params)
	if err != nil {
		return neterr.CodingError(fmt.Errorf("encoding json parameters: %w", err))
	}

	setBody(req, pretty.PrettyOptions(data, prettyOptions))
	return nil
}

// JSONObject sets the JSON encoding of v as the body. Types implementing
// json.Marshaler control their own representation.
func JSONObject(req *http.Request, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return neterr.CodingError(fmt.Errorf("encoding %T body: %w", v, err))
	}

	setBody(req, data)
	return nil
}

// setBody replaces the request body, keeping it replayable for redirects.
func setBody(req *http.Request, data []byte) {
	req.Body = io.NopCloser(bytes.NewReader(data))
	req.ContentLength = int64(len(data))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
}

func sortedKeys(params endpoint.Parameters) []string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
