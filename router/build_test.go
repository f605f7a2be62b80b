package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brkyvrkn/network-kit/endpoint"
	"github.com/brkyvrkn/network-kit/header"
	"github.com/brkyvrkn/network-kit/neterr"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func readBody(t *testing.T, req *http.Request) string {
	t.Helper()
	if req.Body == nil {
		return ""
	}
	data, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	return string(data)
}

type unknownTask struct {
	endpoint.Task
}

func TestBuild_URL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		path     string
		expected string
	}{
		{"Plain join", "https://api.example.com", "countries", "https://api.example.com/countries"},
		{"Trailing and leading slash", "https://api.example.com/", "/countries", "https://api.example.com/countries"},
		{"Base with path", "https://api.example.com/v2", "all", "https://api.example.com/v2/all"},
		{"Empty path keeps base", "https://api.example.com/v2", "", "https://api.example.com/v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Build(endpoint.Descriptor{Base: mustParse(t, tt.base), Route: tt.path})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, req.URL.String())
			assert.Equal(t, http.MethodGet, req.Method)
		})
	}
}

func TestBuild_MissingURL(t *testing.T) {
	_, err := Build(endpoint.Descriptor{Route: "countries"})
	require.Error(t, err)
	assert.ErrorIs(t, err, neterr.ErrMissingURL)
}

func TestBuild_InvalidMethod(t *testing.T) {
	_, err := Build(endpoint.Descriptor{
		Base: mustParse(t, "https://api.example.com"),
		Verb: endpoint.Method("TRACE"),
	})

	e, ok := neterr.As(err)
	require.True(t, ok)
	assert.Equal(t, neterr.Custom, e.Kind)
	assert.Equal(t, neterr.IDInvalidRequest, e.ID)
}

func TestBuild_UnknownTask(t *testing.T) {
	_, err := Build(endpoint.Descriptor{
		Base: mustParse(t, "https://api.example.com"),
		Work: unknownTask{},
	})

	e, ok := neterr.As(err)
	require.True(t, ok)
	assert.Equal(t, neterr.IDInvalidRequest, e.ID)
}

func TestBuild_StaticHeaders(t *testing.T) {
	req, err := Build(endpoint.Descriptor{
		Base:    mustParse(t, "https://api.example.com"),
		Verb:    endpoint.MethodPost,
		Headers: endpoint.Header{header.Accept: header.JSON.Value(), header.Authorization: "Bearer t"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "Bearer t", req.Header.Get("Authorization"))
	assert.Empty(t, readBody(t, req))
}

func TestBuild_Params(t *testing.T) {
	t.Run("Form only", func(t *testing.T) {
		req, err := Build(endpoint.Descriptor{
			Base: mustParse(t, "https://api.example.com"),
			Verb: endpoint.MethodPost,
			Work: endpoint.Params{Parameters: endpoint.ParameterSet{
				Form: endpoint.Parameters{"b": 2, "a": "x"},
			}},
		})
		require.NoError(t, err)
		assert.Equal(t, "a=x&b=2", readBody(t, req))
	})

	t.Run("Query only", func(t *testing.T) {
		req, err := Build(endpoint.Descriptor{
			Base:  mustParse(t, "https://api.example.com?stale=1"),
			Route: "countries",
			Work: endpoint.Params{Parameters: endpoint.ParameterSet{
				Query: endpoint.Parameters{"apiKey": "secret"},
			}},
		})
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com/countries?apiKey=secret", req.URL.String())
	})

	t.Run("JSON replaces form body", func(t *testing.T) {
		req, err := Build(endpoint.Descriptor{
			Base: mustParse(t, "https://api.example.com"),
			Verb: endpoint.MethodPost,
			Work: endpoint.Params{Parameters: endpoint.ParameterSet{
				Form:  endpoint.Parameters{"form": "value"},
				Query: endpoint.Parameters{"q": "1"},
				JSON:  endpoint.Parameters{"name": "Chile"},
			}},
		})
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal([]byte(readBody(t, req)), &body))
		assert.Equal(t, map[string]any{"name": "Chile"}, body)
		assert.Equal(t, "q=1", req.URL.RawQuery)
	})

	t.Run("Non-string query value", func(t *testing.T) {
		_, err := Build(endpoint.Descriptor{
			Base: mustParse(t, "https://api.example.com"),
			Work: endpoint.Params{Parameters: endpoint.ParameterSet{
				Query: endpoint.Parameters{"page": 2},
			}},
		})
		e, ok := neterr.As(err)
		require.True(t, ok)
		assert.Equal(t, neterr.IDInvalidQueryValue, e.ID)
	})

	t.Run("Unencodable JSON", func(t *testing.T) {
		_, err := Build(endpoint.Descriptor{
			Base: mustParse(t, "https://api.example.com"),
			Work: endpoint.Params{Parameters: endpoint.ParameterSet{
				JSON: endpoint.Parameters{"fn": func() {}},
			}},
		})
		assert.ErrorIs(t, err, neterr.ErrCoding)
	})
}

func TestBuild_ParamsWithHeaders(t *testing.T) {
	req, err := Build(endpoint.Descriptor{
		Base:    mustParse(t, "https://api.example.com"),
		Verb:    endpoint.MethodPut,
		Headers: endpoint.Header{header.ContentType: header.PlainText.Value(), header.Accept: "*/*"},
		Work: endpoint.ParamsWithHeaders{
			Parameters: endpoint.ParameterSet{JSON: endpoint.Parameters{"id": 7}},
			Headers:    endpoint.Header{header.ContentType: header.JSON.Value()},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "*/*", req.Header.Get("Accept"))
	assert.JSONEq(t, `{"id": 7}`, readBody(t, req))
}

func TestBuild_TypedBody(t *testing.T) {
	type newCountry struct {
		Name    string `json:"name"`
		Capital string `json:"capital"`
	}

	req, err := Build(endpoint.Descriptor{
		Base:  mustParse(t, "https://api.example.com"),
		Route: "countries",
		Verb:  endpoint.MethodPost,
		Work: endpoint.TypedBody{
			Body:    newCountry{Name: "Peru", Capital: "Lima"},
			Query:   endpoint.Parameters{"dryRun": "true"},
			Headers: endpoint.Header{header.ContentType: header.JSON.Value()},
		},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"name":"Peru","capital":"Lima"}`, readBody(t, req))
	assert.Equal(t, "dryRun=true", req.URL.RawQuery)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
}
