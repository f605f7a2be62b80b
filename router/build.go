package router

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/brkyvrkn/network-kit/encoder"
	"github.com/brkyvrkn/network-kit/endpoint"
	"github.com/brkyvrkn/network-kit/neterr"
)

// Build produces the request described by ep. Static headers are applied
// first, then the task: form, query and JSON parameters in that order, so a
// JSON body replaces a form body. Headers carried by the task are merged last
// and overwrite static ones.
func Build(ep endpoint.Endpoint) (*http.Request, error) {
	base := ep.BaseURL()
	if base == nil {
		return nil, neterr.MissingURLError()
	}

	method := ep.Method()
	if !method.Valid() {
		return nil, neterr.CustomError(neterr.IDInvalidRequest, fmt.Sprintf("unsupported method %q", method))
	}

	req, err := http.NewRequest(string(method), joinURL(base, ep.Path()), nil)
	if err != nil {
		return nil, neterr.CustomError(neterr.IDInvalidRequest, err.Error())
	}

	setHeaders(req, ep.Header())

	if err := applyTask(req, ep.Task()); err != nil {
		return nil, err
	}

	return req, nil
}

// joinURL appends path to the base path with exactly one slash between them.
func joinURL(base *url.URL, path string) string {
	u := *base
	if path != "" {
		u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
		u.RawPath = ""
	}
	return u.String()
}

func applyTask(req *http.Request, task endpoint.Task) error {
	switch t := task.(type) {
	case nil, endpoint.Plain:
		return nil

	case endpoint.TypedBody:
		if err := encoder.JSONObject(req, t.Body); err != nil {
			return err
		}
		if t.Query != nil {
			if err := encoder.Query(req, t.Query); err != nil {
				return err
			}
		}
		setHeaders(req, t.Headers)
		return nil

	case endpoint.Params:
		return applyParameters(req, t.Parameters)

	case endpoint.ParamsWithHeaders:
		if err := applyParameters(req, t.Parameters); err != nil {
			return err
		}
		setHeaders(req, t.Headers)
		return nil

	default:
		return neterr.CustomError(neterr.IDInvalidRequest, fmt.Sprintf("unsupported task %T", task))
	}
}

func applyParameters(req *http.Request, set endpoint.ParameterSet) error {
	if set.Form != nil {
		if err := encoder.Form(req, set.Form); err != nil {
			return err
		}
	}
	if set.Query != nil {
		if err := encoder.Query(req, set.Query); err != nil {
			return err
		}
	}
	if set.JSON != nil {
		if err := encoder.JSON(req, set.JSON); err != nil {
			return err
		}
	}
	return nil
}

func setHeaders(req *http.Request, headers endpoint.Header) {
	for key, value := range headers {
		req.Header.Set(key, value)
	}
}
