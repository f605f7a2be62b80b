package router_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/brkyvrkn/network-kit/config"
	"github.com/brkyvrkn/network-kit/endpoint"
	"github.com/brkyvrkn/network-kit/header"
	"github.com/brkyvrkn/network-kit/neterr"
	"github.com/brkyvrkn/network-kit/router"
)

type Country struct {
	Name    string `json:"name"`
	Capital string `json:"capital"`
}

// countries lists every country. The API key travels in the query.
type countries struct {
	base   *url.URL
	apiKey string
}

func (c countries) BaseURL() *url.URL       { return c.base }
func (c countries) Path() string            { return "v2/all" }
func (c countries) Method() endpoint.Method { return endpoint.MethodGet }

func (c countries) Header() endpoint.Header {
	return endpoint.Header{header.Accept: header.JSON.Value()}
}

func (c countries) Task() endpoint.Task {
	return endpoint.Params{Parameters: endpoint.ParameterSet{
		Query: endpoint.Parameters{"apiKey": c.apiKey},
	}}
}

func countriesAPI() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/all" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("apiKey") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set(header.ContentType, header.JSON.Value())
		fmt.Fprint(w, `[{"name":"Austria","capital":"Vienna"},{"name":"Chile","capital":"Santiago"}]`)
	}))
}

func ExampleRouter_Do() {
	server := countriesAPI()
	defer server.Close()

	manager := config.Shared()
	manager.SetEnvironment(config.Test)
	if err := manager.SetBaseURL(config.Test, server.URL); err != nil {
		fmt.Println(err)
		return
	}
	manager.SetToken("secret")

	base, err := manager.BaseURL()
	if err != nil {
		fmt.Println(err)
		return
	}

	r := router.New[[]Country](manager.Options()...)
	list, err := r.Do(context.Background(), countries{base: base, apiKey: manager.Token()})
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, c := range list {
		fmt.Printf("%s: %s\n", c.Name, c.Capital)
	}
	// Output:
	// Austria: Vienna
	// Chile: Santiago
}

func ExampleRouter_Send() {
	server := countriesAPI()
	defer server.Close()

	base, _ := url.Parse(server.URL)
	r := router.New[[]Country]()

	call := r.Send(context.Background(), countries{base: base, apiKey: "wrong"},
		func(list []Country) {
			fmt.Println("countries:", len(list))
		},
		func(err *neterr.Error) {
			fmt.Println("status error:", errors.Is(err, neterr.ErrStatus), err.StatusCode)
		},
	)
	<-call.Done()
	// Output:
	// status error: true 401
}

func ExampleBuild() {
	base, _ := url.Parse("https://api.example.com")

	req, err := router.Build(countries{base: base, apiKey: "secret"})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(req.Method, req.URL)
	fmt.Println(req.Header.Get(header.Accept))
	// Output:
	// GET https://api.example.com/v2/all?apiKey=secret
	// application/json
}
