package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brkyvrkn/network-kit/endpoint"
	"github.com/brkyvrkn/network-kit/header"
)

// newRequestCmd builds the command sending a single method, e.g. "get URL".
func newRequestCmd(method endpoint.Method) *cobra.Command {
	name := strings.ToLower(string(method))

	cmd := &cobra.Command{
		Use:   name + " URL",
		Short: fmt.Sprintf("Make a %s request to the specified URL", method),
		Example: fmt.Sprintf(`  netkit %s https://api.example.com/countries -q apiKey=secret
  netkit %s api.example.com/users -H "Accept: application/json" --json '{"name":"Ada"}'`, name, name),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			desc, err := requestDescriptor(cmd, method, args[0], a.manager.AuthHeader())
			if err != nil {
				return err
			}

			x, err := exchangeFlags(cmd)
			if err != nil {
				return err
			}
			x.endpoint = desc

			return a.send(cmd.Context(), x)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayP("header", "H", nil, "HTTP headers to include as \"Key: Value\" (can be used multiple times)")
	flags.StringArrayP("query", "q", nil, "Query parameters as key=value (can be used multiple times)")
	flags.StringArrayP("form", "f", nil, "Form fields as key=value (can be used multiple times)")
	flags.StringP("json", "j", "", "JSON object to send in the request body, or @file")
	addExchangeFlags(cmd)

	return cmd
}

func addExchangeFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.DurationP("timeout", "t", 0, "Round trip timeout (default from configuration)")
	flags.IntP("repeat", "n", 1, "Send the request n times and print a latency summary")
	flags.Float64("rate", 0, "Requests per second when repeating (0 sends back to back)")
	flags.StringArrayP("extract", "x", nil, "Values to extract from the response as name=$.json.path")
	flags.String("metrics-file", "", "Write Prometheus metrics in text format to this file")
}

func exchangeFlags(cmd *cobra.Command) (exchange, error) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	repeat, _ := cmd.Flags().GetInt("repeat")
	rate, _ := cmd.Flags().GetFloat64("rate")
	rawExtract, _ := cmd.Flags().GetStringArray("extract")
	metricsFile, _ := cmd.Flags().GetString("metrics-file")

	extract, err := parsePairs(rawExtract, "=")
	if err != nil {
		return exchange{}, err
	}
	if repeat < 1 {
		return exchange{}, fmt.Errorf("repeat must be at least 1, got %d", repeat)
	}
	if rate < 0 {
		return exchange{}, fmt.Errorf("rate cannot be negative, got %g", rate)
	}

	return exchange{
		timeout:     timeout,
		repeat:      repeat,
		rate:        rate,
		extract:     extract,
		metricsFile: metricsFile,
	}, nil
}

// requestDescriptor builds the endpoint described by the command line.
// Headers given with -H override auth.
func requestDescriptor(cmd *cobra.Command, method endpoint.Method, rawURL string, auth endpoint.Header) (endpoint.Descriptor, error) {
	flags := cmd.Flags()
	rawHeaders, _ := flags.GetStringArray("header")
	rawQuery, _ := flags.GetStringArray("query")
	rawForm, _ := flags.GetStringArray("form")
	rawJSON, _ := flags.GetString("json")

	base, path, err := parseURL(rawURL)
	if err != nil {
		return endpoint.Descriptor{}, err
	}

	headers := endpoint.Header{}
	for key, value := range auth {
		headers[key] = value
	}
	parsed, err := parsePairs(rawHeaders, ":")
	if err != nil {
		return endpoint.Descriptor{}, err
	}
	for key, value := range parsed {
		putHeader(headers, key, value)
	}

	var set endpoint.ParameterSet

	query, err := parsePairs(rawQuery, "=")
	if err != nil {
		return endpoint.Descriptor{}, err
	}
	if query != nil {
		// the query encoder replaces the URL query, so keep what the URL had
		set.Query = endpoint.Parameters{}
		for key, values := range base.Query() {
			set.Query[key] = values[0]
		}
		for key, value := range query {
			set.Query[key] = value
		}
	}

	form, err := parsePairs(rawForm, "=")
	if err != nil {
		return endpoint.Descriptor{}, err
	}
	if form != nil {
		set.Form = make(endpoint.Parameters, len(form))
		for key, value := range form {
			set.Form[key] = value
		}
		setDefault(headers, header.ContentType, header.FormURLEncoded.Value())
	}

	body, err := parseJSONObject(rawJSON)
	if err != nil {
		return endpoint.Descriptor{}, err
	}
	if body != nil {
		if set.Form != nil {
			return endpoint.Descriptor{}, fmt.Errorf("--form and --json cannot be combined")
		}
		set.JSON = body
		setDefault(headers, header.ContentType, header.JSON.Value())
	}

	desc := endpoint.Descriptor{
		Base:  base,
		Route: path,
		Verb:  method,
		Work:  endpoint.Plain{},
	}
	if len(headers) > 0 {
		desc.Headers = headers
	}
	if !set.Empty() {
		desc.Work = endpoint.Params{Parameters: set}
	}
	return desc, nil
}

// parseURL splits a URL into its base (scheme, user info, host and query)
// and path. A missing scheme defaults to http.
func parseURL(fullURL string) (*url.URL, string, error) {
	// Add scheme if missing
	if !strings.HasPrefix(fullURL, "http://") && !strings.HasPrefix(fullURL, "https://") {
		fullURL = "http://" + fullURL
	}

	parsedURL, err := url.Parse(fullURL)
	if err != nil {
		return nil, "", fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Host == "" {
		return nil, "", fmt.Errorf("invalid URL %q: missing host", fullURL)
	}

	path := parsedURL.Path
	if path == "" {
		path = "/"
	}

	base := &url.URL{
		Scheme:   parsedURL.Scheme,
		User:     parsedURL.User,
		Host:     parsedURL.Host,
		RawQuery: parsedURL.RawQuery,
	}
	return base, path, nil
}

// putHeader sets key, replacing any entry that differs only in case.
func putHeader(headers endpoint.Header, key, value string) {
	for existing := range headers {
		if strings.EqualFold(existing, key) {
			delete(headers, existing)
		}
	}
	headers[key] = value
}

func setDefault(headers endpoint.Header, key, value string) {
	for existing := range headers {
		if strings.EqualFold(existing, key) {
			return
		}
	}
	headers[key] = value
}

func cutTrim(s, sep string) (string, string, bool) {
	key, value, ok := strings.Cut(s, sep)
	return strings.TrimSpace(key), strings.TrimSpace(value), ok
}
