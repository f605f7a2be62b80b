package config

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brkyvrkn/network-kit/endpoint"
)

// EndpointFile is a set of named endpoint templates.
type EndpointFile struct {
	// Variables are available to every endpoint as {{name}}
	Variables map[string]string `yaml:"variables,omitempty"`

	// Endpoints are keyed by name
	Endpoints map[string]EndpointSpec `yaml:"endpoints"`
}

// EndpointSpec describes one endpoint. Query values are strings; form and
// JSON values keep their YAML types.
type EndpointSpec struct {
	// Path is appended to the environment base URL
	Path string `yaml:"path"`

	// Method defaults to GET
	Method string `yaml:"method,omitempty"`

	Headers map[string]string `yaml:"headers,omitempty"`
	Query   map[string]string `yaml:"query,omitempty"`
	Form    map[string]any    `yaml:"form,omitempty"`
	JSON    map[string]any    `yaml:"json,omitempty"`

	// ResultPath selects the part of the response to decode
	ResultPath string `yaml:"resultPath,omitempty"`

	// Extract names values to read from the response with JSONPath
	Extract map[string]string `yaml:"extract,omitempty"`
}

// LoadEndpoints reads an endpoint file. JSON files are accepted too.
func LoadEndpoints(path string) (*EndpointFile, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("endpoint file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading endpoint file: %w", err)
	}

	return ParseEndpoints(data)
}

// ParseEndpoints decodes endpoint file content.
func ParseEndpoints(data []byte) (*EndpointFile, error) {
	var file EndpointFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing endpoint file: %w", err)
	}
	return &file, nil
}

// Names returns the endpoint names in sorted order.
func (f *EndpointFile) Names() []string {
	names := make([]string, 0, len(f.Endpoints))
	for name := range f.Endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Descriptor builds the named endpoint against base. vars override the
// file variables.
func (f *EndpointFile) Descriptor(name string, base *url.URL, vars map[string]string) (endpoint.Descriptor, error) {
	spec, ok := f.Endpoints[name]
	if !ok {
		return endpoint.Descriptor{}, fmt.Errorf("endpoint not found: %s", name)
	}

	variables := MergeVariables(f.Variables, vars)

	method := endpoint.MethodGet
	if spec.Method != "" {
		m, err := endpoint.ParseMethod(spec.Method)
		if err != nil {
			return endpoint.Descriptor{}, fmt.Errorf("endpoint %s: %w", name, err)
		}
		method = m
	}

	desc := endpoint.Descriptor{
		Base:  base,
		Route: Expand(spec.Path, variables),
		Verb:  method,
	}
	if len(spec.Headers) > 0 {
		desc.Headers = endpoint.Header(ExpandMap(spec.Headers, variables))
	}

	set := endpoint.ParameterSet{
		Form: expandParameters(spec.Form, variables),
		JSON: expandParameters(spec.JSON, variables),
	}
	if spec.Query != nil {
		set.Query = make(endpoint.Parameters, len(spec.Query))
		for key, value := range spec.Query {
			set.Query[key] = Expand(value, variables)
		}
	}

	if set.Empty() {
		desc.Work = endpoint.Plain{}
	} else {
		desc.Work = endpoint.Params{Parameters: set}
	}
	return desc, nil
}

// Expand replaces {{name}} references with their values. Unknown
// references are left as they are.
func Expand(input string, vars map[string]string) string {
	result := input
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}

// ExpandMap applies Expand to every value.
func ExpandMap(input map[string]string, vars map[string]string) map[string]string {
	result := make(map[string]string, len(input))
	for key, value := range input {
		result[key] = Expand(value, vars)
	}
	return result
}

// MergeVariables merges two variable sets, with the second taking precedence.
func MergeVariables(base, override map[string]string) map[string]string {
	result := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		result[key] = value
	}
	for key, value := range override {
		result[key] = value
	}
	return result
}

func expandParameters(input map[string]any, vars map[string]string) endpoint.Parameters {
	if input == nil {
		return nil
	}
	params := make(endpoint.Parameters, len(input))
	for key, value := range input {
		if s, ok := value.(string); ok {
			value = Expand(s, vars)
		}
		params[key] = value
	}
	return params
}
