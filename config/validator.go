package config

import (
	"fmt"
	"sort"

	"github.com/brkyvrkn/network-kit/endpoint"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate checks a loaded Config. Errors are ordered by path.
func Validate(cfg *Config) []ValidationError {
	var errors []ValidationError

	env, err := ParseEnvironment(cfg.Environment)
	if err != nil {
		errors = append(errors, ValidationError{
			Path:    "environment",
			Message: err.Error(),
		})
	}

	for name, raw := range cfg.BaseURLs {
		if _, err := ParseEnvironment(name); err != nil {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("base_urls.%s", name),
				Message: err.Error(),
			})
			continue
		}
		if _, err := parseBaseURL(raw); err != nil {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("base_urls.%s", name),
				Message: err.Error(),
			})
		}
	}

	if env != "" {
		if _, ok := cfg.BaseURLs[string(env)]; !ok {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("base_urls.%s", env),
				Message: "base URL of the active environment is required",
			})
		}
	}

	if cfg.Timeout < 0 {
		errors = append(errors, ValidationError{
			Path:    "timeout",
			Message: "timeout cannot be negative",
		})
	}

	if !logLevels[cfg.Log.Level] {
		errors = append(errors, ValidationError{
			Path:    "log.level",
			Message: fmt.Sprintf("invalid level: %q", cfg.Log.Level),
		})
	}

	if cfg.Log.Format != "console" && cfg.Log.Format != "json" {
		errors = append(errors, ValidationError{
			Path:    "log.format",
			Message: fmt.Sprintf("invalid format: %q", cfg.Log.Format),
		})
	}

	sortErrors(errors)
	return errors
}

// ValidateEndpoints checks an endpoint file. Errors are ordered by path.
func ValidateEndpoints(file *EndpointFile) []ValidationError {
	var errors []ValidationError

	if len(file.Endpoints) == 0 {
		errors = append(errors, ValidationError{
			Path:    "endpoints",
			Message: "at least one endpoint is required",
		})
	}

	for name, spec := range file.Endpoints {
		if spec.Method != "" {
			if _, err := endpoint.ParseMethod(spec.Method); err != nil {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("endpoints.%s.method", name),
					Message: fmt.Sprintf("invalid method: %s", spec.Method),
				})
			}
		}

		for varName, path := range spec.Extract {
			if path == "" {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("endpoints.%s.extract.%s", name, varName),
					Message: "extract path cannot be empty",
				})
			}
		}
	}

	sortErrors(errors)
	return errors
}

// ValidateEndpoint checks a single endpoint
func ValidateEndpoint(file *EndpointFile, name string) error {
	if _, ok := file.Endpoints[name]; !ok {
		return fmt.Errorf("endpoint not found: %s", name)
	}
	return nil
}

func sortErrors(errors []ValidationError) {
	sort.SliceStable(errors, func(i, j int) bool {
		return errors[i].Path < errors[j].Path
	})
}
