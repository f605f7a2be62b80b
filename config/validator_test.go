package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{Path: "base_urls.test", Message: "base URL is required"}
	if err.Error() != "base_urls.test: base URL is required" {
		t.Errorf("Unexpected error string: %s", err.Error())
	}
}

func validConfig() *Config {
	cfg := Default()
	cfg.BaseURLs = map[string]string{
		"development": "https://dev.api.example.com",
		"production":  "https://api.example.com",
	}
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Config)
		errorPaths []string
	}{
		{
			name:   "Valid config",
			mutate: func(*Config) {},
		},
		{
			name:       "Unknown environment",
			mutate:     func(c *Config) { c.Environment = "staging" },
			errorPaths: []string{"environment"},
		},
		{
			name:       "Missing base URL for active environment",
			mutate:     func(c *Config) { c.Environment = "test" },
			errorPaths: []string{"base_urls.test"},
		},
		{
			name:       "Relative base URL",
			mutate:     func(c *Config) { c.BaseURLs["production"] = "/api" },
			errorPaths: []string{"base_urls.production"},
		},
		{
			name:       "Unknown environment key",
			mutate:     func(c *Config) { c.BaseURLs["qa"] = "https://qa.example.com" },
			errorPaths: []string{"base_urls.qa"},
		},
		{
			name: "Bad timeout and logging",
			mutate: func(c *Config) {
				c.Timeout = -time.Second
				c.Log.Level = "verbose"
				c.Log.Format = "xml"
			},
			errorPaths: []string{"log.format", "log.level", "timeout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			errs := Validate(cfg)
			if len(errs) != len(tt.errorPaths) {
				t.Fatalf("Expected %d errors, got %d: %v", len(tt.errorPaths), len(errs), errs)
			}
			for i, path := range tt.errorPaths {
				if errs[i].Path != path {
					t.Errorf("Expected error %d at %s, got %s", i, path, errs[i].Path)
				}
			}
		})
	}
}

func TestValidateEndpoints(t *testing.T) {
	file := &EndpointFile{
		Endpoints: map[string]EndpointSpec{
			"countries": {Path: "countries"},
			"broken": {
				Path:    "x",
				Method:  "TRACE",
				Extract: map[string]string{"name": ""},
			},
		},
	}

	errs := ValidateEndpoints(file)
	if len(errs) != 2 {
		t.Fatalf("Expected 2 errors, got %d: %v", len(errs), errs)
	}
	if errs[0].Path != "endpoints.broken.extract.name" {
		t.Errorf("Unexpected first path: %s", errs[0].Path)
	}
	if !strings.Contains(errs[1].Message, "TRACE") {
		t.Errorf("Expected method error, got %s", errs[1].Message)
	}

	if errs := ValidateEndpoints(&EndpointFile{}); len(errs) != 1 || errs[0].Path != "endpoints" {
		t.Errorf("Expected a single endpoints error, got %v", errs)
	}

	if err := ValidateEndpoint(file, "countries"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := ValidateEndpoint(file, "missing"); err == nil {
		t.Error("Expected error for missing endpoint")
	}
}
