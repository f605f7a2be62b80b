// Package config holds the process-wide client settings: the active
// environment, the authorization token and the base URL of each
// environment.
//
// Most programs configure the shared Manager once at startup:
//
//	cfg, err := config.Load("netkit.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if errs := config.Validate(cfg); len(errs) > 0 {
//	    log.Fatal(errs[0])
//	}
//	if err := config.Shared().Apply(cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// and endpoints read it back when they are built:
//
//	func (countries) BaseURL() *url.URL {
//	    u, _ := config.Shared().BaseURL()
//	    return u
//	}
//
// Files and environment variables:
//
// Load reads YAML or JSON. Every key can be overridden from the environment
// with the NETKIT_ prefix, for example NETKIT_TOKEN or NETKIT_LOG_LEVEL.
//
// Endpoint files:
//
// LoadEndpoints reads named endpoint templates for the command line client.
// Values may reference variables with the {{name}} syntax:
//
//	variables:
//	  apiKey: secret
//	endpoints:
//	  countries:
//	    path: api/v7/countries
//	    query:
//	      apiKey: "{{apiKey}}"
package config
