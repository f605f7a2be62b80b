package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/brkyvrkn/network-kit/config"
	"github.com/brkyvrkn/network-kit/endpoint"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run FILE [NAME]",
		Short: "Send a named endpoint from an endpoint file",
		Long: `Send a named endpoint from a YAML or JSON endpoint file. Paths are resolved
against the base URL of the active environment unless --base-url is given.
Without NAME the endpoints in the file are listed.

Variables written as {{name}} are replaced from the file's variables
section and from --var flags, which take precedence.`,
		Example: `  netkit run endpoints.yaml countries --var apiKey=secret
  netkit run endpoints.yaml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := config.LoadEndpoints(args[0])
			if err != nil {
				return err
			}

			if errs := config.ValidateEndpoints(file); len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", e.Error())
				}
				return fmt.Errorf("endpoint file %s is invalid", args[0])
			}

			if len(args) == 1 {
				for _, name := range file.Names() {
					spec := file.Endpoints[name]
					fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-6s %s\n", name, methodOf(spec), spec.Path)
				}
				return nil
			}

			name := args[1]
			if err := config.ValidateEndpoint(file, name); err != nil {
				return err
			}

			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			base, err := runBaseURL(cmd, a.manager)
			if err != nil {
				return err
			}

			rawVars, _ := cmd.Flags().GetStringArray("var")
			vars, err := parsePairs(rawVars, "=")
			if err != nil {
				return err
			}

			desc, err := file.Descriptor(name, base, vars)
			if err != nil {
				return err
			}
			desc = withAuth(desc, a.manager.AuthHeader())

			x, err := exchangeFlags(cmd)
			if err != nil {
				return err
			}
			x.endpoint = desc
			x.extract = config.MergeVariables(file.Endpoints[name].Extract, x.extract)
			if path := file.Endpoints[name].ResultPath; path != "" {
				x.resultPath = path
			}

			return a.send(cmd.Context(), x)
		},
	}

	cmd.Flags().StringArray("var", nil, "Variables as key=value (can be used multiple times)")
	cmd.Flags().String("base-url", "", "Base URL overriding the active environment")
	addExchangeFlags(cmd)

	return cmd
}

// runBaseURL returns --base-url when given, else the manager's base URL.
func runBaseURL(cmd *cobra.Command, manager *config.Manager) (*url.URL, error) {
	raw, _ := cmd.Flags().GetString("base-url")
	if raw == "" {
		return manager.BaseURL()
	}

	base, path, err := parseURL(raw)
	if err != nil {
		return nil, err
	}
	base.Path = path
	return base, nil
}

// withAuth adds auth headers the endpoint does not set itself.
func withAuth(desc endpoint.Descriptor, auth endpoint.Header) endpoint.Descriptor {
	if len(auth) == 0 {
		return desc
	}

	headers := endpoint.Header{}
	for key, value := range auth {
		headers[key] = value
	}
	for key, value := range desc.Headers {
		putHeader(headers, key, value)
	}
	desc.Headers = headers
	return desc
}

func methodOf(spec config.EndpointSpec) string {
	if spec.Method == "" {
		return string(endpoint.MethodGet)
	}
	return spec.Method
}
