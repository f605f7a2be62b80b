package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/brkyvrkn/network-kit/endpoint"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = NewRootCmd()

// NewRootCmd builds the command tree. Every call returns an independent tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "netkit",
		Short:   "Typed HTTP endpoints from the terminal",
		Version: version,
		Long: `netkit sends HTTP requests through the network-kit router: requests are
built from endpoint descriptions, responses are classified by status code
and failures are reported with a single error vocabulary.

Base URLs, the active environment and the authorization token come from
netkit.yaml (or NETKIT_* environment variables).`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "Configuration file (default: ./netkit.yaml or ~/.netkit/netkit.yaml)")
	flags.StringP("env", "e", "", "Active environment: local, development, test or production")
	flags.String("token", "", "Authorization token sent as a bearer token")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.BoolP("verbose", "v", false, "Enable verbose output")
	flags.Bool("no-color", false, "Disable colored output")
	flags.StringP("output", "o", "text", "Output format: text, json or yaml")

	for _, method := range []endpoint.Method{
		endpoint.MethodGet,
		endpoint.MethodPost,
		endpoint.MethodPut,
		endpoint.MethodPatch,
		endpoint.MethodDelete,
		endpoint.MethodCopy,
	} {
		cmd.AddCommand(newRequestCmd(method))
	}
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newEnvCmd())

	return cmd
}

// Execute runs RootCmd. An interrupt cancels in-flight requests.
// This is called by main.main().
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return RootCmd.ExecuteContext(ctx)
}
