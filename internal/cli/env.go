package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/brkyvrkn/network-kit/config"
)

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Show the resolved environment and validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			current := a.manager.Environment()
			out := a.out

			fmt.Fprintf(out, "Environment: %s\n", current)
			if base, err := a.manager.BaseURL(); err == nil {
				fmt.Fprintf(out, "Base URL:    %s\n", base)
			} else {
				fmt.Fprintf(out, "Base URL:    (none)\n")
			}
			fmt.Fprintf(out, "Timeout:     %s\n", a.manager.Timeout())
			if a.manager.Token() != "" {
				fmt.Fprintf(out, "Token:       set\n")
			} else {
				fmt.Fprintf(out, "Token:       (none)\n")
			}

			if len(a.cfg.BaseURLs) > 0 {
				fmt.Fprintln(out, "Base URLs:")
				names := make([]string, 0, len(a.cfg.BaseURLs))
				for name := range a.cfg.BaseURLs {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					marker := " "
					if name == string(current) {
						marker = "*"
					}
					fmt.Fprintf(out, "  %s %-12s %s\n", marker, name, a.cfg.BaseURLs[name])
				}
			}

			errs := config.Validate(a.cfg)
			if len(errs) == 0 {
				return nil
			}
			fmt.Fprintln(a.errOut, "Configuration validation errors:")
			for _, e := range errs {
				fmt.Fprintf(a.errOut, "  - %s\n", e.Error())
			}
			return fmt.Errorf("configuration has %d error(s)", len(errs))
		},
	}
}
