package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"skeleton/internal/constants"
	"skeleton/internal/server"
	"skeleton/pkg/logging"
)

func newRulesListCmd(opts *rootOptions) *cobra.Command {
	var (
		asJSON   bool
		database bool
	)

	cmd := &cobra.Command{
		Use:   "rules:list",
		Short: "List the registered validation rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return &ExitError{Code: constants.ExitFailure, Err: err}
			}

			ctx := logging.WithCommand(cmd.Context(), "rules:list")
			defer app.Close(ctx)

			if database {
				if err := app.initDatabase(ctx); err != nil {
					return &ExitError{Code: constants.ExitFailure, Err: err}
				}
			}
			if err := app.initRules(ctx); err != nil {
				return &ExitError{Code: constants.ExitFailure, Err: err}
			}

			exts := app.base.Registry.Extensions()
			infos := make([]server.RuleInfo, 0, len(exts))
			for _, ext := range exts {
				infos = append(infos, server.RuleInfo{Name: ext.Name, Implicit: ext.Implicit, Message: ext.Message})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tIMPLICIT\tMESSAGE")
			for _, ri := range infos {
				fmt.Fprintf(tw, "%s\t%t\t%s\n", ri.Name, ri.Implicit, ri.Message)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the rules as JSON")
	cmd.Flags().BoolVar(&database, "database", false, "Connect to the configured database so database rules are listed")

	return cmd
}
