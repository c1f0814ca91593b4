package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"skeleton/internal/constants"
	"skeleton/internal/logger"
	"skeleton/internal/optimize"
	"skeleton/pkg/logging"
	"skeleton/pkg/metrics"
)

func newOptimizeCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "optimize:all",
		Short: "Cache the autoload index and the framework bootstrap files",
		Long: "Runs the autoload dump and then config:cache, event:cache, route:cache and view:cache. " +
			"Outside production the command refuses to run unless --force is given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return &ExitError{Code: constants.ExitFailure, Err: err}
			}
			ctx := logging.WithCommand(cmd.Context(), "optimize:all")
			defer app.Close(ctx)

			if err := app.initTracing(ctx); err != nil {
				return &ExitError{Code: constants.ExitFailure, Err: err}
			}
			metrics.RegisterOptimizeMetrics()

			result := optimize.New(app.config.Optimize, logger.WithComponent(app.logger, "optimize")).
				Run(ctx, cmd.OutOrStdout(), force, app.config.App.IsProduction())

			switch result.Status {
			case optimize.StatusInvalid:
				fmt.Fprintf(cmd.ErrOrStderr(), "Application is in %q; use --force to optimize outside production.\n", app.config.App.Env)
				return &ExitError{Code: constants.ExitInvalid}
			case optimize.StatusFailure:
				return &ExitError{Code: constants.ExitFailure}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Force the operation to run outside production")

	return cmd
}
