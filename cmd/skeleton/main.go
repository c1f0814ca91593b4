package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"skeleton/internal/constants"
)

type rootOptions struct {
	configFile string
}

// ExitError carries the process exit status out of a command. Err, when set,
// is printed to stderr; commands that already reported the failure leave it
// nil.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	return exitCode(root.ExecuteContext(ctx), stderr)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           constants.ServiceName,
		Short:         "Application bootstrap tooling",
		Long:          "Registers validation rules, serves the validation API and warms the framework caches",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to config file (or CONFIG_FILE)")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &ExitError{Code: constants.ExitInvalid, Err: err}
	})

	rootCmd.AddCommand(
		newOptimizeCmd(opts),
		newServeCmd(opts),
		newRulesListCmd(opts),
		newValidateCmd(opts),
	)

	return rootCmd
}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return constants.ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", exitErr.Err)
		}
		return exitErr.Code
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return constants.ExitFailure
}
