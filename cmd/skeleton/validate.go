package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"skeleton/internal/constants"
	"skeleton/internal/validation"
	pkgerrors "skeleton/pkg/errors"
	"skeleton/pkg/logging"
	"skeleton/pkg/support"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var (
		ruleFlags    []string
		messageFlags []string
		dump         bool
	)

	cmd := &cobra.Command{
		Use:   "validate [json|-]",
		Short: "Validate a JSON document against rule strings",
		Example: `  skeleton validate --rules 'port=required|port' '{"port": 8080}'
  echo '{"plate": "AB12CD3456"}' | skeleton validate -r plate=car_number -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ruleset, err := parsePairs(ruleFlags, "--rules")
			if err != nil {
				return &ExitError{Code: constants.ExitInvalid, Err: err}
			}
			if len(ruleset) == 0 {
				return &ExitError{Code: constants.ExitInvalid, Err: fmt.Errorf("at least one --rules attribute=rules pair is required")}
			}
			messages, err := parsePairs(messageFlags, "--message")
			if err != nil {
				return &ExitError{Code: constants.ExitInvalid, Err: err}
			}

			data, err := readDocument(args, cmd.InOrStdin())
			if err != nil {
				return &ExitError{Code: constants.ExitInvalid, Err: err}
			}

			app, err := loadApp(opts)
			if err != nil {
				return &ExitError{Code: constants.ExitFailure, Err: err}
			}

			ctx := logging.WithCommand(cmd.Context(), "validate")
			defer app.Close(ctx)

			if err := app.initDatabase(ctx); err != nil {
				return &ExitError{Code: constants.ExitFailure, Err: err}
			}
			if err := app.initRules(ctx); err != nil {
				return &ExitError{Code: constants.ExitFailure, Err: err}
			}

			validated, err := app.base.Registry.Make(ctx, data, ruleset, messages).Validate()
			if err != nil {
				if fields, ok := validation.AsErrors(err); ok {
					printErrors(cmd.ErrOrStderr(), fields)
					return &ExitError{Code: constants.ExitFailure}
				}
				if pkgerrors.ToHTTPStatus(err) < 500 {
					return &ExitError{Code: constants.ExitInvalid, Err: err}
				}
				return &ExitError{Code: constants.ExitFailure, Err: err}
			}

			if dump {
				support.Fpp(cmd.OutOrStdout(), validated)
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(validated)
		},
	}

	cmd.Flags().StringArrayVarP(&ruleFlags, "rules", "r", nil, "attribute=rule|rule:param pair, repeatable")
	cmd.Flags().StringArrayVarP(&messageFlags, "message", "m", nil, "attribute.rule=message or rule=message override, repeatable")
	cmd.Flags().BoolVar(&dump, "dump", false, "Dump the validated data instead of printing JSON")

	return cmd
}

func parsePairs(pairs []string, flag string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%s expects key=value, got %q", flag, pair)
		}
		out[key] = value
	}
	return out, nil
}

// readDocument decodes the JSON object given as the argument, or read from
// stdin when the argument is "-" or missing. Numbers keep their literal form.
func readDocument(args []string, stdin io.Reader) (map[string]any, error) {
	var raw []byte
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		raw = b
	} else {
		raw = []byte(args[0])
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}
	if !support.IsJSON(string(raw)) {
		return nil, pkgerrors.ErrInvalidJSON.WithMessage("document is not valid JSON")
	}

	var data map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return nil, pkgerrors.ErrInvalidJSON.WithCause(err).WithMessage("document must be a JSON object")
	}
	return data, nil
}

func printErrors(w io.Writer, fields validation.Errors) {
	for _, attr := range slices.Sorted(maps.Keys(fields)) {
		for _, msg := range fields[attr] {
			fmt.Fprintf(w, "%s: %s\n", attr, msg)
		}
	}
}

