package cmd

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"rollcall/internal/output"
	"rollcall/internal/resolver"
	"rollcall/internal/watcher"
)

var (
	validateOutputFormat string
	validateQuiet        bool
	validateColor        bool
	validateWatch        bool
	validateDebounce     time.Duration
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <manifest-or-dir>",
	Short: "Validate a service manifest",
	Long: `Validate checks every service definition in a manifest: malformed
definitions, references to services that do not exist, and dependency
cycles. All failures are reported in one pass, not just the first one.

With --watch the manifest is re-validated whenever it changes on disk,
until the process is interrupted. A failed validation keeps the watch
alive; only load failures end it.

Examples:
  rollcall validate services.yaml
  rollcall validate ./manifests --output json
  rollcall validate services.yaml --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateOutputFormat, "output", "o", "table", "Output format (table, json, yaml)")
	validateCmd.Flags().BoolVarP(&validateQuiet, "quiet", "q", false, "Suppress non-essential output")
	validateCmd.Flags().BoolVar(&validateColor, "color", false, "Colorize table output")
	validateCmd.Flags().BoolVarP(&validateWatch, "watch", "w", false, "Re-validate whenever the manifest changes")
	validateCmd.Flags().DurationVar(&validateDebounce, "debounce", 500*time.Millisecond, "Quiet period before a change triggers re-validation")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validateWatch {
		return watchAndValidate(cmd, args[0])
	}
	return validateOnce(cmd, args[0])
}

// validateOnce loads and validates the manifest a single time.
func validateOnce(cmd *cobra.Command, path string) error {
	formatter, err := newFormatter(validateOutputFormat, validateQuiet, validateColor)
	if err != nil {
		return err
	}

	man, err := loadManifestArg(path)
	if err != nil {
		return err
	}

	result := resolver.New().Validate(man.Services)
	if !result.Success {
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResult(result, man.Services))
		return &validationFailedError{Count: len(result.Errors)}
	}

	// A successful validation has no order to print, so the table format
	// gets a plain confirmation line instead of the result table.
	if formatter.GetOptions().Format == output.FormatTable {
		fmt.Fprintf(cmd.OutOrStdout(), "Manifest valid: %d service(s)\n", result.Statistics.TotalServices)
		if !validateQuiet {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatistics(result.Statistics))
		}
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResult(result, man.Services))
	return nil
}

// watchAndValidate re-validates the manifest on every change until the
// process receives an interrupt.
func watchAndValidate(cmd *cobra.Command, path string) error {
	// The first pass runs immediately. Validation failures keep the watch
	// alive; a manifest that cannot be loaded at all ends it.
	if err := validateOnce(cmd, path); err != nil {
		var vErr *validationFailedError
		if !errors.As(err, &vErr) {
			return err
		}
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	changes := make(chan watcher.Event, 1)
	w := watcher.New(path, validateDebounce)
	if err := w.Start(ctx, changes); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Fprintln(cmd.OutOrStdout(), "Watching for manifest changes, interrupt to stop")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-changes:
			fmt.Fprintf(cmd.OutOrStdout(), "\nChange detected at %s, re-validating\n",
				event.Timestamp.Format(time.TimeOnly))
			if err := validateOnce(cmd, path); err != nil {
				var vErr *validationFailedError
				if !errors.As(err, &vErr) {
					return err
				}
			}
		}
	}
}

// newFormatter builds the output formatter for the shared format flags.
func newFormatter(format string, quiet, color bool) (output.Formatter, error) {
	parsed, err := output.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return output.NewFormatter(output.Options{Format: parsed, Quiet: quiet, Color: color}), nil
}
