package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rollcall/internal/api"
	"rollcall/internal/manifest"
	"rollcall/pkg/logging"
)

// Exit codes for CLI commands.
// These follow common conventions so scripts can branch on the failure class.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeValidation indicates the manifest failed validation.
	ExitCodeValidation = 1
	// ExitCodeLoad indicates the manifest could not be read or parsed.
	ExitCodeLoad = 2
	// ExitCodeInternal indicates an unexpected failure inside the program.
	ExitCodeInternal = 3
)

var rootDebug bool

// rootCmd represents the base command for the rollcall application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "rollcall",
	Short: "Validate and order service dependency manifests",
	Long: `rollcall reads service manifests and computes the order in which
the services can be constructed. Validation reports every missing
dependency reference and every cycle in a single pass before any
ordering happens.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
	// Logging stays uninitialized (and therefore silent) unless --debug is
	// set, keeping stdout clean for parseable output.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if rootDebug {
			logging.InitForCLI(logging.LevelDebug, cmd.ErrOrStderr())
		}
	},
}

// Build metadata stamped in by the linker, with defaults for plain go build.
var (
	buildCommit = "none"
	buildDate   = "unknown"
)

// SetVersionInfo sets the version and build metadata for the root command.
// This function is called from the main package to inject the values at
// build time.
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}
}

// GetVersion returns the current version of the application.
// This can be used by other commands to access the build version.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It runs the root command and translates any returned error into a process
// exit code. This function is called by main.main().
func Execute() {
	// SetVersionTemplate defines a custom template for displaying the version.
	// This is used when the --version flag is invoked.
	rootCmd.SetVersionTemplate(`{{printf "rollcall version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		exitCode := getExitCode(err)
		os.Exit(exitCode)
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var loadErr *manifestLoadError
	if errors.As(err, &loadErr) {
		return ExitCodeLoad
	}

	var validationErr *validationFailedError
	if errors.As(err, &validationErr) {
		return ExitCodeValidation
	}

	// Resolution errors surfaced outside a collected result are still
	// validation-class failures.
	if api.IsCircularDependency(err) || api.IsMissingDependency(err) || api.IsDuplicateService(err) {
		return ExitCodeValidation
	}

	return ExitCodeInternal
}

// validationFailedError marks a run that completed but found validation
// problems. The report itself has already been printed when this error is
// returned; it only carries the failure class for the exit code.
type validationFailedError struct {
	Count int
}

func (e *validationFailedError) Error() string {
	word := "errors"
	if e.Count == 1 {
		word = "error"
	}
	return fmt.Sprintf("validation failed with %d %s", e.Count, word)
}

// manifestLoadError marks a manifest that could not be read or parsed.
type manifestLoadError struct {
	Path string
	Err  error
}

func (e *manifestLoadError) Error() string {
	return fmt.Sprintf("loading manifest %s: %v", e.Path, e.Err)
}

func (e *manifestLoadError) Unwrap() error {
	return e.Err
}

// loadManifestArg loads the manifest path given as a command argument. The
// path must exist; failures are wrapped so they map to ExitCodeLoad.
func loadManifestArg(path string) (*manifest.Manifest, error) {
	man, err := manifest.LoadPath(path)
	if err != nil {
		return nil, &manifestLoadError{Path: path, Err: err}
	}
	return man, nil
}

// init adds the subcommands without flag state of their own to the root
// command. validate, order and graph register themselves from their files'
// init functions.
func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())

	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "Enable debug logging to stderr")
}
