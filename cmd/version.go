package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newVersionCmd creates the Cobra command for displaying the application version.
// The version string is set by the main package via SetVersionInfo.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of rollcall",
		Long:  `All software has versions. This is rollcall's.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rollcall version %s (commit %s, built %s)\n",
				rootCmd.Version, buildCommit, buildDate)
		},
	}
}
