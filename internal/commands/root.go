package commands

import (
	"github.com/spf13/cobra"

	bowerbird "github.com/bowerbird-suite/bowerbird"
	"github.com/bowerbird-suite/bowerbird/internal/output"
)

// RootCmd creates and returns the root command for the Bowerbird CLI.
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "bowerbird",
		Short: "Generate full project scaffolds from natural-language prompts",
		Long: `Bowerbird turns a one-line description into a working project skeleton.

Describe what you want to build and Bowerbird plans the file layout,
renders frontend, backend, database and integration files, and writes
the project to disk:

  bowerbird generate "Create a recipe sharing app with user login"

Run it as a service with 'bowerbird serve' to submit prompts over HTTP
and poll generation tasks.`,
		Version: bowerbird.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}
