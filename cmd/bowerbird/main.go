package main

import (
	"os"

	"github.com/bowerbird-suite/bowerbird/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.PlanCmd())
	rootCmd.AddCommand(commands.GenerateCmd())
	rootCmd.AddCommand(commands.ServeCmd())
	rootCmd.AddCommand(commands.ProjectsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
