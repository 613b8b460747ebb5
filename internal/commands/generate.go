package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bowerbird-suite/bowerbird/internal/config"
	"github.com/bowerbird-suite/bowerbird/internal/orchestrator"
	"github.com/bowerbird-suite/bowerbird/internal/output"
	"github.com/bowerbird-suite/bowerbird/internal/project"
	"github.com/bowerbird-suite/bowerbird/internal/task"
)

// GenerateCmd creates the 'generate' command: run the full pipeline for a
// prompt and write the project to disk.
func GenerateCmd() *cobra.Command {
	var outputDir, projectName string
	var force, zipArchive bool

	cmd := &cobra.Command{
		Use:   "generate <prompt>",
		Short: "Generate a project from a prompt",
		Long: `Analyze a prompt, plan the project, and write every generated file.

Examples:
  bowerbird generate "Create a recipe sharing app with user login"
  bowerbird generate "Build a web shop platform with Stripe" --force
  bowerbird generate "Create a blog platform" --output /tmp/projects`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			prompt := strings.Join(args, " ")

			cfg, err := config.Load("")
			if err != nil {
				output.Error(fmt.Sprintf("Configuration error: %v", err))
				os.Exit(1)
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}
			if force {
				cfg.Force = true
			}

			store, err := project.NewStore(cfg.OutputDir, zap.NewNop())
			if err != nil {
				output.Error(fmt.Sprintf("Could not open output directory: %v", err))
				os.Exit(1)
			}

			orch := orchestrator.New(orchestrator.Options{
				Store: store,
				Tasks: task.NewStore(),
				Force: cfg.Force,
			})

			output.Verbose(fmt.Sprintf("Output directory: %s", store.Root()))

			result, err := orch.Generate(context.Background(), orchestrator.Request{
				Prompt:      prompt,
				ProjectName: projectName,
				Zip:         zipArchive,
			})
			if err != nil {
				output.Error(fmt.Sprintf("Generation failed: %v", err))
				os.Exit(1)
			}

			for _, w := range result.Warnings {
				output.Warn(w)
			}

			output.Success(fmt.Sprintf("Generated project: %s (%d files)",
				result.ProjectName, result.Files))
			if result.ArchivePath != "" {
				output.Info("Archive: " + result.ArchivePath)
			}
			output.Info("Next steps:")
			output.Step(fmt.Sprintf("cd %s", result.ProjectPath))
			output.Step("cp .env.example .env")
			output.Step("docker-compose up --build")
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (overrides config)")
	cmd.Flags().StringVarP(&projectName, "name", "n", "", "Project name (overrides the extracted one)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files")
	cmd.Flags().BoolVarP(&zipArchive, "zip", "z", false, "Create a zip archive after generating")

	return cmd
}
