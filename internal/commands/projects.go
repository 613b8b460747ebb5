package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bowerbird-suite/bowerbird/internal/config"
	"github.com/bowerbird-suite/bowerbird/internal/output"
	"github.com/bowerbird-suite/bowerbird/internal/project"
)

// ProjectsCmd creates the 'projects' command group for managing generated
// projects on disk.
func ProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage generated projects",
	}

	cmd.AddCommand(projectsListCmd())
	cmd.AddCommand(projectsInfoCmd())
	cmd.AddCommand(projectsDeleteCmd())
	cmd.AddCommand(projectsCleanupCmd())

	return cmd
}

// openStore loads config and opens the project store for a subcommand.
func openStore() *project.Store {
	cfg, err := config.Load("")
	if err != nil {
		output.Error(fmt.Sprintf("Configuration error: %v", err))
		os.Exit(1)
	}
	store, err := project.NewStore(cfg.OutputDir, zap.NewNop())
	if err != nil {
		output.Error(fmt.Sprintf("Could not open output directory: %v", err))
		os.Exit(1)
	}
	return store
}

func projectsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List generated projects, newest first",
		Run: func(cmd *cobra.Command, args []string) {
			store := openStore()
			infos, err := store.List()
			if err != nil {
				output.Error(fmt.Sprintf("Could not list projects: %v", err))
				os.Exit(1)
			}
			if len(infos) == 0 {
				output.Info("No projects generated yet")
				return
			}
			output.Info(fmt.Sprintf("%d project(s) in %s", len(infos), store.Root()))
			for _, info := range infos {
				output.Step(fmt.Sprintf("%s  (%d files, %.2f MB, %s)",
					info.Name, info.FileCount, info.SizeMB,
					info.CreatedAt.Format("2006-01-02 15:04")))
			}
		},
	}
}

func projectsInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <name>",
		Short: "Show details for one project",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			store := openStore()
			info, err := store.Info(args[0])
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			output.Info(fmt.Sprintf("%s  (%d files, %.2f MB)", info.Name, info.FileCount, info.SizeMB))
			output.Step("path: " + info.Path)
			for _, entry := range info.Structure {
				output.Step(entry)
			}
		},
	}
}

func projectsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a project and its archive",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			store := openStore()
			if err := store.Delete(args[0]); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			output.Success("Deleted project: " + args[0])
		},
	}
}

func projectsCleanupCmd() *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete the oldest projects beyond the retention count",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load("")
			if err != nil {
				output.Error(fmt.Sprintf("Configuration error: %v", err))
				os.Exit(1)
			}
			if !cmd.Flags().Changed("keep") {
				keep = cfg.Cleanup.Keep
			}

			store, err := project.NewStore(cfg.OutputDir, zap.NewNop())
			if err != nil {
				output.Error(fmt.Sprintf("Could not open output directory: %v", err))
				os.Exit(1)
			}

			removed, err := store.Cleanup(keep)
			if err != nil {
				output.Error(fmt.Sprintf("Cleanup failed: %v", err))
				os.Exit(1)
			}
			if len(removed) == 0 {
				output.Info("Nothing to clean up")
				return
			}
			output.Success(fmt.Sprintf("Removed %d project(s)", len(removed)))
			for _, name := range removed {
				output.Step(name)
			}
		},
	}

	cmd.Flags().IntVarP(&keep, "keep", "k", 10, "Number of newest projects to keep")

	return cmd
}
