package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bowerbird-suite/bowerbird/internal/config"
	"github.com/bowerbird-suite/bowerbird/internal/logging"
	"github.com/bowerbird-suite/bowerbird/internal/orchestrator"
	"github.com/bowerbird-suite/bowerbird/internal/output"
	"github.com/bowerbird-suite/bowerbird/internal/project"
	"github.com/bowerbird-suite/bowerbird/internal/server"
	"github.com/bowerbird-suite/bowerbird/internal/task"
)

// ServeCmd creates the 'serve' command: run the HTTP generation service.
func ServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP generation service",
		Long: `Start the HTTP server. Submit prompts with POST /generate and poll
GET /status/{task_id} until the project is ready to download.

Configuration comes from bowerbird.yml and BOWERBIRD_* environment
variables.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load("")
			if err != nil {
				output.Error(fmt.Sprintf("Configuration error: %v", err))
				os.Exit(1)
			}
			if addr == "" {
				addr = cfg.Server.Addr()
			}

			log, err := logging.New(cfg.Log)
			if err != nil {
				output.Error(fmt.Sprintf("Logging setup failed: %v", err))
				os.Exit(1)
			}
			defer log.Sync()

			store, err := project.NewStore(cfg.OutputDir, log)
			if err != nil {
				output.Error(fmt.Sprintf("Could not open output directory: %v", err))
				os.Exit(1)
			}

			tasks := task.NewStore()
			orch := orchestrator.New(orchestrator.Options{
				Store:  store,
				Tasks:  tasks,
				Logger: log,
				Force:  cfg.Force,
			})
			srv := server.New(server.Options{
				Orchestrator: orch,
				Store:        store,
				Tasks:        tasks,
				Logger:       log,
				CleanupKeep:  cfg.Cleanup.Keep,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			output.Success(fmt.Sprintf("Serving on http://%s", addr))
			output.Step(fmt.Sprintf("projects directory: %s", store.Root()))

			if err := srv.Run(ctx, addr); err != nil {
				output.Error(fmt.Sprintf("Server stopped: %v", err))
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides config)")

	return cmd
}
