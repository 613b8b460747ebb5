package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bowerbird-suite/bowerbird/internal/output"
	"github.com/bowerbird-suite/bowerbird/internal/planner"
)

// PlanCmd creates the 'plan' command: analyze a prompt and print the
// generation plan without writing anything.
func PlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan <prompt>",
		Short: "Show the generation plan for a prompt without writing files",
		Long: `Analyze a prompt and print the resulting plan as YAML.

Example:
  bowerbird plan "Create a task management app with React and PostgreSQL"`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			prompt := strings.Join(args, " ")
			plan := planner.CreatePlan(prompt)

			data, err := yaml.Marshal(plan)
			if err != nil {
				output.Error(fmt.Sprintf("Could not render plan: %v", err))
				os.Exit(1)
			}

			output.Info(fmt.Sprintf("Plan for %q (%d files, complexity %d/10)",
				plan.ProjectName, len(plan.Files), plan.EstimatedComplexity))
			fmt.Print(string(data))
		},
	}
}
