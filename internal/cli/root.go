package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dinnerplanner",
	Short: "Plan dinners through the meal-planning webhook",
	Long: `dinnerplanner serves the dinner planner web UI and JSON API, which
validate requests and relay them to an automation webhook. The plan command
is a terminal client for a running server.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
