package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wayfinder",
	Short: "Parallel trip planning with human approval",
	Long: `Wayfinder plans trips by fanning out six parallel searches
(flights, hotels, events, restaurants, attractions, and places to
meet people), consolidating whatever comes back into a single plan,
and pausing for human approval.

Feedback on a plan produces a revised version; mentioning a category
in the feedback (e.g. "search again for hotels") re-runs just that
search. Suspended runs survive process restarts and can be resumed
from another terminal with 'wayfinder resume'.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
