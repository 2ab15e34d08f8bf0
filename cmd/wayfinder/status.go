package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mchavarria/wayfinder/internal/state"
	"github.com/mchavarria/wayfinder/pkg/models"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show planning runs",
	Long: `Display the planning runs recorded in this directory.

Shows each run's destination, phase, revision count, and, for runs
awaiting approval, the token needed to resume them.`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	dbPath := state.DefaultDBPath(cwd)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No runs yet. Start one with 'wayfinder plan'.")
		return nil
	}

	db, err := state.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open state database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate state database: %w", err)
	}

	runs, err := db.ListRuns()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs yet. Start one with 'wayfinder plan'.")
		return nil
	}

	for _, run := range runs {
		displayRun(run)
	}
	return nil
}

func displayRun(run *models.RunState) {
	fmt.Printf("%s  %s\n", run.ID, run.Request.Destination)
	fmt.Printf("  Phase: %s\n", phaseColor(run.Phase).Sprint(run.Phase))
	fmt.Printf("  Started: %s ago\n", formatDuration(time.Since(run.StartedAt)))
	if run.Revisions > 0 {
		fmt.Printf("  Revisions: %d\n", run.Revisions)
	}
	if run.Phase == models.PhaseAwaitingApproval {
		fmt.Printf("  Resume: wayfinder resume %s\n", run.SuspendToken)
	}
	if run.Result != "" {
		fmt.Printf("  Result: %s\n", run.Result)
	}
	fmt.Println()
}

func phaseColor(phase models.Phase) *color.Color {
	switch phase {
	case models.PhaseCompleted:
		return color.New(color.FgGreen)
	case models.PhaseAborted:
		return color.New(color.FgRed)
	case models.PhaseAwaitingApproval:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
	return fmt.Sprintf("%dd", int(d.Hours()/24))
}
