package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mchavarria/wayfinder/internal/approval"
	"github.com/mchavarria/wayfinder/internal/config"
	"github.com/mchavarria/wayfinder/internal/tui"
	"github.com/mchavarria/wayfinder/pkg/models"
)

var (
	planOrigin      string
	planDestination string
	planDates       string
	planTravelers   int
	planBudget      string
	planPreferences []string
	planHeadless    bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a trip",
	Long: `Plan a trip by running all six searches in parallel and
consolidating the results into a single plan for review.

In interactive mode (the default) the plan is shown for review and
you accept, revise, or abort it in place. With --headless the run
suspends after the first plan and waits for a decision file; write

  decision: accept | revise | abort
  feedback: <required for revise>

to .wayfinder/decision.yaml and the run picks it up. Either way the
run can also be finished later with 'wayfinder resume <token>'.

Examples:
  wayfinder plan --to "Barcelona, Spain" --dates "March 15-20, 2026"
  wayfinder plan --to Lisbon --dates "May 2-9" --travelers 4 --budget "$5000"
  wayfinder plan --to Kyoto --dates "Oct 1-10" --prefer food --prefer culture --headless`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planOrigin, "from", "", "Origin city")
	planCmd.Flags().StringVar(&planDestination, "to", "", "Destination city (required)")
	planCmd.Flags().StringVar(&planDates, "dates", "", "Travel dates (required)")
	planCmd.Flags().IntVar(&planTravelers, "travelers", 1, "Number of travelers")
	planCmd.Flags().StringVar(&planBudget, "budget", "", "Total budget")
	planCmd.Flags().StringArrayVar(&planPreferences, "prefer", nil, "Preference tag (repeatable)")
	planCmd.Flags().BoolVar(&planHeadless, "headless", false, "Suspend and wait for a decision file instead of the interactive review")

	planCmd.MarkFlagRequired("to")
	planCmd.MarkFlagRequired("dates")
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	driver, store, err := buildDriver(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	req := models.TripRequest{
		Origin:      planOrigin,
		Destination: planDestination,
		Dates:       planDates,
		Travelers:   planTravelers,
		Budget:      planBudget,
		Preferences: planPreferences,
	}

	ctx := context.Background()
	fmt.Printf("Searching for your trip to %s...\n", req.Destination)

	run, token, err := driver.Start(ctx, req)
	if err != nil {
		return err
	}

	if planHeadless {
		return headlessLoop(ctx, driver, run, token)
	}
	return reviewLoop(ctx, driver, run, token)
}

// reviewLoop shows each plan version interactively until the run
// reaches a terminal phase or the reviewer walks away.
func reviewLoop(ctx context.Context, driver driverIface, run *models.RunState, token string) error {
	for {
		decision, err := tui.RunReview(run.Plan)
		if errors.Is(err, tui.ErrReviewDismissed) {
			printSuspended(run, token)
			return nil
		}
		if err != nil {
			return err
		}

		run, token, err = driver.Resume(ctx, token, decision)
		if err != nil {
			return err
		}
		if run.Phase.Terminal() {
			printFinished(run)
			return nil
		}
		fmt.Printf("Revised plan ready (v%d).\n", run.Plan.Version)
	}
}

// headlessLoop waits on the decision file for each plan version.
func headlessLoop(ctx context.Context, driver driverIface, run *models.RunState, token string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	decisionPath := approval.DefaultDecisionPath(cwd)

	for {
		fmt.Println(tui.RenderPlan(run.Plan))
		printSuspended(run, token)
		fmt.Printf("Waiting for a decision at %s...\n", decisionPath)

		decision, err := approval.WaitForDecision(ctx, decisionPath)
		if err != nil {
			return err
		}

		run, token, err = driver.Resume(ctx, token, decision)
		if err != nil {
			return err
		}
		if run.Phase.Terminal() {
			printFinished(run)
			return nil
		}
	}
}

// driverIface is the slice of the workflow driver the loops use.
type driverIface interface {
	Resume(ctx context.Context, token string, decision models.ApprovalDecision) (*models.RunState, string, error)
}

func printSuspended(run *models.RunState, token string) {
	color.Yellow("Run %s is awaiting approval.", run.ID)
	fmt.Printf("Resume with: wayfinder resume %s --accept|--revise \"...\"|--abort\n", token)
}

func printFinished(run *models.RunState) {
	switch run.Phase {
	case models.PhaseCompleted:
		color.Green("Plan approved.")
		if run.Plan != nil {
			fmt.Println(tui.RenderPlan(run.Plan))
		}
	case models.PhaseAborted:
		color.Red("Run aborted: %s", run.Result)
	}
}
