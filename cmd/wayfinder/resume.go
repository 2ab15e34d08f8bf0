package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mchavarria/wayfinder/internal/approval"
	"github.com/mchavarria/wayfinder/internal/config"
	"github.com/mchavarria/wayfinder/internal/tui"
	"github.com/mchavarria/wayfinder/pkg/models"
)

var (
	resumeAccept   bool
	resumeAbort    bool
	resumeFeedback string
)

var resumeCmd = &cobra.Command{
	Use:   "resume <token>",
	Short: "Resume a suspended run",
	Long: `Apply an approval decision to a run suspended at the review
gate. The token was printed when the run suspended and is also shown
by 'wayfinder status'.

With no decision flag the plan is shown for interactive review.
A revision suspends the run again with a fresh token; mentioning a
category in the feedback re-runs just that search.

Examples:
  wayfinder resume 4f7c... --accept
  wayfinder resume 4f7c... --revise "find cheaper hotels"
  wayfinder resume 4f7c... --abort
  wayfinder resume 4f7c...   # interactive review`,
	Args: cobra.ExactArgs(1),
	RunE: runResume,
}

func init() {
	resumeCmd.Flags().BoolVar(&resumeAccept, "accept", false, "Accept the plan")
	resumeCmd.Flags().BoolVar(&resumeAbort, "abort", false, "Abort the run")
	resumeCmd.Flags().StringVar(&resumeFeedback, "revise", "", "Request a revision with this feedback")
	resumeCmd.MarkFlagsMutuallyExclusive("accept", "abort", "revise")
}

func runResume(cmd *cobra.Command, args []string) error {
	token := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	driver, store, err := buildDriver(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	var decision models.ApprovalDecision
	switch {
	case resumeAccept:
		decision = models.ApprovalDecision{Kind: models.DecisionAccept}
	case resumeAbort:
		decision = models.ApprovalDecision{Kind: models.DecisionAbort}
	case resumeFeedback != "":
		decision = models.ApprovalDecision{Kind: models.DecisionRevise, Feedback: resumeFeedback}
	default:
		// No decision flag: show the plan and review interactively.
		run, err := store.GetRunByToken(token)
		if err != nil {
			return staleTokenHint(err)
		}
		return reviewLoop(ctx, driver, run, token)
	}

	run, next, err := driver.Resume(ctx, token, decision)
	if err != nil {
		return staleTokenHint(err)
	}
	if run.Phase.Terminal() {
		printFinished(run)
		return nil
	}

	fmt.Println(tui.RenderPlan(run.Plan))
	printSuspended(run, next)
	return nil
}

func staleTokenHint(err error) error {
	if errors.Is(err, approval.ErrStaleToken) {
		return fmt.Errorf("%w\nThe run may have been resumed already or suspended again with a new token. Check 'wayfinder status'", err)
	}
	return err
}
