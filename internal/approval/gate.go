// Package approval implements the human-in-the-loop gate: presenting a
// plan suspends the workflow behind an opaque token, and a later resume
// call with that token applies exactly one decision.
package approval

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mchavarria/wayfinder/internal/state"
	"github.com/mchavarria/wayfinder/pkg/models"
)

// ErrStaleToken is returned when a resume call carries a token that does
// not identify the current suspend point. Stale decisions are rejected,
// never silently applied.
var ErrStaleToken = errors.New("stale or unknown suspend token")

// Gate suspends and resumes runs around an external approval decision.
// While a run is suspended the gate holds nothing for it; the persisted
// run row is the whole suspend state, so resume can happen from another
// process days later.
type Gate struct {
	store state.RunStore
}

// NewGate creates a Gate backed by the given run store.
func NewGate(store state.RunStore) *Gate {
	return &Gate{store: store}
}

// Present records the plan on the run, transitions it to awaiting
// approval, and persists it. The returned token identifies this suspend
// point; any token from an earlier presentation becomes permanently stale.
func (g *Gate) Present(run *models.RunState, plan *models.TravelPlan) (string, error) {
	if run.Phase.Terminal() {
		return "", fmt.Errorf("cannot present plan for run %s in terminal phase %s", run.ID, run.Phase)
	}

	token := uuid.New().String()
	run.Plan = plan
	run.Phase = models.PhaseAwaitingApproval
	run.SuspendToken = token
	run.UpdatedAt = time.Now()

	if err := g.store.UpdateRun(run); err != nil {
		return "", fmt.Errorf("persist suspended run: %w", err)
	}
	return token, nil
}

// Resume validates the token against the current suspend point, consumes
// it, and applies the decision's phase transition:
//
//   - accept: the run completes with the current plan as final output
//   - revise: the run returns to consolidating with the revision counted
//   - abort: the run terminates, discarding the plan
//
// The updated run is persisted and returned. A second resume with the
// same token fails with ErrStaleToken.
func (g *Gate) Resume(token string, decision models.ApprovalDecision) (*models.RunState, error) {
	if err := decision.Validate(); err != nil {
		return nil, err
	}

	run, err := g.store.GetRunByToken(token)
	if errors.Is(err, state.ErrRunNotFound) {
		return nil, ErrStaleToken
	}
	if err != nil {
		return nil, fmt.Errorf("load suspended run: %w", err)
	}
	if run.Phase != models.PhaseAwaitingApproval || run.SuspendToken != token {
		return nil, ErrStaleToken
	}

	run.SuspendToken = ""
	switch decision.Kind {
	case models.DecisionAccept:
		run.Phase = models.PhaseCompleted
		run.Result = "plan approved"
	case models.DecisionAbort:
		run.Phase = models.PhaseAborted
		run.Plan = nil
		run.Result = "aborted by approver"
	case models.DecisionRevise:
		run.Phase = models.PhaseConsolidating
		run.Revisions++
	}
	run.UpdatedAt = time.Now()

	if err := g.store.UpdateRun(run); err != nil {
		return nil, fmt.Errorf("persist resumed run: %w", err)
	}
	return run, nil
}
