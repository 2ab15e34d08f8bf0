package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mchavarria/wayfinder/internal/approval"
	"github.com/mchavarria/wayfinder/internal/consolidate"
	"github.com/mchavarria/wayfinder/internal/coordinator"
	"github.com/mchavarria/wayfinder/internal/state"
	"github.com/mchavarria/wayfinder/pkg/models"
)

// DefaultMaxRevisions bounds how many revise decisions a run accepts
// before it is forcibly aborted.
const DefaultMaxRevisions = 5

// Driver runs the planning workflow end to end: it fans searches out,
// consolidates outcomes into a plan, and suspends at the approval gate.
// Resume picks a suspended run back up, possibly in a different process.
type Driver struct {
	coord        *coordinator.Coordinator
	cons         *consolidate.Consolidator
	gate         *approval.Gate
	store        state.RunStore
	maxRevisions int
	logger       *DebugLogger
}

// Option configures a Driver.
type Option func(*Driver)

// WithMaxRevisions overrides the revision ceiling.
func WithMaxRevisions(n int) Option {
	return func(d *Driver) {
		if n > 0 {
			d.maxRevisions = n
		}
	}
}

// WithLogger attaches a debug logger to the driver.
func WithLogger(l *DebugLogger) Option {
	return func(d *Driver) {
		d.logger = l
	}
}

// New creates a Driver over the given coordinator, consolidator, gate,
// and run store.
func New(coord *coordinator.Coordinator, cons *consolidate.Consolidator, gate *approval.Gate, store state.RunStore, opts ...Option) *Driver {
	d := &Driver{
		coord:        coord,
		cons:         cons,
		gate:         gate,
		store:        store,
		maxRevisions: DefaultMaxRevisions,
		logger:       NopLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start begins a new planning run for the given request. It dispatches
// every registered search, consolidates the outcomes into a plan, and
// suspends the run awaiting approval. The returned token resumes the
// run via Resume.
func (d *Driver) Start(ctx context.Context, req models.TripRequest) (*models.RunState, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	now := time.Now()
	run := &models.RunState{
		ID:        uuid.New().String(),
		Phase:     models.PhaseInit,
		Request:   req,
		StartedAt: now,
		UpdatedAt: now,
	}
	if err := d.store.CreateRun(run); err != nil {
		return nil, "", fmt.Errorf("create run: %w", err)
	}
	d.logger.Log("run %s: started for %s", run.ID, req.Destination)

	if err := d.transition(run, models.PhaseFanOut); err != nil {
		return nil, "", err
	}
	outcomes, err := d.coord.Dispatch(ctx, req)
	if err != nil {
		return nil, "", d.fail(run, fmt.Errorf("dispatch searches: %w", err))
	}
	run.Outcomes = outcomes
	d.logger.Log("run %s: fan-out complete, %d failed", run.ID, len(outcomes.Failed()))

	if err := d.transition(run, models.PhaseConsolidating); err != nil {
		return nil, "", err
	}
	plan, err := d.cons.Consolidate(ctx, req, outcomes, nil, "")
	if err != nil {
		return nil, "", d.fail(run, fmt.Errorf("consolidate outcomes: %w", err))
	}

	token, err := d.gate.Present(run, plan)
	if err != nil {
		return nil, "", fmt.Errorf("present plan: %w", err)
	}
	d.logger.Log("run %s: suspended for approval (plan v%d)", run.ID, plan.Version)
	return run, token, nil
}

// Resume applies an approval decision to a suspended run. Accept and
// abort finish the run and return an empty token. Revise rebuilds the
// plan with the feedback folded in, re-running any searches the
// feedback asks to refresh, and suspends again with a fresh token.
func (d *Driver) Resume(ctx context.Context, token string, decision models.ApprovalDecision) (*models.RunState, string, error) {
	run, err := d.gate.Resume(token, decision)
	if err != nil {
		return nil, "", err
	}
	if run.Phase.Terminal() {
		d.logger.Log("run %s: finished (%s)", run.ID, run.Phase)
		return run, "", nil
	}

	if run.Revisions > d.maxRevisions {
		run.Phase = models.PhaseAborted
		run.Plan = nil
		run.Result = fmt.Sprintf("aborted: revision limit of %d reached", d.maxRevisions)
		run.UpdatedAt = time.Now()
		if err := d.store.UpdateRun(run); err != nil {
			return nil, "", fmt.Errorf("persist aborted run: %w", err)
		}
		d.logger.Log("run %s: revision limit reached, aborting", run.ID)
		return run, "", nil
	}

	prior := run.Plan
	d.logger.Log("run %s: revision %d with feedback %q", run.ID, run.Revisions, decision.Feedback)

	if kinds := consolidate.RefreshKinds(decision.Feedback); len(kinds) > 0 {
		d.logger.Log("run %s: re-running %d searches", run.ID, len(kinds))
		partial, err := d.coord.DispatchSubset(ctx, run.Request, kinds)
		if err != nil {
			return nil, "", d.fail(run, fmt.Errorf("re-dispatch searches: %w", err))
		}
		run.Outcomes = run.Outcomes.Overlay(partial)
	}

	plan, err := d.cons.Consolidate(ctx, run.Request, run.Outcomes, prior, decision.Feedback)
	if err != nil {
		return nil, "", d.fail(run, fmt.Errorf("consolidate revision: %w", err))
	}

	next, err := d.gate.Present(run, plan)
	if err != nil {
		return nil, "", fmt.Errorf("present revised plan: %w", err)
	}
	d.logger.Log("run %s: suspended for approval (plan v%d)", run.ID, plan.Version)
	return run, next, nil
}

// Load returns a run by ID.
func (d *Driver) Load(id string) (*models.RunState, error) {
	return d.store.GetRun(id)
}

// transition moves the run to the given phase and persists it.
func (d *Driver) transition(run *models.RunState, phase models.Phase) error {
	run.Phase = phase
	run.UpdatedAt = time.Now()
	if err := d.store.UpdateRun(run); err != nil {
		return fmt.Errorf("persist %s phase: %w", phase, err)
	}
	return nil
}

// fail marks the run aborted with the error as its result and returns
// the original error. Persistence problems during the failure path are
// logged and swallowed so the cause is not masked.
func (d *Driver) fail(run *models.RunState, cause error) error {
	run.Phase = models.PhaseAborted
	run.Result = cause.Error()
	run.UpdatedAt = time.Now()
	if err := d.store.UpdateRun(run); err != nil {
		d.logger.Log("run %s: failed to persist abort: %v", run.ID, err)
	}
	return cause
}
