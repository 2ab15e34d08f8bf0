package models

import "time"

// Phase is the workflow driver's position in a run.
type Phase string

const (
	// PhaseInit is the initial phase before any task has been dispatched.
	PhaseInit Phase = "init"
	// PhaseFanOut means search tasks are in flight.
	PhaseFanOut Phase = "fan_out"
	// PhaseConsolidating means outcomes are being merged into a plan.
	PhaseConsolidating Phase = "consolidating"
	// PhaseAwaitingApproval means the run is suspended pending a decision.
	PhaseAwaitingApproval Phase = "awaiting_approval"
	// PhaseCompleted is the terminal success phase.
	PhaseCompleted Phase = "completed"
	// PhaseAborted is the terminal cancellation phase.
	PhaseAborted Phase = "aborted"
)

// Valid returns true if the phase is a known value.
func (p Phase) Valid() bool {
	switch p {
	case PhaseInit, PhaseFanOut, PhaseConsolidating,
		PhaseAwaitingApproval, PhaseCompleted, PhaseAborted:
		return true
	default:
		return false
	}
}

// Terminal returns true if the run can make no further progress.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseAborted
}

// DecisionKind is the approver's verdict on a presented plan.
type DecisionKind string

const (
	// DecisionAccept approves the current plan as final.
	DecisionAccept DecisionKind = "accept"
	// DecisionRevise requests changes; Feedback carries the instructions.
	DecisionRevise DecisionKind = "revise"
	// DecisionAbort cancels the run, discarding the plan.
	DecisionAbort DecisionKind = "abort"
)

// ApprovalDecision is consumed exactly once per suspend point.
type ApprovalDecision struct {
	Kind     DecisionKind `json:"kind" yaml:"decision"`
	Feedback string       `json:"feedback,omitempty" yaml:"feedback,omitempty"`
}

// Validate checks the decision is well-formed. Revisions require feedback;
// the other kinds must not carry any.
func (d ApprovalDecision) Validate() error {
	switch d.Kind {
	case DecisionAccept, DecisionAbort:
		return nil
	case DecisionRevise:
		if d.Feedback == "" {
			return &ValidationError{Field: "feedback", Reason: "is required for revise"}
		}
		return nil
	default:
		return &ValidationError{Field: "decision", Reason: "must be accept, revise, or abort"}
	}
}

// RunState is the complete per-execution record, owned by the workflow
// driver and persisted across the approval suspension. It is the only
// state a suspended run holds.
type RunState struct {
	// ID identifies the run.
	ID string `json:"id"`
	// Phase is the driver's current position.
	Phase Phase `json:"phase"`
	// Request is the trip request the run was started with.
	Request TripRequest `json:"request"`
	// Outcomes is the latest (possibly overlaid) outcome set.
	Outcomes OutcomeSet `json:"outcomes,omitempty"`
	// Plan is the current plan version, nil before first consolidation.
	Plan *TravelPlan `json:"plan,omitempty"`
	// Revisions counts how many revise decisions have been applied.
	Revisions int `json:"revisions"`
	// SuspendToken identifies the current suspend point. Empty unless the
	// run is awaiting approval; superseded tokens are permanently stale.
	SuspendToken string `json:"suspend_token,omitempty"`
	// Result is the terminal report: why the run completed or aborted.
	Result string `json:"result,omitempty"`
	// StartedAt is when the run was created.
	StartedAt time.Time `json:"started_at"`
	// UpdatedAt is when the run last changed phase or content.
	UpdatedAt time.Time `json:"updated_at"`
}
