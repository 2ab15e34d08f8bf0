// Package consolidate merges a complete outcome set into a single travel
// plan, tolerating failed categories by marking them instead of dropping
// them.
package consolidate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mchavarria/wayfinder/pkg/models"
)

// ErrIncompleteOutcomes is returned when consolidation is attempted before
// every dispatched task has reported.
var ErrIncompleteOutcomes = errors.New("outcome set is incomplete")

// Narrator generates narrative text from a structured prompt. *api.Runner
// satisfies this. Narrator failures degrade the plan; they never fail the
// consolidation.
type Narrator interface {
	Run(ctx context.Context, prompt string) (string, error)
}

// Consolidator builds TravelPlan versions from outcome sets.
type Consolidator struct {
	kinds    []models.TaskKind
	narrator Narrator
}

// New creates a Consolidator expecting outcomes for the given kinds.
// narrator may be nil; sections then carry deterministic summaries built
// from the raw options.
func New(kinds []models.TaskKind, narrator Narrator) *Consolidator {
	return &Consolidator{kinds: kinds, narrator: narrator}
}

// Consolidate produces a new immutable plan version from outcomes.
//
// On a first consolidation both prior and feedback are empty. On a
// revision both must be present: feedback is layered as an adjustment
// instruction over the same outcome set. Re-running searches is the
// driver's job, not this method's.
//
// Every expected category appears in the result exactly once, tagged
// complete, degraded, or missing.
func (c *Consolidator) Consolidate(ctx context.Context, req models.TripRequest, outcomes models.OutcomeSet, prior *models.TravelPlan, feedback string) (*models.TravelPlan, error) {
	if (prior == nil) != (feedback == "") {
		return nil, errors.New("revision requires both a prior plan and feedback")
	}
	if !outcomes.Complete(c.kinds) {
		var missing []string
		for _, k := range c.kinds {
			if _, ok := outcomes[k]; !ok {
				missing = append(missing, string(k))
			}
		}
		return nil, fmt.Errorf("%w: no outcome for %s", ErrIncompleteOutcomes, strings.Join(missing, ", "))
	}

	sections := make(map[models.TaskKind]models.PlanSection, len(c.kinds))
	for _, kind := range c.kinds {
		sections[kind] = c.buildSection(ctx, kind, outcomes[kind])
	}

	plan := &models.TravelPlan{
		ID:            uuid.New().String(),
		Version:       1,
		Request:       req,
		Sections:      sections,
		PriorFeedback: feedback,
		CreatedAt:     time.Now(),
	}
	if prior != nil {
		plan.ID = prior.ID
		plan.Version = prior.Version + 1
	}

	plan.Summary = c.summarize(ctx, req, plan, prior, feedback)
	return plan, nil
}

// buildSection maps one outcome to its plan section. Failed tasks become
// missing sections with a human-readable explanation; narrator errors
// degrade the section but keep its data.
func (c *Consolidator) buildSection(ctx context.Context, kind models.TaskKind, outcome models.SearchOutcome) models.PlanSection {
	if !outcome.OK() {
		note := fmt.Sprintf("%s search failed: %s", kind, outcome.Failure.Reason)
		if outcome.Failure.Retryable {
			note += " (a retry may succeed)"
		}
		return models.PlanSection{
			Kind:   kind,
			Status: models.SectionMissing,
			Note:   note,
		}
	}

	section := models.PlanSection{
		Kind:    kind,
		Status:  models.SectionComplete,
		Options: outcome.Result.Options,
	}

	switch {
	case outcome.Result.Analysis != "":
		section.Narrative = outcome.Result.Analysis
	case c.narrator != nil:
		narrative, err := c.narrator.Run(ctx, sectionPrompt(kind, outcome.Result.Options))
		if err != nil {
			section.Status = models.SectionDegraded
			section.Narrative = plainNarrative(outcome.Result.Options)
			section.Note = fmt.Sprintf("narrative generation failed: %v", err)
		} else {
			section.Narrative = narrative
		}
	default:
		section.Narrative = plainNarrative(outcome.Result.Options)
	}
	return section
}

// summarize produces the plan-level overview. A narrator failure falls
// back to a deterministic summary; it never fails the plan.
func (c *Consolidator) summarize(ctx context.Context, req models.TripRequest, plan, prior *models.TravelPlan, feedback string) string {
	if c.narrator == nil {
		return plainSummary(req, plan)
	}
	summary, err := c.narrator.Run(ctx, summaryPrompt(req, plan, prior, feedback))
	if err != nil {
		return plainSummary(req, plan)
	}
	return summary
}
