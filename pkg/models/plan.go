package models

import "time"

// SectionStatus describes how much data backs a plan section.
type SectionStatus string

const (
	// SectionComplete means the search succeeded and narrative was produced.
	SectionComplete SectionStatus = "complete"
	// SectionDegraded means data exists but the narrative step failed,
	// so the section carries raw options without commentary.
	SectionDegraded SectionStatus = "degraded"
	// SectionMissing means the search task failed; the section explains why.
	SectionMissing SectionStatus = "missing"
)

// Valid returns true if the status is a known value.
func (s SectionStatus) Valid() bool {
	switch s {
	case SectionComplete, SectionDegraded, SectionMissing:
		return true
	default:
		return false
	}
}

// PlanSection is one category's slice of the consolidated plan.
type PlanSection struct {
	// Kind is the search category this section covers.
	Kind TaskKind `json:"kind"`
	// Status records whether the section is complete, degraded, or missing.
	Status SectionStatus `json:"status"`
	// Options are the recommendations carried over from the search result.
	Options []Option `json:"options,omitempty"`
	// Narrative is the commentary for this section.
	Narrative string `json:"narrative,omitempty"`
	// Note explains gaps: the failure reason for missing sections, or why
	// a section is degraded.
	Note string `json:"note,omitempty"`
}

// TravelPlan is the consolidated artifact produced from a complete
// OutcomeSet. Plans are immutable: each revision is a new value with
// Version incremented and PriorFeedback recording what prompted it.
type TravelPlan struct {
	// ID identifies the plan lineage; all revisions share it.
	ID string `json:"id"`
	// Version starts at 1 and increments per revision.
	Version int `json:"version"`
	// Request is the trip request the plan was built for.
	Request TripRequest `json:"request"`
	// Sections holds exactly one entry per dispatched category.
	Sections map[TaskKind]PlanSection `json:"sections"`
	// Summary is the narrative overview tying the sections together.
	Summary string `json:"summary"`
	// PriorFeedback is the approver feedback that produced this revision.
	// Empty on the first version.
	PriorFeedback string `json:"prior_feedback,omitempty"`
	// CreatedAt is when this version was consolidated.
	CreatedAt time.Time `json:"created_at"`
}

// Section returns the section for the given kind, if present.
func (p *TravelPlan) Section(kind TaskKind) (PlanSection, bool) {
	s, ok := p.Sections[kind]
	return s, ok
}

// Gaps returns the kinds whose sections are not complete, in AllKinds order.
func (p *TravelPlan) Gaps() []TaskKind {
	var gaps []TaskKind
	for _, k := range AllKinds() {
		if s, ok := p.Sections[k]; ok && s.Status != SectionComplete {
			gaps = append(gaps, k)
		}
	}
	return gaps
}
