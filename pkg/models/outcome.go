package models

import "time"

// TaskKind identifies one of the six search categories.
type TaskKind string

const (
	KindFlight      TaskKind = "flight"
	KindHotel       TaskKind = "hotel"
	KindEvents      TaskKind = "events"
	KindRestaurant  TaskKind = "restaurant"
	KindAttractions TaskKind = "attractions"
	KindSocial      TaskKind = "social"
)

// AllKinds returns the full set of search categories in a stable order.
// The order is for display only; nothing in the workflow depends on it.
func AllKinds() []TaskKind {
	return []TaskKind{
		KindFlight,
		KindHotel,
		KindEvents,
		KindRestaurant,
		KindAttractions,
		KindSocial,
	}
}

// Valid returns true if the kind is a known search category.
func (k TaskKind) Valid() bool {
	switch k {
	case KindFlight, KindHotel, KindEvents, KindRestaurant, KindAttractions, KindSocial:
		return true
	default:
		return false
	}
}

// Option is a single recommendation within a search result: one flight,
// one hotel, one event, and so on.
type Option struct {
	// Name identifies the option (airline, hotel name, venue).
	Name string `json:"name"`
	// Detail is a short human-readable description.
	Detail string `json:"detail,omitempty"`
	// Price is the cost as reported by the provider, free-form.
	Price string `json:"price,omitempty"`
	// Rating is the provider rating, free-form (e.g. "4.5/5").
	Rating string `json:"rating,omitempty"`
	// Tags holds category-specific attributes (amenities, cuisines).
	Tags []string `json:"tags,omitempty"`
}

// SearchResult is the successful payload of one search task.
type SearchResult struct {
	// Kind is the category this result belongs to.
	Kind TaskKind `json:"kind"`
	// Options are the concrete recommendations found.
	Options []Option `json:"options"`
	// Analysis is optional narrative commentary on the options.
	// Empty when no narrator is configured; its absence is not a failure.
	Analysis string `json:"analysis,omitempty"`
}

// Failure reasons recorded in search outcomes.
const (
	FailureTimeout  = "timeout"
	FailurePanic    = "panic"
	FailureCanceled = "canceled"
)

// Failure describes why a search task produced no result.
type Failure struct {
	// Reason is a short machine-checkable description ("timeout", "panic",
	// or a provider error message).
	Reason string `json:"reason"`
	// Retryable indicates whether re-dispatching the task could succeed.
	Retryable bool `json:"retryable"`
}

// SearchOutcome is the terminal record of one dispatched search task.
// Exactly one of Result and Failure is set.
type SearchOutcome struct {
	// Kind is the category of the task that produced this outcome.
	Kind TaskKind `json:"kind"`
	// Result holds the payload on success; nil on failure.
	Result *SearchResult `json:"result,omitempty"`
	// Failure describes the error on failure; nil on success.
	Failure *Failure `json:"failure,omitempty"`
	// Elapsed is how long the task ran before reporting.
	Elapsed time.Duration `json:"elapsed"`
}

// OK returns true if the task produced a result.
func (o SearchOutcome) OK() bool {
	return o.Result != nil && o.Failure == nil
}

// OutcomeSet maps each dispatched category to its outcome. It is complete
// only when every dispatched task has reported; completeness, not arrival
// order, gates consolidation.
type OutcomeSet map[TaskKind]SearchOutcome

// Complete returns true if the set holds an outcome for every given kind.
func (s OutcomeSet) Complete(kinds []TaskKind) bool {
	for _, k := range kinds {
		if _, ok := s[k]; !ok {
			return false
		}
	}
	return true
}

// Overlay returns a new OutcomeSet with entries from partial replacing
// entries in s for the same kind. Untouched kinds carry forward unchanged.
// Neither input is modified, so the merge is order-independent by key.
func (s OutcomeSet) Overlay(partial OutcomeSet) OutcomeSet {
	merged := make(OutcomeSet, len(s)+len(partial))
	for k, o := range s {
		merged[k] = o
	}
	for k, o := range partial {
		merged[k] = o
	}
	return merged
}

// Failed returns the kinds in the set whose tasks did not produce a result.
func (s OutcomeSet) Failed() []TaskKind {
	var failed []TaskKind
	for _, k := range AllKinds() {
		if o, ok := s[k]; ok && !o.OK() {
			failed = append(failed, k)
		}
	}
	return failed
}
