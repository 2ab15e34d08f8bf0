// Package models defines the core data types shared across Wayfinder
// components: trip requests, search outcomes, travel plans, and run state.
package models

import (
	"fmt"
	"strings"
)

// ValidationError describes why a TripRequest was rejected before dispatch.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid trip request: %s %s", e.Field, e.Reason)
}

// TripRequest describes a single trip to plan. It is created once per run
// and never mutated; every search task reads the same value.
type TripRequest struct {
	// Origin is the departure city.
	Origin string `json:"origin"`
	// Destination is the target city and country.
	Destination string `json:"destination"`
	// Dates is the travel date range, e.g. "March 15-20, 2026".
	Dates string `json:"dates"`
	// Travelers is the number of people traveling.
	Travelers int `json:"travelers"`
	// Budget is the spending ceiling for the trip, e.g. "$2000 total".
	Budget string `json:"budget"`
	// Preferences holds free-form preference tags ("vegetarian", "museums").
	Preferences []string `json:"preferences,omitempty"`
}

// Validate checks that the request is well-formed enough to dispatch
// search tasks. It returns a *ValidationError describing the first
// problem found, or nil.
func (r TripRequest) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return &ValidationError{Field: "destination", Reason: "is required"}
	}
	if strings.TrimSpace(r.Dates) == "" {
		return &ValidationError{Field: "dates", Reason: "is required"}
	}
	if r.Travelers < 1 {
		return &ValidationError{Field: "travelers", Reason: "must be at least 1"}
	}
	for _, p := range r.Preferences {
		if strings.TrimSpace(p) == "" {
			return &ValidationError{Field: "preferences", Reason: "must not contain empty tags"}
		}
	}
	return nil
}
