package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/mchavarria/wayfinder/pkg/models"
)

// Specialist roles used as system prompts for per-category analysis.
const (
	roleFlight      = "You are a flight search specialist. Summarize the flight options and recommend the best fit for the traveler's dates and budget."
	roleHotel       = "You are a hotel search specialist. Summarize the accommodation options and recommend the best fit for the traveler's budget."
	roleEvents      = "You are an events and activities specialist. Summarize the events available during the traveler's dates."
	roleRestaurant  = "You are a restaurant and dining specialist. Summarize the dining options with recommendations."
	roleAttractions = "You are a local attractions specialist. Describe the must-see places, including admission cost and recommended visit duration."
	roleSocial      = "You are a local social life specialist. Describe places where travelers can meet locals and other travelers, favoring genuine local experiences over tourist-only venues."
)

// providerSearcher backs one category with a fixture provider and an
// optional analyst for commentary.
type providerSearcher struct {
	kind     models.TaskKind
	provider func(models.TripRequest) []models.Option
	analyst  Analyst
	role     string
}

func (s *providerSearcher) Kind() models.TaskKind {
	return s.kind
}

func (s *providerSearcher) Search(ctx context.Context, req models.TripRequest) (*models.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	options := s.provider(req)
	result := &models.SearchResult{
		Kind:    s.kind,
		Options: options,
	}

	if s.analyst != nil {
		analysis, err := s.analyst.RunWithSystem(ctx, s.role, s.analysisPrompt(req, options))
		if err == nil {
			result.Analysis = analysis
		}
		// Analysis is advisory; on error the data still stands and the
		// consolidator narrates the section itself.
	}

	return result, nil
}

func (s *providerSearcher) analysisPrompt(req models.TripRequest, options []models.Option) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Destination: %s\n", req.Destination)
	fmt.Fprintf(&b, "Dates: %s\n", req.Dates)
	fmt.Fprintf(&b, "Travelers: %d\n", req.Travelers)
	if req.Budget != "" {
		fmt.Fprintf(&b, "Budget: %s\n", req.Budget)
	}
	if len(req.Preferences) > 0 {
		fmt.Fprintf(&b, "Preferences: %s\n", strings.Join(req.Preferences, ", "))
	}
	b.WriteString("\nSearch results:\n")
	for _, opt := range options {
		fmt.Fprintf(&b, "- %s", opt.Name)
		if opt.Detail != "" {
			fmt.Fprintf(&b, ": %s", opt.Detail)
		}
		if opt.Price != "" {
			fmt.Fprintf(&b, " (%s)", opt.Price)
		}
		if opt.Rating != "" {
			fmt.Fprintf(&b, " rated %s", opt.Rating)
		}
		if len(opt.Tags) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(opt.Tags, ", "))
		}
		b.WriteString("\n")
	}
	b.WriteString("\nProvide a short summary with recommendations:")
	return b.String()
}
