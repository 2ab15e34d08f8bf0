package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mchavarria/wayfinder/pkg/models"
)

// fakeAnalyst records prompts and returns a canned response or error.
type fakeAnalyst struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeAnalyst) RunWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.prompts = append(f.prompts, userPrompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testRequest() models.TripRequest {
	return models.TripRequest{
		Origin:      "Dublin, Ireland",
		Destination: "Barcelona, Spain",
		Dates:       "March 15-20, 2026",
		Travelers:   2,
		Budget:      "$2000 total",
		Preferences: []string{"museums"},
	}
}

func TestDefault_CoversAllKinds(t *testing.T) {
	searchers := Default(nil)
	if len(searchers) != len(models.AllKinds()) {
		t.Fatalf("Default() returned %d searchers, want %d", len(searchers), len(models.AllKinds()))
	}

	seen := make(map[models.TaskKind]bool)
	for _, s := range searchers {
		if seen[s.Kind()] {
			t.Errorf("Default() returned duplicate searcher for kind %q", s.Kind())
		}
		seen[s.Kind()] = true
	}
	for _, k := range models.AllKinds() {
		if !seen[k] {
			t.Errorf("Default() missing searcher for kind %q", k)
		}
	}
}

func TestProviderSearcher_ReturnsOptions(t *testing.T) {
	for _, s := range Default(nil) {
		result, err := s.Search(context.Background(), testRequest())
		if err != nil {
			t.Fatalf("Search(%s) error = %v", s.Kind(), err)
		}
		if result.Kind != s.Kind() {
			t.Errorf("result.Kind = %q, want %q", result.Kind, s.Kind())
		}
		if len(result.Options) == 0 {
			t.Errorf("Search(%s) returned no options", s.Kind())
		}
		if result.Analysis != "" {
			t.Errorf("Search(%s) without analyst produced analysis %q", s.Kind(), result.Analysis)
		}
	}
}

func TestProviderSearcher_AttachesAnalysis(t *testing.T) {
	analyst := &fakeAnalyst{response: "book the morning flight"}
	searchers := Default(analyst)

	result, err := searchers[0].Search(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Analysis != "book the morning flight" {
		t.Errorf("result.Analysis = %q, want analyst response", result.Analysis)
	}
	if len(analyst.prompts) != 1 {
		t.Fatalf("analyst received %d prompts, want 1", len(analyst.prompts))
	}
	if !strings.Contains(analyst.prompts[0], "Barcelona, Spain") {
		t.Errorf("analysis prompt missing destination: %q", analyst.prompts[0])
	}
	if !strings.Contains(analyst.prompts[0], "Ryanair") {
		t.Errorf("analysis prompt missing option data: %q", analyst.prompts[0])
	}
}

func TestProviderSearcher_AnalystFailureIsNotFatal(t *testing.T) {
	analyst := &fakeAnalyst{err: errors.New("provider unavailable")}
	searchers := Default(analyst)

	result, err := searchers[0].Search(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Search() error = %v, want nil when only analysis fails", err)
	}
	if result.Analysis != "" {
		t.Errorf("result.Analysis = %q, want empty on analyst failure", result.Analysis)
	}
	if len(result.Options) == 0 {
		t.Error("Search() dropped options on analyst failure")
	}
}

func TestProviderSearcher_HonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	searchers := Default(nil)
	if _, err := searchers[0].Search(ctx, testRequest()); err == nil {
		t.Error("Search() with cancelled context error = nil, want error")
	}
}
