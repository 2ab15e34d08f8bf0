// Package search implements the six trip search tasks behind a uniform
// interface. Each searcher combines fixture provider data with optional
// LLM commentary; the coordinator treats them all identically.
package search

import (
	"context"

	"github.com/mchavarria/wayfinder/pkg/models"
)

// Searcher is the capability every search task variant implements.
// Implementations must honor ctx cancellation and return either a result
// or an error; they never see each other's outcomes.
type Searcher interface {
	// Kind identifies the category this searcher covers.
	Kind() models.TaskKind
	// Search produces recommendations for the given trip request.
	Search(ctx context.Context, req models.TripRequest) (*models.SearchResult, error)
}

// Analyst produces narrative commentary for a searcher's options.
// *api.Runner satisfies this. Analysis is advisory: searchers that cannot
// obtain commentary still return their data.
type Analyst interface {
	RunWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Default returns all six searchers backed by the fixture providers.
// analyst may be nil, in which case results carry no analysis text.
func Default(analyst Analyst) []Searcher {
	return []Searcher{
		&providerSearcher{kind: models.KindFlight, provider: flightOptions, analyst: analyst, role: roleFlight},
		&providerSearcher{kind: models.KindHotel, provider: hotelOptions, analyst: analyst, role: roleHotel},
		&providerSearcher{kind: models.KindEvents, provider: eventOptions, analyst: analyst, role: roleEvents},
		&providerSearcher{kind: models.KindRestaurant, provider: restaurantOptions, analyst: analyst, role: roleRestaurant},
		&providerSearcher{kind: models.KindAttractions, provider: attractionOptions, analyst: analyst, role: roleAttractions},
		&providerSearcher{kind: models.KindSocial, provider: socialOptions, analyst: analyst, role: roleSocial},
	}
}
