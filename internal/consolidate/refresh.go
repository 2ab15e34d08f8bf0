package consolidate

import (
	"strings"

	"github.com/mchavarria/wayfinder/pkg/models"
)

// refreshVerbs are phrases that mark feedback as a request for new data
// rather than an adjustment of the existing results.
var refreshVerbs = []string{
	"try again",
	"search again",
	"look again",
	"re-run",
	"rerun",
	"re-search",
	"refresh",
	"retry",
	"new search",
	"fresh data",
	"new data",
}

// kindKeywords maps category mentions in feedback text to task kinds.
var kindKeywords = map[models.TaskKind][]string{
	models.KindFlight:      {"flight", "flights", "airline"},
	models.KindHotel:       {"hotel", "hotels", "accommodation", "lodging"},
	models.KindEvents:      {"event", "events", "activities"},
	models.KindRestaurant:  {"restaurant", "restaurants", "dining", "food"},
	models.KindAttractions: {"attraction", "attractions", "sights", "sightseeing"},
	models.KindSocial:      {"social", "meet people", "meetup", "meetups"},
}

// RefreshKinds inspects revision feedback for explicit requests to re-run
// searches and returns the affected categories in display order. Feedback
// that merely adjusts the plan ("prefer cheaper hotels") returns nothing;
// the consolidator then works from the existing outcomes.
func RefreshKinds(feedback string) []models.TaskKind {
	text := strings.ToLower(feedback)

	wantsRefresh := false
	for _, verb := range refreshVerbs {
		if strings.Contains(text, verb) {
			wantsRefresh = true
			break
		}
	}
	if !wantsRefresh {
		return nil
	}

	var kinds []models.TaskKind
	for _, k := range models.AllKinds() {
		for _, keyword := range kindKeywords[k] {
			if strings.Contains(text, keyword) {
				kinds = append(kinds, k)
				break
			}
		}
	}
	return kinds
}
