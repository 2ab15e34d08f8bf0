package consolidate

import (
	"fmt"
	"strings"

	"github.com/mchavarria/wayfinder/pkg/models"
)

// sectionNames maps categories to the headings used in prompts and
// fallback text.
var sectionNames = map[models.TaskKind]string{
	models.KindFlight:      "Transportation",
	models.KindHotel:       "Accommodation",
	models.KindEvents:      "Events & Activities",
	models.KindRestaurant:  "Dining",
	models.KindAttractions: "Main Attractions",
	models.KindSocial:      "Places to Meet People",
}

func sectionPrompt(kind models.TaskKind, options []models.Option) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a travel planning specialist. Summarize these %s options with a recommendation.\n\n", sectionNames[kind])
	writeOptions(&b, options)
	return b.String()
}

func summaryPrompt(req models.TripRequest, plan, prior *models.TravelPlan, feedback string) string {
	var b strings.Builder
	b.WriteString("You are a travel planning specialist. Consolidate the following into a comprehensive, well-organized travel plan.\n\n")
	fmt.Fprintf(&b, "Destination: %s\n", req.Destination)
	fmt.Fprintf(&b, "Dates: %s\n", req.Dates)
	fmt.Fprintf(&b, "Travelers: %d\n", req.Travelers)
	if req.Budget != "" {
		fmt.Fprintf(&b, "Budget: %s\n", req.Budget)
	}
	if len(req.Preferences) > 0 {
		fmt.Fprintf(&b, "Preferences: %s\n", strings.Join(req.Preferences, ", "))
	}
	b.WriteString("\n")

	for _, k := range models.AllKinds() {
		section, ok := plan.Sections[k]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s:\n", sectionNames[k])
		if section.Status == models.SectionMissing {
			fmt.Fprintf(&b, "No data available. %s\n\n", section.Note)
			continue
		}
		b.WriteString(section.Narrative)
		b.WriteString("\n\n")
	}

	if prior != nil && feedback != "" {
		b.WriteString("A previous version of this plan was reviewed. Revise it according to this feedback, keeping everything the feedback does not touch:\n")
		fmt.Fprintf(&b, "Feedback: %s\n", feedback)
		fmt.Fprintf(&b, "\nPrevious plan summary:\n%s\n", prior.Summary)
	}

	b.WriteString("\nCreate a detailed itinerary with recommendations. Call out any categories where data is unavailable so the traveler knows the gaps.")
	return b.String()
}

func writeOptions(b *strings.Builder, options []models.Option) {
	for _, opt := range options {
		fmt.Fprintf(b, "- %s", opt.Name)
		if opt.Detail != "" {
			fmt.Fprintf(b, ": %s", opt.Detail)
		}
		if opt.Price != "" {
			fmt.Fprintf(b, " (%s)", opt.Price)
		}
		if opt.Rating != "" {
			fmt.Fprintf(b, " rated %s", opt.Rating)
		}
		if len(opt.Tags) > 0 {
			fmt.Fprintf(b, " [%s]", strings.Join(opt.Tags, ", "))
		}
		b.WriteString("\n")
	}
}

// plainNarrative renders options as a readable list when no narrator is
// available or its call failed.
func plainNarrative(options []models.Option) string {
	var b strings.Builder
	writeOptions(&b, options)
	return strings.TrimRight(b.String(), "\n")
}

// plainSummary is the deterministic plan overview used when the narrator
// is absent or failing. Gaps stay visible to the approver.
func plainSummary(req models.TripRequest, plan *models.TravelPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Travel plan for %s, %s, %d traveler(s).", req.Destination, req.Dates, req.Travelers)
	if req.Budget != "" {
		fmt.Fprintf(&b, " Budget: %s.", req.Budget)
	}
	if gaps := plan.Gaps(); len(gaps) > 0 {
		var names []string
		for _, k := range gaps {
			names = append(names, sectionNames[k])
		}
		fmt.Fprintf(&b, " Incomplete sections: %s.", strings.Join(names, ", "))
	}
	return b.String()
}
