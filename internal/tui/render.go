// Package tui provides the terminal user interface for Wayfinder.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mchavarria/wayfinder/pkg/models"
)

var (
	planTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 2)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("12")).
				Bold(true)

	degradedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// sectionTitles maps task kinds to display headings, in presentation order.
var sectionTitles = []struct {
	kind  models.TaskKind
	title string
}{
	{models.KindFlight, "Transportation"},
	{models.KindHotel, "Accommodation"},
	{models.KindEvents, "Events & Activities"},
	{models.KindRestaurant, "Dining"},
	{models.KindAttractions, "Main Attractions"},
	{models.KindSocial, "Places to Meet People"},
}

// RenderPlan formats a travel plan for terminal display.
func RenderPlan(plan *models.TravelPlan) string {
	if plan == nil {
		return "(no plan)"
	}

	var sb strings.Builder

	title := fmt.Sprintf(" Travel Plan: %s (v%d) ", plan.Request.Destination, plan.Version)
	sb.WriteString(planTitleStyle.Render(title))
	sb.WriteString("\n\n")

	if plan.Summary != "" {
		sb.WriteString(plan.Summary)
		sb.WriteString("\n\n")
	}

	for _, entry := range sectionTitles {
		section, ok := plan.Section(entry.kind)
		if !ok {
			continue
		}
		sb.WriteString(renderSection(entry.title, section))
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderSection(title string, section models.PlanSection) string {
	var sb strings.Builder

	sb.WriteString(sectionHeaderStyle.Render("## " + title))
	sb.WriteString("\n")

	switch section.Status {
	case models.SectionMissing:
		sb.WriteString(missingStyle.Render("unavailable: " + section.Note))
		sb.WriteString("\n")
		return sb.String()
	case models.SectionDegraded:
		sb.WriteString(degradedStyle.Render("degraded: " + section.Note))
		sb.WriteString("\n")
	}

	for _, opt := range section.Options {
		line := "  - " + opt.Name
		if opt.Price != "" {
			line += " (" + opt.Price + ")"
		}
		if opt.Rating != "" {
			line += " " + opt.Rating
		}
		sb.WriteString(optionStyle.Render(line))
		sb.WriteString("\n")
	}

	if section.Narrative != "" {
		sb.WriteString(section.Narrative)
		sb.WriteString("\n")
	}

	return sb.String()
}
