package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mchavarria/wayfinder/pkg/models"
)

// ErrReviewDismissed is returned when the reviewer quits without deciding.
var ErrReviewDismissed = errors.New("review dismissed without a decision")

// ReviewModel displays a travel plan and prompts for an approval decision.
// The reviewer can scroll the plan, accept it, abort the run, or request
// a revision with free-form feedback.
type ReviewModel struct {
	planLines    []string
	width        int
	height       int
	scrollOffset int

	// enteringFeedback switches input focus to the feedback field.
	enteringFeedback bool
	feedback         textinput.Model

	decision *models.ApprovalDecision
	quit     bool

	promptStyle  lipgloss.Style
	contextStyle lipgloss.Style
}

// NewReviewModel creates a review screen for the given plan.
func NewReviewModel(plan *models.TravelPlan) *ReviewModel {
	ti := textinput.New()
	ti.Placeholder = "What should change? Mention a category to re-run its search..."
	ti.CharLimit = 500
	ti.Width = 60

	return &ReviewModel{
		planLines: strings.Split(RenderPlan(plan), "\n"),
		width:     80,
		height:    24,
		feedback:  ti,

		promptStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true),
		contextStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
	}
}

// Decision returns the decision made during the review, if any.
func (m *ReviewModel) Decision() (models.ApprovalDecision, bool) {
	if m.decision == nil {
		return models.ApprovalDecision{}, false
	}
	return *m.decision, true
}

// Init implements tea.Model.
func (m *ReviewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.feedback.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		if m.enteringFeedback {
			return m.updateFeedback(msg)
		}
		return m.updateViewing(msg)
	}

	return m, nil
}

func (m *ReviewModel) updateViewing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a", "A", "y", "Y":
		m.decision = &models.ApprovalDecision{Kind: models.DecisionAccept}
		return m, tea.Quit

	case "x", "X", "n", "N":
		m.decision = &models.ApprovalDecision{Kind: models.DecisionAbort}
		return m, tea.Quit

	case "r", "R":
		m.enteringFeedback = true
		return m, m.feedback.Focus()

	case "q", "ctrl+c", "esc":
		m.quit = true
		return m, tea.Quit

	case "up", "k":
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
	case "down", "j":
		if m.scrollOffset < m.maxOffset() {
			m.scrollOffset++
		}
	case "pgup", "b":
		m.scrollOffset = max(0, m.scrollOffset-m.viewHeight())
	case "pgdown", "f", " ":
		m.scrollOffset = min(m.maxOffset(), m.scrollOffset+m.viewHeight())
	case "home", "g":
		m.scrollOffset = 0
	case "end", "G":
		m.scrollOffset = m.maxOffset()
	}

	return m, nil
}

func (m *ReviewModel) updateFeedback(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := strings.TrimSpace(m.feedback.Value())
		if text == "" {
			return m, nil
		}
		m.decision = &models.ApprovalDecision{
			Kind:     models.DecisionRevise,
			Feedback: text,
		}
		return m, tea.Quit

	case "esc":
		m.enteringFeedback = false
		m.feedback.Reset()
		m.feedback.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.feedback, cmd = m.feedback.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *ReviewModel) View() string {
	var sb strings.Builder

	start := m.scrollOffset
	end := min(start+m.viewHeight(), len(m.planLines))
	for i := start; i < end; i++ {
		sb.WriteString(m.planLines[i])
		sb.WriteString("\n")
	}

	if len(m.planLines) > m.viewHeight() {
		indicator := fmt.Sprintf("--- %d/%d lines ---", end, len(m.planLines))
		sb.WriteString(m.contextStyle.Render(indicator))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if m.enteringFeedback {
		sb.WriteString(m.promptStyle.Render("Revision feedback:"))
		sb.WriteString("\n")
		sb.WriteString(m.feedback.View())
		sb.WriteString("\n")
		sb.WriteString(m.contextStyle.Render("(Enter to submit, Esc to cancel)"))
	} else {
		sb.WriteString(m.promptStyle.Render("[A]ccept / [R]evise / [X] abort"))
		sb.WriteString("\n")
		sb.WriteString(m.contextStyle.Render("(Use j/k or arrows to scroll, q to quit without deciding)"))
	}

	return sb.String()
}

func (m *ReviewModel) viewHeight() int {
	h := m.height - 6 // Reserve space for the prompt area
	if h < 5 {
		h = 5
	}
	return h
}

func (m *ReviewModel) maxOffset() int {
	return max(0, len(m.planLines)-m.viewHeight())
}

// RunReview runs the interactive review for a plan and returns the
// reviewer's decision. Quitting without deciding returns
// ErrReviewDismissed.
func RunReview(plan *models.TravelPlan) (models.ApprovalDecision, error) {
	model := NewReviewModel(plan)
	program := tea.NewProgram(model, tea.WithAltScreen())

	final, err := program.Run()
	if err != nil {
		return models.ApprovalDecision{}, fmt.Errorf("run review: %w", err)
	}

	m, ok := final.(*ReviewModel)
	if !ok {
		return models.ApprovalDecision{}, fmt.Errorf("unexpected model type %T", final)
	}
	decision, ok := m.Decision()
	if !ok {
		return models.ApprovalDecision{}, ErrReviewDismissed
	}
	return decision, nil
}
