package assessment

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/dsaintel/dsaiq/internal/api"
	"github.com/dsaintel/dsaiq/internal/quiz"
	"github.com/dsaintel/dsaiq/internal/ui/components"
	"github.com/dsaintel/dsaiq/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.err != nil {
		return renderError(width, s.err)
	}
	if s.session == nil {
		return renderStatus(width, "Loading quiz...")
	}

	switch s.session.Phase() {
	case quiz.PhaseActive:
		return s.renderQuestion(width)
	case quiz.PhaseSubmitting:
		return renderStatus(width, "Submitting your answers...")
	case quiz.PhaseComplete:
		return renderStatus(width, "Submitted. Opening your dashboard...")
	case quiz.PhaseBlocked:
		return renderStatus(width, "No user id found. Returning to the start page...")
	case quiz.PhaseFailed:
		return renderError(width, s.session.Err())
	default:
		return renderStatus(width, "Loading quiz...")
	}
}

// renderQuestion renders the active question card.
func (s *Screen) renderQuestion(width int) string {
	q, ok := s.session.Current()
	if !ok {
		return ""
	}
	cw := components.ContentWidth(width)
	inner := components.CardInner(cw)

	var b strings.Builder

	progress := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Question %d of %d", s.session.Position()+1, s.session.Total()))
	timer := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Render(fmt.Sprintf("Timer: %ds", s.session.Elapsed()))

	infoLine := progress
	if gap := inner - lipgloss.Width(progress) - lipgloss.Width(timer); gap > 0 {
		infoLine += strings.Repeat(" ", gap) + timer
	} else {
		infoLine += "  " + timer
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", inner)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(inner).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Title))
	b.WriteString("\n")

	if topic := topicLine(q); topic != "" {
		b.WriteString(theme.Hint.Render(topic))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(s.options.View(inner))
	b.WriteString("\n")
	b.WriteString(s.button.View())

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(b.String(), cw))
}

// topicLine joins concept and sub-concept, skipping blanks.
func topicLine(q quiz.Question) string {
	var parts []string
	if q.Concept != "" {
		parts = append(parts, q.Concept)
	}
	if q.SubConcept != "" {
		parts = append(parts, q.SubConcept)
	}
	return strings.Join(parts, " / ")
}

// renderStatus renders a centered one-line status.
func renderStatus(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n" + text)
}

// renderError renders the failure notice.
func renderError(width int, err error) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n%s\n\nPress any key to go back.", failureText(err)))
}

// failureText turns a failure into a short user-facing sentence.
func failureText(err error) string {
	switch {
	case err == nil:
		return "Something went wrong."
	case errors.Is(err, quiz.ErrNoQuestions):
		return "No questions are available right now."
	case api.IsTransportFailure(err):
		return "Could not reach the scoring service: " + err.Error()
	default:
		return "Something went wrong: " + err.Error()
	}
}
