package landing

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/dsaintel/dsaiq/internal/analytics"
	"github.com/dsaintel/dsaiq/internal/ui/components"
	"github.com/dsaintel/dsaiq/internal/ui/layout"
	"github.com/dsaintel/dsaiq/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	compact := layout.IsCompact(width, height)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderHero(cw))

	if s.editing {
		sections = append(sections, components.Card(s.renderForm(), cw))
	} else {
		sections = append(sections, components.Card(s.menu.View(), cw))
	}

	if !compact {
		sections = append(sections, renderFeatures(cw))
		sections = append(sections, renderPreview(cw))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n"))
}

func renderHero(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Hint.Render(tagline))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(headline))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.TextDim).Render(blurb))
	return b.String()
}

func (s *Screen) renderForm() string {
	var b strings.Builder
	b.WriteString(theme.Section.Render("Change User"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Your user id keys quizzes and analytics."))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	return b.String()
}

func renderFeatures(cw int) string {
	colWidth := cw / len(features)
	cards := make([]string, 0, len(features))
	for _, f := range features {
		body := theme.Section.Render(f.Title) + "\n" +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(f.Description)
		cards = append(cards, components.Card(body, colWidth))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func renderPreview(cw int) string {
	snap := previewSnapshot()
	half := cw / 2
	inner := components.CardInner(half)

	concepts := components.NewBarChart("Concept preview", "Highlights strength across concepts",
		analytics.ConceptSeries(snap), inner)
	subs := components.NewBarChart("Sub-concept mastery preview", "Spot weaknesses instantly",
		analytics.SubConceptSeries(snap), inner)
	subs.Color = theme.Accent

	return lipgloss.JoinHorizontal(lipgloss.Top,
		components.Card(strings.TrimRight(concepts.View(), "\n"), half),
		components.Card(strings.TrimRight(subs.View(), "\n"), half),
	)
}
