package dashboard

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/dsaintel/dsaiq/internal/analytics"
	"github.com/dsaintel/dsaiq/internal/ui/components"
	"github.com/dsaintel/dsaiq/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	content := Render(s.DashboardView(), width)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	s.lines = len(lines)
	s.height = max(height, 0)
	s.clampOffset()

	end := min(s.offset+s.height, len(lines))
	return strings.Join(lines[s.offset:end], "\n")
}

// Render draws a dashboard view at the given width without scrolling.
func Render(v analytics.DashboardView, width int) string {
	cw := components.ContentWidth(width)

	switch v.State {
	case analytics.ViewMissingIdentity:
		return renderCentered(width, v.Message, theme.Text) + "\n\n" +
			renderCentered(width, "Press s to start an assessment.", theme.TextDim)
	case analytics.ViewLoading, analytics.ViewIncomplete:
		return renderCentered(width, v.Message, theme.TextDim)
	case analytics.ViewFailed:
		return renderCentered(width, "Could not load analytics: "+errText(v.Err), theme.Error)
	case analytics.ViewMessage:
		return renderCentered(width, v.Message, theme.Text)
	}

	var sections []string
	sections = append(sections, renderOverall(v.Overall, cw))
	sections = append(sections, components.Card(
		components.NewBarChart("Concept Mastery", analytics.ConceptChartSubtitle, v.Concepts, components.CardInner(cw)).View(), cw))
	sections = append(sections, components.Card(
		components.NewBarChart("Sub-concept Mastery", analytics.SubConceptChartSubtitle, v.SubConcepts, components.CardInner(cw)).View(), cw))
	sections = append(sections, components.Card(renderWeakAreas(v.WeakAreas), cw))
	sections = append(sections, components.Card(renderRecommendations(v.Recommendations), cw))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n"))
}

func renderOverall(overall string, cw int) string {
	label := theme.Section.Render("Overall Mastery")
	value := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(overall)
	return components.Card(label+"  "+value, cw)
}

func renderWeakAreas(areas []analytics.WeakArea) string {
	var b strings.Builder
	b.WriteString(theme.Section.Render("Weak Areas"))
	b.WriteString("\n")
	if len(areas) == 0 {
		b.WriteString(theme.Hint.Render(analytics.NoWeakAreasText))
		return b.String()
	}
	for _, w := range areas {
		b.WriteString(fmt.Sprintf("%s %s  %s\n",
			components.Badge(w.Severity, w.Label),
			theme.Body.Render(w.SubConcept),
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(analytics.FormatPercent(w.Score.OrZero(), 1)),
		))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderRecommendations(recs []analytics.ResolvedRecommendation) string {
	var b strings.Builder
	b.WriteString(theme.Section.Render("Recommendations"))
	b.WriteString("\n")
	if len(recs) == 0 {
		b.WriteString(theme.Hint.Render(analytics.NoRecommendationsText))
		return b.String()
	}
	for i, r := range recs {
		if i > 0 {
			b.WriteString("\n")
		}
		line := theme.Body.Bold(true).Render(r.SubConcept)
		if r.Classification != "" {
			sev, _ := analytics.ParseSeverity(r.Classification)
			line += " " + components.Badge(sev, r.Classification)
		}
		b.WriteString(line + "\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + r.Practice.Summary()))
		b.WriteString("\n")
		if r.ResourceLink != "" {
			b.WriteString("  " + theme.Link.Render(r.ResourceLink))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderCentered(width int, text string, fg color.Color) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(fg).
		Render("\n\n" + text)
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
