package analytics

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
)

// Point is one chart datum.
type Point struct {
	Name  string
	Value float64
}

// conceptValue is the charted value of a concept: its score when evaluated
// and numeric, 0 otherwise.
func conceptValue(m ConceptMastery) float64 {
	switch m := m.(type) {
	case ConceptEvaluated:
		return m.Score.OrZero()
	case ConceptNotAttempted:
		return 0
	case ConceptUnrecognized:
		return 0
	default:
		return 0
	}
}

func subConceptValue(m SubConceptMastery) float64 {
	switch m := m.(type) {
	case SubConceptEvaluated:
		return m.Score.OrZero()
	case SubConceptInsufficientData:
		return 0
	case SubConceptUnrecognized:
		return 0
	default:
		return 0
	}
}

// ConceptSeries returns one point per concept in upstream order.
func ConceptSeries(s *Snapshot) []Point {
	if s == nil {
		return nil
	}
	out := make([]Point, 0, len(s.Concepts))
	for _, c := range s.Concepts {
		out = append(out, Point{Name: c.Name, Value: conceptValue(c.Mastery)})
	}
	return out
}

// SubConceptSeries returns one point per sub-concept, weakest first. Ties keep
// upstream order.
func SubConceptSeries(s *Snapshot) []Point {
	if s == nil {
		return nil
	}
	out := make([]Point, 0, len(s.SubConcepts))
	for _, c := range s.SubConcepts {
		out = append(out, Point{Name: c.Name, Value: subConceptValue(c.Mastery)})
	}
	slices.SortStableFunc(out, func(a, b Point) int {
		return cmp.Compare(a.Value, b.Value)
	})
	return out
}

// Resolve picks each difficulty list from the top level when present, even
// if empty, and falls back to the nested practice_questions lists. A list
// missing from both resolves to empty.
func (r Recommendation) Resolve() PracticeSet {
	return PracticeSet{
		Easy:   pickList(r.TopLevel.Easy, r.Nested.Easy),
		Medium: pickList(r.TopLevel.Medium, r.Nested.Medium),
		Hard:   pickList(r.TopLevel.Hard, r.Nested.Hard),
	}
}

func pickList(top, nested QuestionList) []PracticeQuestion {
	switch {
	case top.Present:
		return nonNil(top.Items)
	case nested.Present:
		return nonNil(nested.Items)
	default:
		return []PracticeQuestion{}
	}
}

func nonNil(items []PracticeQuestion) []PracticeQuestion {
	if items == nil {
		return []PracticeQuestion{}
	}
	return items
}

// Summary renders the list sizes, e.g. "Easy: 2 | Medium: 1 | Hard: 0".
func (p PracticeSet) Summary() string {
	return fmt.Sprintf("Easy: %d | Medium: %d | Hard: %d", len(p.Easy), len(p.Medium), len(p.Hard))
}

// FormatPercent renders v with a fixed number of decimals and a percent sign.
func FormatPercent(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64) + "%"
}
