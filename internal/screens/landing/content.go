package landing

import "github.com/dsaintel/dsaiq/internal/analytics"

const (
	tagline  = "Weighted scoring for mastery growth"
	headline = "Diagnose Your DSA Weaknesses with Precision"
	blurb    = "Our scoring engine blends accuracy, difficulty, time, and consistency to surface the exact gaps holding you back."
)

type feature struct {
	Title       string
	Description string
}

var features = []feature{
	{
		Title:       "Intelligent Scoring",
		Description: "Blend accuracy, difficulty, time, and consistency into a single mastery signal.",
	},
	{
		Title:       "Performance Analytics",
		Description: "Track concept mastery with visual breakdowns and progress insights.",
	},
	{
		Title:       "Adaptive Recommendations",
		Description: "Get targeted practice sets that close gaps faster and build confidence.",
	},
}

// previewSnapshot is sample analytics drawn on the landing page.
func previewSnapshot() *analytics.Snapshot {
	concept := func(name string, v float64) analytics.ConceptEntry {
		return analytics.ConceptEntry{Name: name, Mastery: analytics.ConceptEvaluated{Score: analytics.Num(v)}}
	}
	sub := func(name string, v float64) analytics.SubConceptEntry {
		return analytics.SubConceptEntry{Name: name, Mastery: analytics.SubConceptEvaluated{Score: analytics.Num(v)}}
	}
	return &analytics.Snapshot{
		Concepts: []analytics.ConceptEntry{
			concept("Arrays", 82),
			concept("Graphs", 64),
			concept("DP", 58),
			concept("Trees", 75),
		},
		SubConcepts: []analytics.SubConceptEntry{
			sub("Two Pointers", 42),
			sub("Binary Search", 55),
			sub("Graph BFS", 68),
			sub("DP Tabulation", 72),
		},
	}
}
