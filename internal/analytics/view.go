package analytics

// ViewState selects what the dashboard shows.
type ViewState int

const (
	ViewMissingIdentity ViewState = iota // No stored user; prompt to start a quiz
	ViewLoading                          // Fetch in flight
	ViewFailed                           // Fetch failed
	ViewMessage                          // Upstream sent a message instead of analytics
	ViewReady                            // Full pipeline output available
	ViewIncomplete                       // Snapshot arrived but is not ready; keep waiting
)

func (v ViewState) String() string {
	switch v {
	case ViewMissingIdentity:
		return "missing-identity"
	case ViewLoading:
		return "loading"
	case ViewFailed:
		return "failed"
	case ViewMessage:
		return "message"
	case ViewReady:
		return "ready"
	case ViewIncomplete:
		return "incomplete"
	default:
		return "unknown"
	}
}

// ResolvedRecommendation is a recommendation after list resolution.
type ResolvedRecommendation struct {
	SubConcept     string
	Classification string
	ResourceLink   string
	Practice       PracticeSet
}

// DashboardView is the render model for the dashboard. Only the fields that
// belong to State are populated.
type DashboardView struct {
	State ViewState

	Message string
	Err     error

	Overall         string
	Concepts        []Point
	SubConcepts     []Point
	WeakAreas       []WeakArea
	Recommendations []ResolvedRecommendation
}

// Dashboard copy.
const (
	MissingIdentityText     = "No user name found. Start a quiz to generate analytics."
	LoadingText             = "Loading analytics..."
	NoWeakAreasText         = "No weak areas detected. Great work staying consistent."
	NoRecommendationsText   = "No recommendations yet. Finish a quiz to generate practice sets."
	ConceptChartSubtitle    = "Balanced view across all concepts"
	SubConceptChartSubtitle = "Sorted by mastery score"
)

// Classify decides the dashboard state. Priority is missing identity, then
// loading, then failure, then an upstream message, then a ready snapshot.
// Anything else is incomplete and renders like loading.
func Classify(hasIdentity, loading bool, result Result, err error) DashboardView {
	if !hasIdentity {
		return DashboardView{State: ViewMissingIdentity, Message: MissingIdentityText}
	}
	if loading {
		return DashboardView{State: ViewLoading, Message: LoadingText}
	}
	if err != nil {
		return DashboardView{State: ViewFailed, Err: err}
	}

	switch r := result.(type) {
	case Message:
		return DashboardView{State: ViewMessage, Message: r.Text}
	case *Snapshot:
		if r.Ready() {
			return Render(r)
		}
	}
	return DashboardView{State: ViewIncomplete, Message: LoadingText}
}

// Render runs the full pipeline over a ready snapshot.
func Render(s *Snapshot) DashboardView {
	recs := make([]ResolvedRecommendation, 0, len(s.Recommendations))
	for _, r := range s.Recommendations {
		recs = append(recs, ResolvedRecommendation{
			SubConcept:     r.SubConcept,
			Classification: r.Classification,
			ResourceLink:   r.ResourceLink,
			Practice:       r.Resolve(),
		})
	}

	weak := make([]WeakArea, len(s.WeakAreas))
	copy(weak, s.WeakAreas)

	return DashboardView{
		State:           ViewReady,
		Overall:         FormatPercent(s.OverallMastery.OrZero(), 2),
		Concepts:        ConceptSeries(s),
		SubConcepts:     SubConceptSeries(s),
		WeakAreas:       weak,
		Recommendations: recs,
	}
}
