package analytics

import "github.com/dsaintel/dsaiq/internal/quiz"

// Score is a mastery value on the 0-100 scale. Valid is false when the
// upstream value was missing or not a number.
type Score struct {
	Value float64
	Valid bool
}

// Num builds a valid score.
func Num(v float64) Score { return Score{Value: v, Valid: true} }

// OrZero returns the value, or 0 when the score is not valid.
func (s Score) OrZero() float64 {
	if !s.Valid {
		return 0
	}
	return s.Value
}

// ConceptMastery is a status-discriminated concept record. The concrete type
// is one of ConceptEvaluated, ConceptNotAttempted or ConceptUnrecognized.
type ConceptMastery interface {
	isConceptMastery()
}

type ConceptEvaluated struct {
	Score Score
}

type ConceptNotAttempted struct{}

// ConceptUnrecognized carries a status label this client does not know.
type ConceptUnrecognized struct {
	Status string
}

func (ConceptEvaluated) isConceptMastery()    {}
func (ConceptNotAttempted) isConceptMastery() {}
func (ConceptUnrecognized) isConceptMastery() {}

// SubConceptMastery is a status-discriminated sub-concept record. The concrete
// type is one of SubConceptEvaluated, SubConceptInsufficientData or
// SubConceptUnrecognized.
type SubConceptMastery interface {
	isSubConceptMastery()
}

type SubConceptEvaluated struct {
	Score                      Score
	Accuracy                   Score
	DifficultyWeightedAccuracy Score
	TimeScore                  Score
	ConsistencyScore           Score
	TotalAttempts              int
}

type SubConceptInsufficientData struct{}

type SubConceptUnrecognized struct {
	Status string
}

func (SubConceptEvaluated) isSubConceptMastery()        {}
func (SubConceptInsufficientData) isSubConceptMastery() {}
func (SubConceptUnrecognized) isSubConceptMastery()     {}

// ConceptEntry is one concept in upstream key order.
type ConceptEntry struct {
	Name    string
	Mastery ConceptMastery
}

// SubConceptEntry is one sub-concept in upstream key order.
type SubConceptEntry struct {
	Name    string
	Mastery SubConceptMastery
}

// Severity is the upstream weak-area classification, ordered from most to
// least severe. SeverityUnknown marks a label outside the known set.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityCritical
	SeverityWeak
	SeverityModerate
	SeverityStrong
)

var severityLabels = map[Severity]string{
	SeverityCritical: "Critical",
	SeverityWeak:     "Weak",
	SeverityModerate: "Moderate",
	SeverityStrong:   "Strong",
}

func (s Severity) String() string {
	if l, ok := severityLabels[s]; ok {
		return l
	}
	return "Unknown"
}

// ParseSeverity maps an upstream status label to a Severity.
func ParseSeverity(label string) (Severity, bool) {
	for s, l := range severityLabels {
		if l == label {
			return s, true
		}
	}
	return SeverityUnknown, false
}

// WeakArea is a sub-concept flagged upstream. Label keeps the raw status
// text so unknown labels can still be shown.
type WeakArea struct {
	SubConcept string
	Score      Score
	Severity   Severity
	Label      string
}

// PracticeQuestion is a recommended question. CorrectOption is only present in
// recommendation payloads, never in quiz payloads.
type PracticeQuestion struct {
	quiz.Question
	CorrectOption string
}

// QuestionList is a practice list as found on the wire. Present is false when
// the field was missing or null.
type QuestionList struct {
	Items   []PracticeQuestion
	Present bool
}

// Levels groups the three difficulty lists of one encoding.
type Levels struct {
	Easy   QuestionList
	Medium QuestionList
	Hard   QuestionList
}

// Recommendation is a practice recommendation as received. Upstream uses two
// encodings: lists at the top level, or nested under "practice_questions".
// Resolve merges them.
type Recommendation struct {
	SubConcept     string
	Classification string
	ResourceLink   string
	TopLevel       Levels
	Nested         Levels
}

// PracticeSet is a recommendation's resolved difficulty lists.
type PracticeSet struct {
	Easy   []PracticeQuestion
	Medium []PracticeQuestion
	Hard   []PracticeQuestion
}

// Result is what the analytics endpoint returned: either a *Snapshot or a
// Message.
type Result interface {
	isResult()
}

// Message is an informational reply shown verbatim instead of analytics.
type Message struct {
	Text string
}

// Snapshot is a full analytics reply. It is read-only once decoded.
type Snapshot struct {
	OverallMastery  Score
	HasOverall      bool
	Concepts        []ConceptEntry
	SubConcepts     []SubConceptEntry
	WeakAreas       []WeakArea
	HasWeakAreas    bool
	Recommendations []Recommendation
}

func (*Snapshot) isResult() {}
func (Message) isResult()   {}

// Ready reports whether the snapshot carries a numeric overall mastery and a
// weak-areas collection, which the dashboard needs to render in full.
func (s *Snapshot) Ready() bool {
	return s != nil && s.HasOverall && s.OverallMastery.Valid && s.HasWeakAreas
}
