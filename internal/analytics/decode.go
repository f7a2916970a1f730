package analytics

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dsaintel/dsaiq/internal/quiz"
)

// Upstream status labels.
const (
	StatusEvaluated        = "Evaluated"
	StatusNotAttempted     = "Not Attempted"
	StatusInsufficientData = "Insufficient Data"
)

var ErrMalformed = errors.New("malformed analytics payload")

// Decode parses an analytics reply. Mapping fields keep their wire key order.
// A top-level string "message" makes the reply a Message.
func Decode(raw []byte) (Result, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("decode analytics: %w: invalid JSON", ErrMalformed)
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, fmt.Errorf("decode analytics: %w: expected object, got %s", ErrMalformed, root.Type)
	}

	if msg := root.Get("message"); msg.Type == gjson.String {
		return Message{Text: msg.String()}, nil
	}

	snap := &Snapshot{}

	if overall := root.Get("overall_mastery"); overall.Exists() {
		snap.HasOverall = true
		snap.OverallMastery = scoreOf(overall)
	}

	// ForEach on a scalar yields the scalar itself, so check the kind first.
	if concepts := root.Get("concept_mastery"); concepts.IsObject() {
		concepts.ForEach(func(key, value gjson.Result) bool {
			snap.Concepts = append(snap.Concepts, ConceptEntry{
				Name:    key.String(),
				Mastery: decodeConcept(value),
			})
			return true
		})
	}

	if subs := root.Get("subconcept_mastery"); subs.IsObject() {
		subs.ForEach(func(key, value gjson.Result) bool {
			snap.SubConcepts = append(snap.SubConcepts, SubConceptEntry{
				Name:    key.String(),
				Mastery: decodeSubConcept(value),
			})
			return true
		})
	}

	if weak := root.Get("weak_areas"); weak.IsArray() {
		snap.HasWeakAreas = true
		snap.WeakAreas = []WeakArea{}
		weak.ForEach(func(_, value gjson.Result) bool {
			snap.WeakAreas = append(snap.WeakAreas, decodeWeakArea(value))
			return true
		})
	}

	if recs := root.Get("recommendations"); recs.IsArray() {
		recs.ForEach(func(_, value gjson.Result) bool {
			snap.Recommendations = append(snap.Recommendations, decodeRecommendation(value))
			return true
		})
	}

	return snap, nil
}

func scoreOf(r gjson.Result) Score {
	if r.Type != gjson.Number {
		return Score{}
	}
	return Num(r.Float())
}

func decodeConcept(v gjson.Result) ConceptMastery {
	switch status := v.Get("status").String(); status {
	case StatusEvaluated:
		return ConceptEvaluated{Score: scoreOf(v.Get("mastery_score"))}
	case StatusNotAttempted:
		return ConceptNotAttempted{}
	default:
		return ConceptUnrecognized{Status: status}
	}
}

func decodeSubConcept(v gjson.Result) SubConceptMastery {
	switch status := v.Get("status").String(); status {
	case StatusEvaluated:
		return SubConceptEvaluated{
			Score:                      scoreOf(v.Get("mastery_score")),
			Accuracy:                   scoreOf(v.Get("accuracy")),
			DifficultyWeightedAccuracy: scoreOf(v.Get("difficulty_weighted_accuracy")),
			TimeScore:                  scoreOf(v.Get("time_score")),
			ConsistencyScore:           scoreOf(v.Get("consistency_score")),
			TotalAttempts:              int(v.Get("total_attempts").Int()),
		}
	case StatusInsufficientData:
		return SubConceptInsufficientData{}
	default:
		return SubConceptUnrecognized{Status: status}
	}
}

func decodeWeakArea(v gjson.Result) WeakArea {
	label := v.Get("status").String()
	sev, _ := ParseSeverity(label)
	return WeakArea{
		SubConcept: v.Get("sub_concept").String(),
		Score:      scoreOf(v.Get("mastery_score")),
		Severity:   sev,
		Label:      label,
	}
}

func decodeRecommendation(v gjson.Result) Recommendation {
	rec := Recommendation{
		SubConcept:     v.Get("sub_concept").String(),
		Classification: v.Get("classification").String(),
		ResourceLink:   v.Get("resource_link").String(),
		TopLevel:       decodeLevels(v),
	}
	if nested := v.Get("practice_questions"); nested.IsObject() {
		rec.Nested = decodeLevels(nested)
	}
	return rec
}

func decodeLevels(v gjson.Result) Levels {
	return Levels{
		Easy:   decodeList(v.Get("easy")),
		Medium: decodeList(v.Get("medium")),
		Hard:   decodeList(v.Get("hard")),
	}
}

// decodeList treats a missing or null field as absent. Any other value is
// present; non-array values resolve to an empty list.
func decodeList(v gjson.Result) QuestionList {
	if !v.Exists() || v.Type == gjson.Null {
		return QuestionList{}
	}
	list := QuestionList{Present: true, Items: []PracticeQuestion{}}
	if !v.IsArray() {
		return list
	}
	v.ForEach(func(_, item gjson.Result) bool {
		list.Items = append(list.Items, decodePracticeQuestion(item))
		return true
	})
	return list
}

func decodePracticeQuestion(v gjson.Result) PracticeQuestion {
	q := PracticeQuestion{
		Question: quiz.Question{
			ID:           v.Get("question_id").String(),
			Title:        v.Get("title").String(),
			Concept:      v.Get("concept").String(),
			SubConcept:   v.Get("sub_concept").String(),
			Difficulty:   v.Get("difficulty").Float(),
			ExpectedTime: v.Get("expected_time").Float(),
		},
		CorrectOption: v.Get("correct_option").String(),
	}
	if opts := v.Get("options"); opts.IsArray() {
		opts.ForEach(func(_, opt gjson.Result) bool {
			q.Options = append(q.Options, opt.String())
			return true
		})
	}
	return q
}
