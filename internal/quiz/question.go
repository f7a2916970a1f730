package quiz

// Question is a single multiple-choice question served by the quiz endpoint.
// Questions are immutable once fetched.
type Question struct {
	ID           string   `json:"question_id"`
	Title        string   `json:"title"`
	Options      []string `json:"options"`
	Concept      string   `json:"concept"`
	SubConcept   string   `json:"sub_concept"`
	Difficulty   float64  `json:"difficulty"`
	ExpectedTime float64  `json:"expected_time"`
}

// HasOption reports whether option is one of the question's choices.
func (q Question) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// AnswerRecord is the learner's response to one question.
// TimeTaken is in whole seconds and never below 1.
type AnswerRecord struct {
	QuestionID     string `json:"question_id"`
	SelectedOption string `json:"selected_option"`
	TimeTaken      int    `json:"time_taken"`
}

// Submission is the payload handed to the scoring service when a session finishes.
type Submission struct {
	UserID    string         `json:"user_id"`
	Responses []AnswerRecord `json:"responses"`
}
