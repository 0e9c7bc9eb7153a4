package model

// DailyContent is the generated artifact cached for one daily key.
// Exactly one of Questions or Scenario is set.
type DailyContent struct {
	Questions []string `json:"questions,omitempty"` // Always 3 entries when set
	Scenario  string   `json:"scenario,omitempty"`

	// Fallback marks content made of built-in defaults. It is served for
	// the day but never written to the shared store.
	Fallback bool `json:"-"`
}

// QuestionCount is how many daily questions are served
const QuestionCount = 3
