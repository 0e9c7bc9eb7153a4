package service

import (
	"regexp"
	"safespace/internal/model"
	"strings"
	"unicode/utf8"
)

// minQuestionLen is the rune count a trimmed line, marker included, must
// exceed to count as a question
const minQuestionLen = 5

var (
	listMarker = regexp.MustCompile(`^[\s\d).\-]+`)
	// A label at the start of a line, optionally after list or markdown
	// markers, up to the first colon.
	feedbackLabel = regexp.MustCompile(`(?i)^[\s*#>\d.)_-]*(reflection|tip)\b[^:]*:(.*)$`)
)

// ExtractQuestions pulls exactly QuestionCount questions out of a numbered
// list. Anything short of that yields DefaultQuestions.
func ExtractQuestions(text string) []string {
	questions, _ := parseQuestions(text)
	return questions
}

// parseQuestions reports false when the defaults were substituted
func parseQuestions(text string) ([]string, bool) {
	questions := make([]string, 0, model.QuestionCount)
	if !IsErrorText(text) {
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if utf8.RuneCountInString(line) <= minQuestionLen {
				continue
			}
			q := strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
			if q == "" {
				continue
			}
			questions = append(questions, q)
			if len(questions) == model.QuestionCount {
				return questions, true
			}
		}
	}
	return append([]string(nil), DefaultQuestions[:]...), false
}

// ExtractScenario returns the first non-blank line, or DefaultScenario.
func ExtractScenario(text string) string {
	scenario, _ := parseScenario(text)
	return scenario
}

func parseScenario(text string) (string, bool) {
	if IsErrorText(text) {
		return DefaultScenario, false
	}
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return s, true
		}
	}
	return DefaultScenario, false
}

// ExtractFeedback finds the REFLECTION and TIP lines. Each one falls back to
// its own default independently; the first labeled line wins.
func ExtractFeedback(text string) (reflection, tip string) {
	if !IsErrorText(text) {
		for _, line := range strings.Split(text, "\n") {
			m := feedbackLabel.FindStringSubmatch(strings.TrimRight(line, "\r"))
			if m == nil {
				continue
			}
			value := strings.Trim(strings.TrimSpace(m[2]), "* ")
			if value == "" {
				continue
			}
			switch strings.ToLower(m[1]) {
			case "reflection":
				if reflection == "" {
					reflection = value
				}
			case "tip":
				if tip == "" {
					tip = value
				}
			}
		}
	}
	if reflection == "" {
		reflection = DefaultReflection
	}
	if tip == "" {
		tip = DefaultTip
	}
	return reflection, tip
}
