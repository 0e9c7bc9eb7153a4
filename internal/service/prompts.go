package service

import (
	"fmt"
	"safespace/internal/model"
)

const questionsPrompt = "Generate 3 short stigma-related self-reflection questions for young Indian students. " +
	"Keep them answerable with Yes/No/Maybe. Return as a numbered list."

const scenarioPrompt = "Write one realistic roleplay scenario (2-3 sentences) of an Indian college student " +
	"facing stigma about mental health."

// Helpline surfaced by the counselor prompt when distress is implied
const Helpline = "Vandrevala 1860 2662 345"

// Fallbacks used when provider output cannot be parsed
var (
	DefaultQuestions = [model.QuestionCount]string{
		"Do you avoid sharing feelings because of judgment?",
		"Have you ever felt ashamed asking for mental health help?",
		"Do you think seeking help is a weakness?",
	}
	DefaultScenario   = "In a group study, a friend says 'You are just lazy' when you mention stress."
	DefaultReflection = "I hear you — it takes courage to share this."
	DefaultTip        = "Try writing your thoughts in a journal for 5 minutes today."
)

func buildFeedbackPrompt(ex model.RoleplayExchange) string {
	return fmt.Sprintf(`You are an empathetic counselor bot for Indian youth.

Scenario: %s
User response: %s
Stigma level: %s

TASK:
1) Provide a short empathetic reflection (1-2 sentences).
2) Offer one simple coping tip (1 sentence).
3) If distress or self-harm is detected, advise seeking immediate help + give India helpline: %s.
Return as:
REFLECTION: ...
TIP: ...`,
		ex.Scenario, ex.UserReply, ex.StigmaLevel, Helpline)
}
