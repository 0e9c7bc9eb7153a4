package service

import (
	"context"
	"safespace/internal/model"
)

// maxLevelLen caps the client-supplied stigma label embedded in the prompt
const maxLevelLen = 32

// FeedbackService turns a roleplay reply into a reflection and coping tip
type FeedbackService struct {
	generator TextGenerator
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(generator TextGenerator) *FeedbackService {
	return &FeedbackService{generator: generator}
}

// AskAI sanitizes the exchange, asks the provider for counselor feedback and
// extracts the labeled fields. It always returns a usable reflection and tip.
func (s *FeedbackService) AskAI(ctx context.Context, ex model.RoleplayExchange) model.Feedback {
	ex.UserReply = Sanitize(ex.UserReply)
	ex.Scenario = Sanitize(ex.Scenario)
	ex.StigmaLevel = SanitizeN(ex.StigmaLevel, maxLevelLen)
	if ex.StigmaLevel == "" {
		ex.StigmaLevel = string(model.StigmaUnknown)
	}

	raw := s.generator.Generate(ctx, buildFeedbackPrompt(ex))
	reflection, tip := ExtractFeedback(raw)

	return model.Feedback{
		Reflection: reflection,
		Tip:        tip,
		RawAI:      raw,
	}
}
