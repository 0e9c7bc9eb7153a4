package service

import (
	"context"
	"safespace/internal/cache"
	"safespace/internal/model"
	"strings"
)

const scenarioKeyPrefix = "scenario"

// ContentService serves the daily questions and roleplay scenario
type ContentService struct {
	cache     *cache.DailyCache
	generator TextGenerator
}

// NewContentService creates a new content service
func NewContentService(dailyCache *cache.DailyCache, generator TextGenerator) *ContentService {
	return &ContentService{
		cache:     dailyCache,
		generator: generator,
	}
}

// GetQuestions returns today's three questions
func (s *ContentService) GetQuestions(ctx context.Context) []string {
	content := s.cache.GetOrGenerateChecked(ctx, s.cache.Key(""), func(ctx context.Context) model.DailyContent {
		questions, ok := parseQuestions(s.generator.Generate(ctx, questionsPrompt))
		return model.DailyContent{Questions: questions, Fallback: !ok}
	}, validQuestions)
	return content.Questions
}

// GetScenario returns today's roleplay scenario
func (s *ContentService) GetScenario(ctx context.Context) string {
	content := s.cache.GetOrGenerateChecked(ctx, s.cache.Key(scenarioKeyPrefix), func(ctx context.Context) model.DailyContent {
		scenario, ok := parseScenario(s.generator.Generate(ctx, scenarioPrompt))
		return model.DailyContent{Scenario: scenario, Fallback: !ok}
	}, validScenario)
	return content.Scenario
}

func validQuestions(content model.DailyContent) bool {
	if len(content.Questions) != model.QuestionCount {
		return false
	}
	for _, q := range content.Questions {
		if strings.TrimSpace(q) == "" {
			return false
		}
	}
	return true
}

func validScenario(content model.DailyContent) bool {
	return strings.TrimSpace(content.Scenario) != ""
}
