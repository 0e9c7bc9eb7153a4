package service

import (
	"safespace/internal/model"
	"strings"
)

var answerPoints = map[string]int{
	"yes":       2,
	"often":     2,
	"always":    2,
	"agree":     2,
	"defend":    2,
	"maybe":     1,
	"sometimes": 1,
}

// Score sums answer points and bands the total: <=2 Low, 3-4 Medium, >=5 High.
// Unknown answers are worth nothing.
func Score(answers []string) model.ScoreResult {
	total := 0
	for _, a := range answers {
		total += answerPoints[strings.ToLower(a)]
	}
	return model.ScoreResult{RawScore: total, Level: Band(total)}
}

// Band maps a raw score to its stigma level
func Band(score int) model.StigmaLevel {
	switch {
	case score <= 2:
		return model.StigmaLow
	case score <= 4:
		return model.StigmaMedium
	default:
		return model.StigmaHigh
	}
}
