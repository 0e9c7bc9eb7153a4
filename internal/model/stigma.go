package model

// StigmaLevel is the three-band label derived from questionnaire answers
type StigmaLevel string

const (
	StigmaLow     StigmaLevel = "Low"
	StigmaMedium  StigmaLevel = "Medium"
	StigmaHigh    StigmaLevel = "High"
	StigmaUnknown StigmaLevel = "Unknown" // Client could not score, or sent nothing
)

// ScoreResult is the outcome of scoring one set of answers
type ScoreResult struct {
	RawScore int         `json:"raw_score"`
	Level    StigmaLevel `json:"stigma_level"`
}
