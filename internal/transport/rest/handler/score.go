package handler

import (
	"fmt"
	"net/http"
	"safespace/internal/service"
)

// StigmaScoreRequest is the body of POST /stigma_score.
// Answers are usually strings but anything JSON is tolerated.
type StigmaScoreRequest struct {
	Answers []interface{} `json:"answers"`
}

// StigmaScore handles POST /stigma_score
func StigmaScore(w http.ResponseWriter, r *http.Request) {
	var req StigmaScoreRequest
	decodeBody(w, r, &req)

	answers := make([]string, 0, len(req.Answers))
	for _, a := range req.Answers {
		if s, ok := a.(string); ok {
			answers = append(answers, s)
			continue
		}
		answers = append(answers, fmt.Sprint(a))
	}

	writeJSON(w, http.StatusOK, service.Score(answers))
}
