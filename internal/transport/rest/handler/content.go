package handler

import (
	"net/http"
	"safespace/internal/service"
)

// ContentHandler serves the daily generated content
type ContentHandler struct {
	contentSvc *service.ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentSvc *service.ContentService) *ContentHandler {
	return &ContentHandler{contentSvc: contentSvc}
}

// QuestionsResponse is the body of GET /get_questions
type QuestionsResponse struct {
	Questions []string `json:"questions"`
}

// ScenarioResponse is the body of GET /get_scenario
type ScenarioResponse struct {
	Scenario string `json:"scenario"`
}

// GetQuestions handles GET /get_questions
func (h *ContentHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, QuestionsResponse{Questions: h.contentSvc.GetQuestions(r.Context())})
}

// GetScenario handles GET /get_scenario
func (h *ContentHandler) GetScenario(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ScenarioResponse{Scenario: h.contentSvc.GetScenario(r.Context())})
}
