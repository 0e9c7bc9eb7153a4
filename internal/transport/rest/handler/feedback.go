package handler

import (
	"net/http"
	"safespace/internal/model"
	"safespace/internal/service"
)

// FeedbackHandler relays roleplay replies to the counselor prompt
type FeedbackHandler struct {
	feedbackSvc *service.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackSvc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackSvc: feedbackSvc}
}

// AskAIRequest is the body of POST /ask_ai
type AskAIRequest struct {
	UserInput   string `json:"user_input"`
	Scenario    string `json:"scenario"`
	StigmaLevel string `json:"stigma_level"`
}

// AskAI handles POST /ask_ai
func (h *FeedbackHandler) AskAI(w http.ResponseWriter, r *http.Request) {
	var req AskAIRequest
	decodeBody(w, r, &req)

	feedback := h.feedbackSvc.AskAI(r.Context(), model.RoleplayExchange{
		Scenario:    req.Scenario,
		UserReply:   req.UserInput,
		StigmaLevel: req.StigmaLevel,
	})

	writeJSON(w, http.StatusOK, feedback)
}
