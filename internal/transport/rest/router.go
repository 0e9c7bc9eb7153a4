package rest

import (
	"net/http"
	"safespace/internal/service"
	"safespace/internal/transport/rest/handler"
	"safespace/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Container holds all dependencies for the router
type Container struct {
	ContentService  *service.ContentService
	FeedbackService *service.FeedbackService
	AllowedOrigins  []string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	contentHandler := handler.NewContentHandler(c.ContentService)
	feedbackHandler := handler.NewFeedbackHandler(c.FeedbackService)

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)

	r.HandleFunc("/", handler.Info).Methods("GET")
	r.HandleFunc("/health", handler.Health).Methods("GET")

	r.HandleFunc("/get_questions", contentHandler.GetQuestions).Methods("GET")
	r.HandleFunc("/get_scenario", contentHandler.GetScenario).Methods("GET")
	r.HandleFunc("/stigma_score", handler.StigmaScore).Methods("POST")
	r.HandleFunc("/ask_ai", feedbackHandler.AskAI).Methods("POST")

	r.NotFoundHandler = http.HandlerFunc(handler.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handler.MethodNotAllowed)

	origins := c.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	// CORS wraps the router so preflight requests never reach method matching
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}).Handler(r)
}
