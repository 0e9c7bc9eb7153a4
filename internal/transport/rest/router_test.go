package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"safespace/internal/cache"
	"safespace/internal/service"
	"safespace/internal/transport/rest/handler"
	"safespace/internal/transport/rest/middleware"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type stubGenerator struct {
	reply string
	calls int32

	mu         sync.Mutex
	lastPrompt string
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) string {
	atomic.AddInt32(&g.calls, 1)
	g.mu.Lock()
	g.lastPrompt = prompt
	g.mu.Unlock()
	return g.reply
}

func (g *stubGenerator) prompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastPrompt
}

func newTestRouter(gen service.TextGenerator) http.Handler {
	daily := cache.NewDailyCache(
		cache.WithClock(func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }),
		cache.WithLocation(time.UTC),
	)
	return NewRouter(&Container{
		ContentService:  service.NewContentService(daily, gen),
		FeedbackService: service.NewFeedbackService(gen),
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if err := json.NewDecoder(w.Body).Decode(dst); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func TestInfo(t *testing.T) {
	w := do(t, newTestRouter(&stubGenerator{}), http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var got map[string]string
	decode(t, w, &got)
	if got["message"] != handler.InfoMessage {
		t.Errorf("message = %q", got["message"])
	}
}

func TestGetQuestions(t *testing.T) {
	gen := &stubGenerator{reply: "1. Do you hide stress?\n2. Do you fear judgment?\n3. Is therapy weak?"}
	h := newTestRouter(gen)

	for i := 0; i < 2; i++ {
		w := do(t, h, http.MethodGet, "/get_questions", "")
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		var got handler.QuestionsResponse
		decode(t, w, &got)
		if len(got.Questions) != 3 || got.Questions[2] != "Is therapy weak?" {
			t.Fatalf("questions = %q", got.Questions)
		}
	}
	if gen.calls != 1 {
		t.Errorf("generator calls = %d, want 1", gen.calls)
	}
}

func TestGetQuestionsProviderDown(t *testing.T) {
	w := do(t, newTestRouter(&stubGenerator{reply: service.ErrorText("empty response")}), http.MethodGet, "/get_questions", "")
	var got handler.QuestionsResponse
	decode(t, w, &got)
	if len(got.Questions) != 3 || got.Questions[0] != service.DefaultQuestions[0] {
		t.Fatalf("questions = %q, want defaults", got.Questions)
	}
}

func TestGetScenario(t *testing.T) {
	w := do(t, newTestRouter(&stubGenerator{reply: "Kabir is mocked for seeing a counselor.\nHe laughs it off."}), http.MethodGet, "/get_scenario", "")
	var got handler.ScenarioResponse
	decode(t, w, &got)
	if got.Scenario != "Kabir is mocked for seeing a counselor." {
		t.Fatalf("scenario = %q", got.Scenario)
	}
}

func TestStigmaScore(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		level string
		raw   int
	}{
		{"mixed", `{"answers":["Yes","No","Maybe"]}`, "Medium", 3},
		{"high", `{"answers":["yes","often","agree"]}`, "High", 6},
		{"missing answers", `{}`, "Low", 0},
		{"no body", ``, "Low", 0},
		{"malformed body", `{"answers":`, "Low", 0},
		{"non-string answers", `{"answers":[1,true,null,"maybe"]}`, "Low", 1},
	}
	h := newTestRouter(&stubGenerator{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/stigma_score", tt.body)
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}
			var got struct {
				StigmaLevel string `json:"stigma_level"`
				RawScore    int    `json:"raw_score"`
			}
			decode(t, w, &got)
			if got.StigmaLevel != tt.level || got.RawScore != tt.raw {
				t.Errorf("got (%s, %d), want (%s, %d)", got.StigmaLevel, got.RawScore, tt.level, tt.raw)
			}
		})
	}
}

type askAIResponse struct {
	Reflection string `json:"ai_reflection"`
	Tip        string `json:"ai_tip"`
	RawAI      string `json:"raw_ai"`
}

func TestAskAI(t *testing.T) {
	gen := &stubGenerator{reply: "REFLECTION: Standing up for yourself is brave.\nTIP: Take three slow breaths."}
	w := do(t, newTestRouter(gen), http.MethodPost, "/ask_ai",
		`{"user_input":"I told them stress is real","scenario":"A friend calls you lazy","stigma_level":"Low"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var got askAIResponse
	decode(t, w, &got)
	if got.Reflection != "Standing up for yourself is brave." || got.Tip != "Take three slow breaths." {
		t.Errorf("got %+v", got)
	}
	if got.RawAI != gen.reply {
		t.Errorf("raw_ai = %q", got.RawAI)
	}
}

func TestAskAILargeInputTruncated(t *testing.T) {
	gen := &stubGenerator{reply: "REFLECTION: ok\nTIP: ok"}
	body, err := json.Marshal(map[string]string{
		"user_input": strings.Repeat("a", 70<<10),
		"scenario":   "A friend calls you lazy",
	})
	if err != nil {
		t.Fatal(err)
	}

	w := do(t, newTestRouter(gen), http.MethodPost, "/ask_ai", string(body))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	prompt := gen.prompt()
	if !strings.Contains(prompt, "User response: "+strings.Repeat("a", service.DefaultMaxLen)+"\n") {
		t.Error("expected user input truncated to the sanitizer limit")
	}
	if strings.Contains(prompt, strings.Repeat("a", service.DefaultMaxLen+1)) {
		t.Error("user input was not truncated")
	}
}

func TestAskAIProviderFailure(t *testing.T) {
	sentinel := service.ErrorText("unable to generate text right now")
	w := do(t, newTestRouter(&stubGenerator{reply: sentinel}), http.MethodPost, "/ask_ai", `{"user_input":"hi"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var got askAIResponse
	decode(t, w, &got)
	if got.Reflection == "" || got.Tip == "" {
		t.Fatalf("empty defaults: %+v", got)
	}
	if got.Reflection != service.DefaultReflection || got.Tip != service.DefaultTip {
		t.Errorf("got %+v, want defaults", got)
	}
	if got.RawAI != sentinel {
		t.Errorf("raw_ai = %q, want sentinel", got.RawAI)
	}
}

func TestRoutingErrors(t *testing.T) {
	h := newTestRouter(&stubGenerator{})

	w := do(t, h, http.MethodGet, "/stigma_score", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /stigma_score status = %d, want 405", w.Code)
	}
	var body map[string]string
	decode(t, w, &body)
	if body["error"] == "" {
		t.Error("expected error envelope")
	}

	w = do(t, h, http.MethodGet, "/nope", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("GET /nope status = %d, want 404", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(&stubGenerator{})
	req := httptest.NewRequest(http.MethodOptions, "/ask_ai", nil)
	req.Header.Set("Origin", "http://localhost:8501")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code >= 300 {
		t.Fatalf("preflight status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRequestID(t *testing.T) {
	h := newTestRouter(&stubGenerator{})

	w := do(t, h, http.MethodGet, "/health", "")
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("expected a generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got := w.Header().Get(middleware.RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want echoed abc-123", got)
	}
}
