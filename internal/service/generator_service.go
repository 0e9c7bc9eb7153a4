package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"safespace/internal/config"
	"strings"
)

// Reasons carried by the error sentinel text
const (
	reasonEmpty       = "empty response"
	reasonUnavailable = "unable to generate text right now"
)

var (
	// ErrEmptyResponse means the provider answered without usable text
	ErrEmptyResponse = errors.New("empty response from Gemini")
	// ErrNotConfigured means no API key is set
	ErrNotConfigured = errors.New("gemini api key not configured")
	// ErrPromptBlocked means the provider refused the prompt
	ErrPromptBlocked = errors.New("prompt blocked by Gemini")
)

// ProviderError is a non-2xx answer from the Gemini API
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("gemini api error %d: %s", e.StatusCode, e.Message)
}

// TextGenerator produces text for a prompt. It never fails: problems come
// back as the "[AI error: ...]" sentinel text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

// ErrorText builds the sentinel returned in place of generated text
func ErrorText(reason string) string {
	return "[AI error: " + reason + "]"
}

// IsErrorText reports whether text is a generation failure sentinel
func IsErrorText(text string) bool {
	text = strings.TrimSpace(text)
	return strings.HasPrefix(text, "[AI error:") && strings.HasSuffix(text, "]")
}

// GeminiClient calls the Gemini generateContent API with one fixed model
type GeminiClient struct {
	config *config.AIConfig
	client *http.Client
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(cfg *config.AIConfig) *GeminiClient {
	return &GeminiClient{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// Generate runs one generation attempt and returns sanitized text or the sentinel
func (s *GeminiClient) Generate(ctx context.Context, prompt string) string {
	text, err := s.callGemini(ctx, s.config.Model, prompt)
	if err != nil {
		slog.Warn("Gemini call failed",
			"component", "gemini",
			"model", s.config.Model,
			"error", err)
		if errors.Is(err, ErrEmptyResponse) || errors.Is(err, ErrPromptBlocked) {
			return ErrorText(reasonEmpty)
		}
		return ErrorText(reasonUnavailable)
	}
	return Sanitize(text)
}

type geminiPart struct {
	Text    string `json:"text"`
	Thought bool   `json:"thought,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// callGemini makes a request to the Gemini API
func (s *GeminiClient) callGemini(ctx context.Context, modelName, prompt string) (string, error) {
	if !s.config.IsEnabled() {
		return "", ErrNotConfigured
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.ModelEndpoint(modelName), bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}

	var geminiResp geminiResponse
	decodeErr := json.Unmarshal(body, &geminiResp)

	if resp.StatusCode >= 400 {
		msg := strings.TrimSpace(string(body))
		if decodeErr == nil && geminiResp.Error != nil && geminiResp.Error.Message != "" {
			msg = geminiResp.Error.Message
		}
		return "", &ProviderError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode gemini response: %w", decodeErr)
	}

	if reason := geminiResp.PromptFeedback.BlockReason; reason != "" {
		return "", fmt.Errorf("%w: %s", ErrPromptBlocked, reason)
	}
	if len(geminiResp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	parts := geminiResp.Candidates[0].Content.Parts

	// Primary output: every non-thought text part of the first candidate.
	var b strings.Builder
	for _, p := range parts {
		if !p.Thought {
			b.WriteString(p.Text)
		}
	}
	if text := b.String(); strings.TrimSpace(text) != "" {
		return text, nil
	}

	if len(parts) > 0 && strings.TrimSpace(parts[0].Text) != "" {
		return parts[0].Text, nil
	}

	return "", ErrEmptyResponse
}
