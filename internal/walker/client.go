// Package walker drives the check-in flow against the backend API.
package walker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"safespace/internal/model"
	"strings"
	"time"
)

// Per-call budgets; feedback waits longer because it always hits the provider
const (
	fetchTimeout    = 6 * time.Second
	feedbackTimeout = 10 * time.Second
)

// Client calls the backend endpoints
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Questions fetches today's questions
func (c *Client) Questions(ctx context.Context) ([]string, error) {
	var resp struct {
		Questions []string `json:"questions"`
	}
	if err := c.do(ctx, fetchTimeout, http.MethodGet, "/get_questions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Questions, nil
}

// Score submits answers and returns the stigma level
func (c *Client) Score(ctx context.Context, answers []string) (model.StigmaLevel, error) {
	var resp model.ScoreResult
	body := map[string][]string{"answers": answers}
	if err := c.do(ctx, fetchTimeout, http.MethodPost, "/stigma_score", body, &resp); err != nil {
		return model.StigmaUnknown, err
	}
	if resp.Level == "" {
		return model.StigmaUnknown, nil
	}
	return resp.Level, nil
}

// Scenario fetches today's roleplay scenario
func (c *Client) Scenario(ctx context.Context) (string, error) {
	var resp struct {
		Scenario string `json:"scenario"`
	}
	if err := c.do(ctx, fetchTimeout, http.MethodGet, "/get_scenario", nil, &resp); err != nil {
		return "", err
	}
	return resp.Scenario, nil
}

// AskAI requests counselor feedback for a roleplay reply
func (c *Client) AskAI(ctx context.Context, ex model.RoleplayExchange) (model.Feedback, error) {
	var resp model.Feedback
	body := map[string]string{
		"user_input":   ex.UserReply,
		"scenario":     ex.Scenario,
		"stigma_level": ex.StigmaLevel,
	}
	err := c.do(ctx, feedbackTimeout, http.MethodPost, "/ask_ai", body, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, timeout time.Duration, method, path string, body, dst interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%s %s: decode: %w", method, path, err)
	}
	return nil
}
