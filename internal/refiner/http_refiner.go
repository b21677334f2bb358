package refiner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/beingmomen/dictation-core/internal/logger"
)

const (
	refineTimeout  = 30 * time.Second
	maxRetries     = 2
	retryBaseDelay = 500 * time.Millisecond
	defaultTemp    = 0.0
)

// systemPrompt forces the model to behave as a pure text-transform
// function: raw corrected text only, no commentary, no tool use.
const systemPrompt = "You are a text processing engine. You execute a single text " +
	"correction function and return ONLY its raw output. You never explain, comment, " +
	"or add anything beyond the corrected text itself."

// HTTPRefiner calls a caller-configured chat-completions-style HTTP
// endpoint to clean up spelling, grammar, and punctuation. The
// endpoint and model are config, never hardcoded to a vendor.
type HTTPRefiner struct {
	endpoint   string
	model      string
	httpClient *http.Client
}

// NewHTTPRefiner creates a refiner against endpoint using model.
func NewHTTPRefiner(endpoint, model string) *HTTPRefiner {
	return &HTTPRefiner{
		endpoint: endpoint,
		model:    model,
		httpClient: &http.Client{
			Timeout: refineTimeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Refine sends text through the configured endpoint, retrying
// transient failures with exponential backoff before giving up and
// returning the original text.
func (r *HTTPRefiner) Refine(ctx context.Context, text, language string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return text, nil
	}

	ctx, cancel := context.WithTimeout(ctx, refineTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			if !sleepOrCancel(ctx, retryBaseDelay*time.Duration(1<<uint(attempt-1))) {
				return text, fmt.Errorf("refiner: context canceled during retry backoff: %w", ctx.Err())
			}
		}

		refined, err := r.call(ctx, trimmed, language)
		if err == nil {
			return refined, nil
		}
		lastErr = err
		logger.WithField("attempt", attempt+1).WithField("error", err).Warn("refiner call failed")
	}

	return text, fmt.Errorf("refiner: %w", lastErr)
}

func (r *HTTPRefiner) call(ctx context.Context, text, language string) (string, error) {
	body := chatRequest{
		Model:       r.model,
		Temperature: defaultTemp,
		Stream:      false,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserMessage(text, language)},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("refiner endpoint returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("refiner response had no choices")
	}

	return cleanWrapping(parsed.Choices[0].Message.Content), nil
}

func buildUserMessage(text, language string) string {
	return fmt.Sprintf(
		"Correct the spelling, grammar, and punctuation of this %s text. "+
			"Do not add, remove, or translate any words. Return only the corrected text.\n\n%s",
		language, text,
	)
}

// cleanWrapping strips whitespace and stray quote/backtick wrapping
// models sometimes add around their literal output.
func cleanWrapping(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "`")
	s = strings.Trim(s, `"`)
	return strings.TrimSpace(s)
}

func sleepOrCancel(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
