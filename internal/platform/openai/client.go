package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/casefolio/backend/internal/platform/envutil"
	"github.com/casefolio/backend/internal/platform/logger"
)

// placeholderKey is what local setups leave in OPENAI_API_KEY; it counts as
// unconfigured so every environment without a real key degrades to fallback
// content instead of burning requests against a dead credential.
const placeholderKey = "sk-test-key"

const defaultModel = "gpt-4o-mini"

// temperature is fixed; generation output feeds persisted documents, so we
// lean deterministic and do not expose per-call tuning.
const temperature = 0.4

// Client is the single chokepoint for outbound text-generation calls.
type Client interface {
	// Configured reports whether a usable API key is present. Callers decide
	// between live generation and deterministic fallback from this alone.
	Configured() bool

	// GenerateText performs exactly one chat-completion request. No retries,
	// no streaming; a failed call surfaces to the caller, who may re-invoke.
	GenerateText(ctx context.Context, system string, user string) (string, error)

	// GenerateTextWithModel is GenerateText with a per-call model override.
	GenerateTextWithModel(ctx context.Context, system, user, model string) (string, error)
}

// GenerationError carries the upstream HTTP status and raw body text of a
// failed generation call.
type GenerationError struct {
	StatusCode int
	Body       string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func (e *GenerationError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) Client {
	baseURL := strings.TrimRight(envutil.Get("OPENAI_BASE_URL", "https://api.openai.com"), "/")
	timeoutSec := envutil.Int("OPENAI_TIMEOUT_SECONDS", 60)

	return &client{
		log:        log.With("service", "OpenAIClient"),
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		model:      envutil.Get("OPENAI_MODEL", defaultModel),
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

func (c *client) Configured() bool {
	return c.apiKey != "" && c.apiKey != placeholderKey
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *client) GenerateText(ctx context.Context, system string, user string) (string, error) {
	return c.GenerateTextWithModel(ctx, system, user, "")
}

func (c *client) GenerateTextWithModel(ctx context.Context, system, user, model string) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("openai api key not configured")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = c.model
	}

	reqBody := chatCompletionRequest{
		Model:       model,
		Temperature: temperature,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/chat/completions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("Generation call failed",
			"status", resp.StatusCode,
			"model", model,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return "", &GenerationError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("openai decode error: %w; raw=%s", err, string(raw))
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices")
	}

	c.log.Debug("Generation call completed",
		"model", model,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return parsed.Choices[0].Message.Content, nil
}
