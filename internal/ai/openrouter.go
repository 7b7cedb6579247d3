package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nhle/bugboard/internal/model"
)

const (
	defaultOpenRouterURL   = "https://openrouter.ai/api/v1/chat/completions"
	defaultOpenRouterModel = "amazon/nova-2-lite-v1:free"
	defaultMaxTokens       = 4096
)

// OpenRouter is the Analyzer backed by the OpenRouter chat completions API
// (OpenAI-compatible wire format).
type OpenRouter struct {
	apiKey    string
	modelName string
	maxTokens int
	apiURL    string
	client    *http.Client
}

// chatRequest is the OpenAI-compatible completion request body.
type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	MaxTokens      int           `json:"max_tokens,omitempty"`
	ResponseFormat *chatFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatFormat struct {
	Type string `json:"type"`
}

// chatResponse is the subset of the completion response we consume.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// chatErrorResponse is the provider's error envelope.
type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewOpenRouter creates the OpenRouter analyzer.
func NewOpenRouter(apiKey, modelName string, maxTokens int) *OpenRouter {
	if modelName == "" {
		modelName = defaultOpenRouterModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &OpenRouter{
		apiKey:    apiKey,
		modelName: modelName,
		maxTokens: maxTokens,
		apiURL:    defaultOpenRouterURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SetAPIURL overrides the endpoint. Used by tests.
func (o *OpenRouter) SetAPIURL(url string) {
	o.apiURL = url
}

// Name identifies the backend.
func (o *OpenRouter) Name() string { return "openrouter" }

// Analyze makes one chat-completion request with a JSON-object response
// format directive and parses the reply. No retry on failure.
func (o *OpenRouter) Analyze(ctx context.Context, title, description, repoContext string) (*model.AnalysisResult, error) {
	if o.apiKey == "" {
		return nil, ErrMissingCredential
	}

	reqBody := chatRequest{
		Model: o.modelName,
		Messages: []chatMessage{
			{Role: "user", Content: buildPrompt(title, description, repoContext)},
		},
		MaxTokens:      o.maxTokens,
		ResponseFormat: &chatFormat{Type: "json_object"},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, o.apiURL, bytes.NewReader(bodyBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling OpenRouter: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyOpenRouterError(resp.StatusCode, respBody)
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return nil, ErrEmptyOutput
	}

	return parseAnalysis(result.Choices[0].Message.Content)
}

// classifyOpenRouterError turns a non-200 response into a readable error,
// distinguishing provider denials from generic API failures.
func classifyOpenRouterError(status int, body []byte) error {
	message := ""
	var apiErr chatErrorResponse
	if json.Unmarshal(body, &apiErr) == nil {
		message = apiErr.Error.Message
	}
	if message == "" {
		message = fmt.Sprintf("API request failed with status %d", status)
	}

	lower := strings.ToLower(message)
	switch {
	case status == http.StatusTooManyRequests || strings.Contains(lower, "rate limit"):
		return &ProviderDenialError{
			Provider: "openrouter",
			Message:  "rate limit exceeded; wait a moment and try again",
		}
	case status == http.StatusUnauthorized || strings.Contains(lower, "invalid") || strings.Contains(lower, "unauthorized"):
		return &ProviderDenialError{
			Provider: "openrouter",
			Message:  "invalid API key; check your configured OpenRouter credential",
		}
	case strings.Contains(lower, "quota") || strings.Contains(lower, "credits"):
		return &ProviderDenialError{
			Provider: "openrouter",
			Message:  "quota exhausted; add credits or wait for the limit to reset",
		}
	default:
		return fmt.Errorf("API error (%d): %s", status, message)
	}
}
