package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/nhle/bugboard/internal/model"
)

// defaultGeminiModel is used when no model is configured.
const defaultGeminiModel = "gemini-2.5-flash"

// Gemini is the Analyzer backed by the Google Generative AI API.
type Gemini struct {
	apiKey    string
	modelName string
}

// NewGemini creates the Gemini analyzer. The key is required; validation of
// the key itself happens on the first request.
func NewGemini(apiKey, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingCredential
	}
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	return &Gemini{apiKey: apiKey, modelName: modelName}, nil
}

// Name identifies the backend.
func (g *Gemini) Name() string { return "gemini" }

// Analyze sends the analysis prompt to Gemini with a JSON response MIME type
// and parses the reply. The client is created per call; analyses are rare
// enough that holding a long-lived connection buys nothing.
func (g *Gemini) Analyze(ctx context.Context, title, description, repoContext string) (*model.AnalysisResult, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	defer client.Close()

	gm := client.GenerativeModel(g.modelName)
	gm.GenerationConfig.ResponseMIMEType = "application/json"

	prompt := buildPrompt(title, description, repoContext)
	resp, err := gm.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, classifyGeminiError(err)
	}

	text := flattenResponse(resp)
	if text == "" {
		return nil, ErrEmptyOutput
	}

	return parseAnalysis(text)
}

// flattenResponse concatenates the text parts of all candidates.
func flattenResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}

// classifyGeminiError maps provider-side refusals onto readable messages;
// everything else is surfaced as a transport failure.
func classifyGeminiError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key expired"):
		return &ProviderDenialError{
			Provider: "gemini",
			Message:  "API key has expired; generate a new key at https://aistudio.google.com/app/apikey",
		}
	case strings.Contains(msg, "API_KEY_INVALID"):
		return &ProviderDenialError{
			Provider: "gemini",
			Message:  "invalid API key; check your configured Gemini credential",
		}
	case strings.Contains(msg, "quota"):
		return &ProviderDenialError{
			Provider: "gemini",
			Message:  "API quota exceeded; wait or upgrade your plan",
		}
	default:
		return fmt.Errorf("calling Gemini: %w", err)
	}
}
