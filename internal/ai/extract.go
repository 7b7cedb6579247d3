package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nhle/bugboard/internal/model"
)

// stripCodeFence removes a surrounding Markdown code fence (```json ... ```
// or a bare ``` ... ```) from model output. Text without a fence is returned
// trimmed but otherwise untouched.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	// Drop a language tag such as "json" on the opening fence line.
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		first := strings.TrimSpace(text[:idx])
		if first == "" || !strings.ContainsAny(first, "{[") {
			text = text[idx+1:]
		}
	}

	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// parseAnalysis decodes model output into an AnalysisResult, tolerating
// code-fence wrapping. Empty output and malformed JSON are distinct errors
// so the caller can message them separately.
func parseAnalysis(raw string) (*model.AnalysisResult, error) {
	cleaned := stripCodeFence(raw)
	if cleaned == "" {
		return nil, ErrEmptyOutput
	}

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("model returned malformed JSON: %w", err)
	}

	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 100 {
		result.Confidence = 100
	}

	return &result, nil
}
