package ai

import (
	"context"
	"log/slog"
	"time"

	"github.com/nhle/bugboard/internal/model"
)

// cannedDelay simulates network latency so the demo flow feels realistic.
const cannedDelay = 1500 * time.Millisecond

// Canned is the credential-less fallback Analyzer. It returns a fixed result
// after an artificial delay so the application stays demonstrable without a
// live API key. Every response carries a banner marking it as canned, and a
// warning is logged per request, so it cannot pass for a real analysis.
type Canned struct{}

// NewCanned creates the fallback analyzer.
func NewCanned() *Canned { return &Canned{} }

// Name identifies the backend.
func (c *Canned) Name() string { return "canned" }

// Analyze returns the fixed demo analysis after cannedDelay, or earlier if
// the context is cancelled.
func (c *Canned) Analyze(ctx context.Context, title, description, repoContext string) (*model.AnalysisResult, error) {
	slog.Warn("returning canned analysis: no AI API key configured",
		"repo", repoContext, "title", title)

	select {
	case <-time.After(cannedDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return &model.AnalysisResult{
		RootCause:        "OAuth token validation logic in `auth/middleware.js` fails to handle expired refresh tokens correctly, causing a 401 loop.",
		ProposedSolution: "Implement a token refresh interceptor in the API client and update the server-side validation to strictly check expiry before verification.",
		FilesToModify:    []string{"src/auth/middleware.js", "src/services/apiClient.ts"},
		Confidence:       92,
		SuggestedGitComment: "> **Note:** generated without an AI credential; this is a canned demo analysis.\n\n" +
			"### Analysis Result\n\n" +
			"**Root Cause:**\nThe OAuth token validation logic fails to gracefully handle expired refresh tokens, leading to an infinite 401 loop.\n\n" +
			"**Proposed Solution:**\n1. Update `auth/middleware.js` to check for token expiry before validation.\n" +
			"2. Implement a refresh interceptor in `services/apiClient.ts`.\n\n" +
			"**Estimated Effort:** Medium",
	}, nil
}
