package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/bugboard/internal/model"
)

func TestNewSelectsBackend(t *testing.T) {
	a, err := New(model.AIConfig{Provider: "gemini"}, "key")
	require.NoError(t, err)
	assert.Equal(t, "gemini", a.Name())

	a, err = New(model.AIConfig{Provider: "openrouter"}, "key")
	require.NoError(t, err)
	assert.Equal(t, "openrouter", a.Name())

	// Empty provider defaults to gemini.
	a, err = New(model.AIConfig{}, "key")
	require.NoError(t, err)
	assert.Equal(t, "gemini", a.Name())
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(model.AIConfig{Provider: "clippy"}, "key")
	assert.Error(t, err)
}

func TestNewWithoutKeyFallsBackToCanned(t *testing.T) {
	a, err := New(model.AIConfig{Provider: "gemini"}, "")
	require.NoError(t, err)
	assert.Equal(t, "canned", a.Name())
}

func TestCannedAnalyzeIsMarked(t *testing.T) {
	result, err := NewCanned().Analyze(context.Background(), "t", "d", "o/r")
	require.NoError(t, err)

	assert.NotEmpty(t, result.RootCause)
	assert.Contains(t, result.SuggestedGitComment, "canned demo analysis")
	assert.GreaterOrEqual(t, result.Confidence, 0)
	assert.LessOrEqual(t, result.Confidence, 100)
}

func TestCannedAnalyzeHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCanned().Analyze(ctx, "t", "d", "o/r")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildPromptCarriesTicketFields(t *testing.T) {
	prompt := buildPrompt("title text", "description text", "owner/repo")

	assert.Contains(t, prompt, "Repository: owner/repo")
	assert.Contains(t, prompt, "Bug Title: title text")
	assert.Contains(t, prompt, "Description: description text")
	for _, field := range []string{"rootCause", "proposedSolution", "filesToModify", "confidence", "suggestedGitComment"} {
		assert.Contains(t, prompt, field)
	}
}
