package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const analysisJSON = `{
	"rootCause": "stale cache entry",
	"proposedSolution": "invalidate on write",
	"filesToModify": ["cache.go", "writer.go"],
	"confidence": 85,
	"suggestedGitComment": "### Analysis\nInvalidate the cache on write."
}`

func TestParseAnalysisPlainJSON(t *testing.T) {
	result, err := parseAnalysis(analysisJSON)
	require.NoError(t, err)

	assert.Equal(t, "stale cache entry", result.RootCause)
	assert.Equal(t, "invalidate on write", result.ProposedSolution)
	assert.Equal(t, []string{"cache.go", "writer.go"}, result.FilesToModify)
	assert.Equal(t, 85, result.Confidence)
	assert.Contains(t, result.SuggestedGitComment, "Invalidate the cache")
}

func TestParseAnalysisFencedJSON(t *testing.T) {
	// Fenced output must parse identically to unfenced output.
	fenced := "```json\n" + analysisJSON + "\n```"
	bare := "```\n" + analysisJSON + "\n```"

	plain, err := parseAnalysis(analysisJSON)
	require.NoError(t, err)

	fromFenced, err := parseAnalysis(fenced)
	require.NoError(t, err)
	assert.Equal(t, plain, fromFenced)

	fromBare, err := parseAnalysis(bare)
	require.NoError(t, err)
	assert.Equal(t, plain, fromBare)
}

func TestParseAnalysisFenceWithoutNewline(t *testing.T) {
	result, err := parseAnalysis("```" + analysisJSON + "```")
	require.NoError(t, err)
	assert.Equal(t, 85, result.Confidence)
}

func TestParseAnalysisEmptyOutput(t *testing.T) {
	for _, raw := range []string{"", "   ", "```\n```", "```json\n```"} {
		_, err := parseAnalysis(raw)
		assert.ErrorIs(t, err, ErrEmptyOutput, "input %q", raw)
	}
}

func TestParseAnalysisMalformedJSON(t *testing.T) {
	_, err := parseAnalysis("this is not json")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyOutput)
}

func TestParseAnalysisClampsConfidence(t *testing.T) {
	result, err := parseAnalysis(`{"rootCause":"x","confidence":180}`)
	require.NoError(t, err)
	assert.Equal(t, 100, result.Confidence)

	result, err = parseAnalysis(`{"rootCause":"x","confidence":-5}`)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Confidence)
}

func TestStripCodeFenceLeavesPlainTextAlone(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("  {\"a\":1}\n"))
}
