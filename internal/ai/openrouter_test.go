package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionBody(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	require.NoError(t, err)
	return body
}

func newOpenRouterServer(t *testing.T, handler http.HandlerFunc) *OpenRouter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	o := NewOpenRouter("test-key", "", 0)
	o.SetAPIURL(srv.URL)
	return o
}

func TestOpenRouterAnalyzeSuccess(t *testing.T) {
	var gotReq chatRequest
	o := newOpenRouterServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write(completionBody(t, analysisJSON))
	})

	result, err := o.Analyze(context.Background(), "crash on save", "panics in writer", "o/r")
	require.NoError(t, err)
	assert.Equal(t, "stale cache entry", result.RootCause)

	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[0].Content, "crash on save")
	assert.Contains(t, gotReq.Messages[0].Content, "Repository: o/r")
	require.NotNil(t, gotReq.ResponseFormat)
	assert.Equal(t, "json_object", gotReq.ResponseFormat.Type)
}

func TestOpenRouterAnalyzeFencedOutput(t *testing.T) {
	o := newOpenRouterServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(completionBody(t, "```json\n"+analysisJSON+"\n```"))
	})

	result, err := o.Analyze(context.Background(), "t", "d", "o/r")
	require.NoError(t, err)
	assert.Equal(t, 85, result.Confidence)
}

func TestOpenRouterAnalyzeEmptyOutput(t *testing.T) {
	o := newOpenRouterServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(completionBody(t, ""))
	})

	_, err := o.Analyze(context.Background(), "t", "d", "o/r")
	assert.ErrorIs(t, err, ErrEmptyOutput)
}

func TestOpenRouterAnalyzeDenials(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		message string
		want    string
	}{
		{"rate limited", http.StatusTooManyRequests, "rate limit exceeded", "rate limit"},
		{"invalid key", http.StatusUnauthorized, "invalid api key", "invalid API key"},
		{"quota", http.StatusPaymentRequired, "insufficient credits", "quota exhausted"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := newOpenRouterServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"error": map[string]string{"message": tc.message},
				})
			})

			_, err := o.Analyze(context.Background(), "t", "d", "o/r")
			require.Error(t, err)

			var denial *ProviderDenialError
			require.ErrorAs(t, err, &denial)
			assert.Equal(t, "openrouter", denial.Provider)
			assert.Contains(t, denial.Message, tc.want)
		})
	}
}

func TestOpenRouterAnalyzeGenericAPIError(t *testing.T) {
	o := newOpenRouterServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"backend exploded"}}`))
	})

	_, err := o.Analyze(context.Background(), "t", "d", "o/r")
	require.Error(t, err)

	var denial *ProviderDenialError
	assert.False(t, errors.As(err, &denial), "generic failures are not denials")
	assert.Contains(t, err.Error(), "backend exploded")
}

func TestOpenRouterMissingCredential(t *testing.T) {
	o := NewOpenRouter("", "", 0)
	_, err := o.Analyze(context.Background(), "t", "d", "o/r")
	assert.ErrorIs(t, err, ErrMissingCredential)
}
