package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sozercan/algowhisperer/internal/config"
)

const chatCompletion = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o-mini",
  "choices": [{
    "index": 0,
    "message": {"role": "assistant", "content": "# Approach Overview"},
    "finish_reason": "stop"
  }],
  "usage": {"prompt_tokens": 12, "completion_tokens": 8, "total_tokens": 20}
}`

func TestOpenAIAnalyze(t *testing.T) {
	var body map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletion))
	}))
	defer ts.Close()

	p, err := NewOpenAI(&config.LLMConfig{
		Provider: config.ProviderOpenAI,
		APIKey:   "test",
		Endpoint: ts.URL,
		Model:    "gpt-4o-mini",
	})
	require.NoError(t, err)

	resp, err := p.Analyze(context.Background(), []string{"system"}, []string{"prompt"}, WithTemperature(0.2), WithWebSearch(true))
	require.NoError(t, err)

	assert.Equal(t, "# Approach Overview", resp.Content)
	assert.Empty(t, resp.Citations)
	assert.Equal(t, int64(20), resp.Usage.TotalTokens)
	assert.Equal(t, "gpt-4o-mini", body["model"])

	msgs, ok := body["messages"].([]interface{})
	require.True(t, ok)
	assert.Len(t, msgs, 2)
}

func TestOpenAIUsesConfiguredTemperature(t *testing.T) {
	var body map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletion))
	}))
	defer ts.Close()

	p, err := NewOpenAI(&config.LLMConfig{
		Provider:    config.ProviderOpenAI,
		APIKey:      "test",
		Endpoint:    ts.URL,
		Temperature: 0.9,
	})
	require.NoError(t, err)

	_, err = p.Analyze(context.Background(), []string{"system"}, []string{"prompt"})
	require.NoError(t, err)
	assert.InDelta(t, 0.9, body["temperature"], 1e-9)
}

func TestOpenAIAnalyzeServerError(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer ts.Close()

	p, err := NewOpenAI(&config.LLMConfig{Provider: config.ProviderOpenAI, APIKey: "test", Endpoint: ts.URL})
	require.NoError(t, err)

	_, err = p.Analyze(context.Background(), nil, []string{"prompt"})
	assert.Error(t, err)
	assert.Equal(t, 1, calls, "provider calls must not be retried")
}

func TestOpenAIRequiresUserMessage(t *testing.T) {
	p, err := NewOpenAI(&config.LLMConfig{Provider: config.ProviderOpenAI, APIKey: "test"})
	require.NoError(t, err)

	_, err = p.Analyze(context.Background(), []string{"system"}, nil)
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}
