package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/flockfeed/backend/config"
)

const testModelID = "amazon.nova-pro-v1:0"

func testAdvisorConfig(url string, attempts int) config.AdvisorConfig {
	return config.AdvisorConfig{
		Provider:       "bedrock",
		Region:         "us-east-1",
		ModelID:        testModelID,
		BearerToken:    "test-token",
		EndpointURL:    url,
		ConnectTimeout: 2 * time.Second,
		ReadTimeout:    2 * time.Second,
		MaxAttempts:    attempts,
		MaxTokens:      512,
		Temperature:    0.3,
		TopP:           0.9,
	}
}

func novaReply(text string) map[string]any {
	return map[string]any{
		"output": map[string]any{
			"message": map[string]any{
				"role":    "assistant",
				"content": []map[string]any{{"text": text}},
			},
		},
		"stopReason": "end_turn",
	}
}

func TestBedrockGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/model/"+testModelID+"/invoke", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body novaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Messages, 1)
		assert.Equal(t, "user", body.Messages[0].Role)
		assert.Equal(t, "how much feed?", body.Messages[0].Content[0].Text)
		assert.Equal(t, 512, body.InferenceConfig.MaxTokens)
		assert.InDelta(t, 0.3, body.InferenceConfig.Temperature, 1e-9)
		assert.InDelta(t, 0.9, body.InferenceConfig.TopP, 1e-9)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(novaReply("  {\"ok\":true}  "))
	}))
	defer srv.Close()

	client := NewBedrockClient(testAdvisorConfig(srv.URL, 1), nil)
	defer client.Close()

	text, err := client.Generate(context.Background(), "how much feed?")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, text)
}

func TestBedrockCredentialRejected(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"The security token included in the request is invalid."}`))
	}))
	defer srv.Close()

	client := NewBedrockClient(testAdvisorConfig(srv.URL, 3), nil)
	defer client.Close()

	_, err := client.Generate(context.Background(), "test")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusForbidden, ue.StatusCode)
	assert.True(t, ue.CredentialRejected)
	assert.Contains(t, ue.Message, "security token")
	assert.True(t, IsCredentialError(err))
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "4xx responses are not retried")
}

func TestBedrockRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(novaReply("recovered"))
	}))
	defer srv.Close()

	client := NewBedrockClient(testAdvisorConfig(srv.URL, 3), nil)
	defer client.Close()

	text, err := client.Generate(context.Background(), "test")
	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestBedrockGivesUpAfterMaxAttempts(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	client := NewBedrockClient(testAdvisorConfig(srv.URL, 2), nil)
	defer client.Close()

	_, err := client.Generate(context.Background(), "test")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusInternalServerError, ue.StatusCode)
	assert.False(t, ue.CredentialRejected)
	assert.False(t, IsCredentialError(err))
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestBedrockEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"output":{"message":{"role":"assistant","content":[]}}}`))
	}))
	defer srv.Close()

	client := NewBedrockClient(testAdvisorConfig(srv.URL, 1), nil)
	defer client.Close()

	_, err := client.Generate(context.Background(), "test")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, ue.Message, "no content")
}

func TestNewModelClient(t *testing.T) {
	cfg := testAdvisorConfig("http://127.0.0.1:1", 1)

	client, err := NewModelClient(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "bedrock", client.Name())
	client.(*BedrockClient).Close()

	cfg.Provider = "gemini"
	_, err = NewModelClient(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "GEMINI_API_KEY")

	cfg.Provider = "oracle"
	_, err = NewModelClient(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "unknown model provider")
}
