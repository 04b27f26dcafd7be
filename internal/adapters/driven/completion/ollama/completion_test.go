package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholia-labs/scholia-cli/internal/core/ports/driven"
)

// --- Test helpers ---

func newTestService(handler http.Handler) (*Service, *httptest.Server) {
	server := httptest.NewServer(handler)
	svc := New(Config{BaseURL: server.URL, Model: "test-model"})
	return svc, server
}

// --- Tests ---

func TestService_Complete(t *testing.T) {
	var gotReq generateRequest
	svc, server := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(generateResponse{Response: "a generated answer", Done: true})
	}))
	defer server.Close()

	result, err := svc.Complete(context.Background(), "explain entropy", driven.CompleteOptions{
		MaxTokens:   256,
		Temperature: 0.2,
		StopWords:   []string{"END"},
	})

	require.NoError(t, err)
	assert.Equal(t, "a generated answer", result)
	assert.Equal(t, "test-model", gotReq.Model)
	assert.Equal(t, "explain entropy", gotReq.Prompt)
	assert.False(t, gotReq.Stream)
	require.NotNil(t, gotReq.Options)
	assert.Equal(t, 256, gotReq.Options.NumPredict)
	assert.InDelta(t, 0.2, gotReq.Options.Temperature, 0.001)
	assert.Equal(t, []string{"END"}, gotReq.Options.Stop)
}

func TestService_Complete_ZeroOptionsOmitted(t *testing.T) {
	var gotReq generateRequest
	svc, server := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(generateResponse{Response: "ok", Done: true})
	}))
	defer server.Close()

	_, err := svc.Complete(context.Background(), "prompt", driven.CompleteOptions{})

	require.NoError(t, err)
	assert.Nil(t, gotReq.Options)
}

func TestService_Complete_ServerError(t *testing.T) {
	svc, server := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := svc.Complete(context.Background(), "prompt", driven.CompleteOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "model not found")
}

func TestService_CompleteStream(t *testing.T) {
	svc, server := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)

		enc := json.NewEncoder(w)
		enc.Encode(generateResponse{Response: "first "})
		enc.Encode(generateResponse{Response: "second"})
		enc.Encode(generateResponse{Done: true})
	}))
	defer server.Close()

	var chunks []string
	result, err := svc.CompleteStream(context.Background(), "prompt", driven.CompleteOptions{}, func(chunk string) {
		chunks = append(chunks, chunk)
	})

	require.NoError(t, err)
	assert.Equal(t, "first second", result)
	assert.Equal(t, []string{"first ", "second"}, chunks)
}

func TestService_CompleteStream_MalformedChunk(t *testing.T) {
	svc, server := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{\"response\":\"good\"}\nnot json\n"))
	}))
	defer server.Close()

	result, err := svc.CompleteStream(context.Background(), "prompt", driven.CompleteOptions{}, nil)

	require.Error(t, err)
	assert.Equal(t, "good", result)
}

func TestService_Chat(t *testing.T) {
	var gotReq chatRequest
	svc, server := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(chatResponse{
			Message: chatMessage{Role: "assistant", Content: "a chat reply"},
			Done:    true,
		})
	}))
	defer server.Close()

	result, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "system", Content: "you are helpful"},
		{Role: "user", Content: "hello"},
	}, driven.CompleteOptions{})

	require.NoError(t, err)
	assert.Equal(t, "a chat reply", result)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "hello", gotReq.Messages[1].Content)
}

func TestService_Ping(t *testing.T) {
	svc, server := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	assert.NoError(t, svc.Ping(context.Background()))
}

func TestService_Ping_Unreachable(t *testing.T) {
	svc, server := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	assert.Error(t, svc.Ping(context.Background()))
}

func TestService_Defaults(t *testing.T) {
	svc := New(Config{})

	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.Equal(t, DefaultBaseURL, svc.baseURL)
}
