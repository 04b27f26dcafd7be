package completion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholia-labs/scholia-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

type mockCompletion struct {
	completeCalls int
	chatCalls     int
	pingCalls     int
	closed        bool
}

func (m *mockCompletion) Complete(ctx context.Context, prompt string, opts driven.CompleteOptions) (string, error) {
	m.completeCalls++
	return "completed", nil
}

func (m *mockCompletion) CompleteStream(ctx context.Context, prompt string, opts driven.CompleteOptions, onChunk func(string)) (string, error) {
	if onChunk != nil {
		onChunk("streamed")
	}
	return "streamed", nil
}

func (m *mockCompletion) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.CompleteOptions) (string, error) {
	m.chatCalls++
	return "chatted", nil
}

func (m *mockCompletion) ModelName() string { return "mock-model" }

func (m *mockCompletion) Ping(ctx context.Context) error {
	m.pingCalls++
	return nil
}

func (m *mockCompletion) Close() error {
	m.closed = true
	return nil
}

// --- Tests ---

func TestRateLimited_PassesThrough(t *testing.T) {
	inner := &mockCompletion{}
	limited := NewRateLimited(inner, RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 100})
	ctx := context.Background()

	result, err := limited.Complete(ctx, "prompt", driven.CompleteOptions{})
	require.NoError(t, err)
	assert.Equal(t, "completed", result)

	var chunks []string
	result, err = limited.CompleteStream(ctx, "prompt", driven.CompleteOptions{}, func(c string) {
		chunks = append(chunks, c)
	})
	require.NoError(t, err)
	assert.Equal(t, "streamed", result)
	assert.Equal(t, []string{"streamed"}, chunks)

	result, err = limited.Chat(ctx, nil, driven.CompleteOptions{})
	require.NoError(t, err)
	assert.Equal(t, "chatted", result)

	assert.Equal(t, "mock-model", limited.ModelName())
	assert.Equal(t, 1, inner.completeCalls)
	assert.Equal(t, 1, inner.chatCalls)
}

func TestRateLimited_ZeroConfigUsesDefault(t *testing.T) {
	limited := NewRateLimited(&mockCompletion{}, RateLimitConfig{})

	// DefaultRateLimit allows a burst; the first call must not block.
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := limited.Complete(context.Background(), "prompt", driven.CompleteOptions{})
		assert.NoError(t, err)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("first call should pass within the default burst")
	}
}

func TestRateLimited_PingBypassesLimiter(t *testing.T) {
	inner := &mockCompletion{}
	limited := NewRateLimited(inner, RateLimitConfig{RequestsPerSecond: 0.0001, BurstSize: 1})
	ctx := context.Background()

	// Drain the single burst token.
	_, err := limited.Complete(ctx, "prompt", driven.CompleteOptions{})
	require.NoError(t, err)

	// Ping still goes straight through.
	pingCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, limited.Ping(pingCtx))
	assert.Equal(t, 1, inner.pingCalls)
}

func TestRateLimited_BackoffBlocksUntilCancel(t *testing.T) {
	limited := NewRateLimited(&mockCompletion{}, RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 100})
	limited.RecordRateLimitError(30)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := limited.Complete(ctx, "prompt", driven.CompleteOptions{})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimited_BackoffDefaultsWhenUnspecified(t *testing.T) {
	limited := NewRateLimited(&mockCompletion{}, RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 100})
	limited.RecordRateLimitError(0)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := limited.Complete(ctx, "prompt", driven.CompleteOptions{})

	assert.Error(t, err)
}

func TestRateLimited_Close(t *testing.T) {
	inner := &mockCompletion{}
	limited := NewRateLimited(inner, RateLimitConfig{})

	require.NoError(t, limited.Close())

	assert.True(t, inner.closed)
}
