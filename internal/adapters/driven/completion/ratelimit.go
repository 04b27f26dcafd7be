// Package completion wraps completion service backends with shared
// behaviour. The concrete backends live in the subpackages.
package completion

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/scholia-labs/scholia-cli/internal/core/ports/driven"
)

// Ensure RateLimited implements the interface.
var _ driven.CompletionService = (*RateLimited)(nil)

// RateLimitConfig holds rate limiting configuration for a backend.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimit is a conservative default for hosted APIs, well
// below provider limits to avoid hitting quotas during batch analysis.
var DefaultRateLimit = RateLimitConfig{RequestsPerSecond: 2.0, BurstSize: 5}

// RateLimited wraps a completion service with a token bucket limiter
// plus backoff after a 429-style rejection. The understanding pipeline
// issues a burst of calls per document; without this, concept batches
// alone can trip provider quotas.
type RateLimited struct {
	inner   driven.CompletionService
	limiter *rate.Limiter

	mu      sync.Mutex
	retryAt time.Time
}

// NewRateLimited wraps a service with the given limits. A zero config
// falls back to DefaultRateLimit.
func NewRateLimited(inner driven.CompletionService, cfg RateLimitConfig) *RateLimited {
	if cfg.RequestsPerSecond <= 0 {
		cfg = DefaultRateLimit
	}
	return &RateLimited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// wait blocks until a request can be made, respecting both the token
// bucket and any backoff period from a previous rejection.
func (r *RateLimited) wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimitError sets a backoff period. Call this when the
// backend reports a rate limit rejection.
func (r *RateLimited) RecordRateLimitError(retryAfterSeconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if retryAfterSeconds <= 0 {
		retryAfterSeconds = 60
	}
	r.retryAt = time.Now().Add(time.Duration(retryAfterSeconds) * time.Second)
}

// Complete produces text from a prompt.
func (r *RateLimited) Complete(ctx context.Context, prompt string, opts driven.CompleteOptions) (string, error) {
	if err := r.wait(ctx); err != nil {
		return "", err
	}
	return r.inner.Complete(ctx, prompt, opts)
}

// CompleteStream produces text incrementally.
func (r *RateLimited) CompleteStream(ctx context.Context, prompt string, opts driven.CompleteOptions, onChunk func(string)) (string, error) {
	if err := r.wait(ctx); err != nil {
		return "", err
	}
	return r.inner.CompleteStream(ctx, prompt, opts, onChunk)
}

// Chat conducts a multi-turn conversation.
func (r *RateLimited) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.CompleteOptions) (string, error) {
	if err := r.wait(ctx); err != nil {
		return "", err
	}
	return r.inner.Chat(ctx, messages, opts)
}

// ModelName returns the wrapped service's model name.
func (r *RateLimited) ModelName() string {
	return r.inner.ModelName()
}

// Ping validates the wrapped service is reachable. Pings bypass the
// limiter; they are cheap and happen once at startup.
func (r *RateLimited) Ping(ctx context.Context) error {
	return r.inner.Ping(ctx)
}

// Close releases the wrapped service's resources.
func (r *RateLimited) Close() error {
	return r.inner.Close()
}
