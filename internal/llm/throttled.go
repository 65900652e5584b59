package llm

import (
	"context"

	"github.com/regsight/regsight/internal/worker"
)

// throttled paces every Extract call through a shared rate limiter.
// The pipeline makes several calls per document, so pacing has to sit
// here rather than around the document loop.
type throttled struct {
	Provider
	limiter *worker.Limiter
}

// Throttle wraps a provider so each Extract waits for rate-limit
// clearance under the provider's name. Nil provider or limiter pass
// through unchanged.
func Throttle(p Provider, limiter *worker.Limiter) Provider {
	if p == nil || limiter == nil {
		return p
	}
	return &throttled{Provider: p, limiter: limiter}
}

func (t *throttled) Extract(ctx context.Context, req ExtractRequest) (*ExtractResponse, error) {
	if err := t.limiter.Wait(ctx, t.Name()); err != nil {
		return nil, err
	}
	return t.Provider.Extract(ctx, req)
}
