package llm

import (
	"context"
	"testing"
	"time"

	"github.com/regsight/regsight/internal/worker"
)

type countingProvider struct {
	calls int
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) IsAvailable(ctx context.Context) bool { return true }

func (p *countingProvider) Extract(ctx context.Context, req ExtractRequest) (*ExtractResponse, error) {
	p.calls++
	return &ExtractResponse{Text: "{}"}, nil
}

func TestThrottle_PassThrough(t *testing.T) {
	limiter := worker.NewLimiter(10, 1)
	if got := Throttle(nil, limiter); got != nil {
		t.Error("Throttling a nil provider should stay nil")
	}

	inner := &countingProvider{}
	if got := Throttle(inner, nil); got != Provider(inner) {
		t.Error("Throttle without a limiter should return the provider unchanged")
	}
}

func TestThrottle_ForwardsCalls(t *testing.T) {
	inner := &countingProvider{}
	p := Throttle(inner, worker.NewLimiter(1000, 10))

	if p.Name() != "counting" {
		t.Errorf("Name should pass through, got %s", p.Name())
	}

	for i := 0; i < 3; i++ {
		resp, err := p.Extract(context.Background(), ExtractRequest{Prompt: "extract"})
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if resp.Text != "{}" {
			t.Errorf("Unexpected response: %s", resp.Text)
		}
	}
	if inner.calls != 3 {
		t.Errorf("Expected 3 forwarded calls, got %d", inner.calls)
	}
}

func TestThrottle_PacesEveryCall(t *testing.T) {
	inner := &countingProvider{}
	p := Throttle(inner, worker.NewLimiter(100, 1))

	start := time.Now()
	for i := 0; i < 4; i++ {
		if _, err := p.Extract(context.Background(), ExtractRequest{Prompt: "extract"}); err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
	}
	// Burst 1 at 100/s: three of the four calls must wait ~10ms each
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Calls were not paced individually: 4 calls in %v", elapsed)
	}
	if inner.calls != 4 {
		t.Errorf("Expected 4 calls, got %d", inner.calls)
	}
}

func TestThrottle_ContextCancelled(t *testing.T) {
	inner := &countingProvider{}
	p := Throttle(inner, worker.NewLimiter(1, 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Extract(ctx, ExtractRequest{Prompt: "extract"}); err == nil {
		t.Fatal("Expected error for cancelled context")
	}
	if inner.calls != 0 {
		t.Errorf("Inner provider must not be called after cancellation, got %d calls", inner.calls)
	}
}
