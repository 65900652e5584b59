package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_CollectsAllResults(t *testing.T) {
	pool := NewPool[int](context.Background(), 4)

	for i := 0; i < 10; i++ {
		n := i
		pool.Submit(func(ctx context.Context) int { return n * 2 })
	}

	results := pool.Wait()
	if len(results) != 10 {
		t.Fatalf("Expected 10 results, got %d", len(results))
	}

	sum := 0
	for _, r := range results {
		sum += r
	}
	if sum != 90 {
		t.Errorf("Expected sum 90, got %d", sum)
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	const size = 3

	var mu sync.Mutex
	running, peak := 0, 0

	pool := NewPool[struct{}](context.Background(), size)
	for i := 0; i < 20; i++ {
		pool.Submit(func(ctx context.Context) struct{} {
			mu.Lock()
			running++
			if running > peak {
				peak = running
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			running--
			mu.Unlock()
			return struct{}{}
		})
	}

	if results := pool.Wait(); len(results) != 20 {
		t.Fatalf("Expected 20 results, got %d", len(results))
	}
	if peak > size {
		t.Errorf("Concurrency exceeded pool size: peak %d > %d", peak, size)
	}
}

func TestPool_SizeClamped(t *testing.T) {
	pool := NewPool[int](context.Background(), 0)
	pool.Submit(func(ctx context.Context) int { return 7 })

	results := pool.Wait()
	if len(results) != 1 || results[0] != 7 {
		t.Errorf("Expected [7], got %v", results)
	}
}

func TestPool_ShutdownCancelsTasks(t *testing.T) {
	pool := NewPool[error](context.Background(), 2)

	started := make(chan struct{})
	var once sync.Once
	for i := 0; i < 2; i++ {
		pool.Submit(func(ctx context.Context) error {
			once.Do(func() { close(started) })
			<-ctx.Done()
			return ctx.Err()
		})
	}

	<-started
	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not release the workers")
	}
}

func TestPool_SubmitAfterShutdownIsNoop(t *testing.T) {
	var executed atomic.Int32

	pool := NewPool[int](context.Background(), 1)
	pool.Shutdown()
	pool.Submit(func(ctx context.Context) int {
		executed.Add(1)
		return 0
	})

	if executed.Load() != 0 {
		t.Error("Task executed after shutdown")
	}
}

func TestPool_InheritsCallerContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	pool := NewPool[error](ctx, 1)
	started := make(chan struct{})
	pool.Submit(func(ctx context.Context) error {
		close(started)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
			return nil
		}
	})

	<-started
	cancel()

	results := pool.Wait()
	if len(results) == 1 && results[0] == nil {
		t.Error("Task should observe caller cancellation")
	}
}
