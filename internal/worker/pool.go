// Package worker provides the concurrency primitives for benchmark
// runs: a bounded pool that fans document evaluations out over a fixed
// number of goroutines, and a per-provider rate limiter pacing the
// underlying API calls.
package worker

import (
	"context"
	"sync"
)

// Task produces one result. Tasks must honor ctx cancellation; a pool
// shutdown cancels the context passed to every running task.
type Task[T any] func(ctx context.Context) T

// Pool fans tasks out over a fixed number of goroutines and collects
// every result. Workers start immediately; Submit queues tasks and
// Wait closes the queue and returns what was collected.
type Pool[T any] struct {
	tasks  chan Task[T]
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	mu  sync.Mutex
	out []T
}

// NewPool starts size workers under the given context. Size is clamped
// to at least one.
func NewPool[T any](ctx context.Context, size int) *Pool[T] {
	if size < 1 {
		size = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pool[T]{
		tasks:  make(chan Task[T], size*2),
		ctx:    ctx,
		cancel: cancel,
	}

	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.work()
	}
	return p
}

func (p *Pool[T]) work() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			r := task(p.ctx)
			p.mu.Lock()
			p.out = append(p.out, r)
			p.mu.Unlock()
		}
	}
}

// Submit queues a task, blocking while the queue is full. No-op after
// the pool context is cancelled. Must not be called after Wait.
func (p *Pool[T]) Submit(task Task[T]) {
	select {
	case <-p.ctx.Done():
	case p.tasks <- task:
	}
}

// Wait closes the queue, waits for the workers to finish, and returns
// all collected results. Result order follows completion, not
// submission. Call exactly once.
func (p *Pool[T]) Wait() []T {
	close(p.tasks)
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out
}

// Shutdown cancels in-flight tasks and releases the workers without
// draining the queue.
func (p *Pool[T]) Shutdown() {
	p.cancel()
	p.wg.Wait()
}
