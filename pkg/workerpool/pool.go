// Package workerpool runs tasks on a fixed set of goroutines with a bounded
// queue. Batch solves use it to cap how many boards are searched at once.
//
//	pool := workerpool.New(4)
//	defer pool.Shutdown()
//
//	err := pool.SubmitWait(ctx, func() { solve(board) })
//	if errors.Is(err, workerpool.ErrPoolFull) {
//	    // only from Submit: reject with 429
//	}
package workerpool

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"

	"github.com/shashiranjanraj/sudoku/pkg/logger"
)

var (
	// ErrPoolFull is returned by Submit when every worker is busy and the
	// queue is at capacity.
	ErrPoolFull = errors.New("workerpool: pool is full")
	// ErrPoolClosed is returned once Shutdown has been called.
	ErrPoolClosed = errors.New("workerpool: pool is closed")
)

type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// New starts size workers (at least one) with a queue of 2*size tasks.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{tasks: make(chan func(), size*2)}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit enqueues task without blocking.
func (p *Pool) Submit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait blocks until task is queued or ctx ends.
func (p *Pool) SubmitWait(ctx context.Context, task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting tasks and waits for queued ones to finish.
// Safe to call more than once.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		run(task)
	}
}

// run keeps a panicking task from killing its worker.
func run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("workerpool: task panicked", "panic", r, "stack", string(debug.Stack()))
		}
	}()
	task()
}
