// Package loop provides a single-goroutine event loop implementing
// driven.Executor for headless use.
package loop

import (
	"context"
	"sync"

	"github.com/custodia-labs/lore/internal/core/ports/driven"
)

// Ensure Loop implements the interface.
var _ driven.Executor = (*Loop)(nil)

// Loop runs work on background goroutines and applies completions on the
// goroutine that calls Run or Drain.
//
// Go must only be called from that goroutine (or before it starts).
// Post is safe from any goroutine.
type Loop struct {
	completions chan func()
	posted      chan func()
	closed      chan struct{}
	closeOnce   sync.Once
	pending     int
}

// New creates an idle loop.
func New() *Loop {
	return &Loop{
		completions: make(chan func()),
		posted:      make(chan func(), 16),
		closed:      make(chan struct{}),
	}
}

// Go runs work on its own goroutine and queues the completion it returns.
func (l *Loop) Go(work func() func()) {
	l.pending++
	go func() {
		done := work()
		select {
		case l.completions <- done:
		case <-l.closed:
		}
	}()
}

// Post queues fn to run on the loop.
func (l *Loop) Post(fn func()) {
	select {
	case l.posted <- fn:
	case <-l.closed:
	}
}

// Pending returns how many completions have not been applied yet.
func (l *Loop) Pending() int {
	return l.pending
}

// Run applies completions and posted functions until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := l.step(ctx); err != nil {
			return err
		}
	}
}

// Drain applies completions until none are pending, including completions
// of work started by earlier completions.
func (l *Loop) Drain(ctx context.Context) error {
	for l.pending > 0 {
		if err := l.step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close releases goroutines still waiting to deliver completions.
// Their completions are dropped.
func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.closed) })
}

func (l *Loop) step(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.closed:
		return context.Canceled
	case done := <-l.completions:
		l.pending--
		if done != nil {
			done()
		}
	case fn := <-l.posted:
		fn()
	}
	return nil
}
