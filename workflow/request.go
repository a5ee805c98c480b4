package workflow

import (
	"context"
	"sync"
)

// Request is the handle for one submission to the notification service. It settles
// exactly once. A cancelled request is stale: its late response is dropped and never
// touches the component that issued it.
type Request struct {
	done     chan struct{}
	cancel   context.CancelFunc
	onCancel func()

	mu      sync.Mutex
	outcome Outcome
	stale   bool
}

func newRequest(cancel context.CancelFunc) *Request {
	return &Request{
		done:   make(chan struct{}),
		cancel: cancel,
	}
}

// settledRequest is returned when nothing was sent, e.g. after a validation failure.
func settledRequest(outcome Outcome) *Request {
	r := newRequest(func() {})
	r.outcome = outcome
	close(r.done)
	return r
}

func (r *Request) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the request settles or ctx is done.
func (r *Request) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-r.done:
		return r.Outcome(), nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

func (r *Request) Outcome() Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcome
}

func (r *Request) Stale() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stale
}

// Cancel aborts the call and detaches the request from its component. It is a no-op
// once the request has settled.
func (r *Request) Cancel() {
	if r.onCancel != nil {
		r.onCancel()
	}
	r.cancel()
}

func (r *Request) markStale() {
	r.mu.Lock()
	r.stale = true
	r.mu.Unlock()
}

func (r *Request) finish(outcome Outcome, stale bool) {
	r.mu.Lock()
	r.outcome = outcome
	r.stale = r.stale || stale
	r.mu.Unlock()
	close(r.done)
}
