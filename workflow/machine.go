package workflow

import (
	"context"
	"sync"

	"github.com/mangaalertitalia/web/enums"
)

// machine holds the outcome state shared by both components and guarantees that at
// most one request is outstanding and that each settled request applies exactly one
// transition.
type machine struct {
	localizer Localizer

	mu      sync.Mutex
	outcome Outcome
	pending *Request
	closed  bool
}

func (m *machine) Outcome() Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcome
}

// start sends call in the background and moves to Loading. m.mu must be held.
// onSuccess runs with m.mu held, right after the Success transition.
func (m *machine) start(ctx context.Context, call func(context.Context) (string, error), onSuccess func()) *Request {
	ctx, cancel := context.WithCancel(ctx)
	req := newRequest(cancel)
	req.onCancel = func() { m.invalidate(req) }

	m.pending = req
	m.outcome = loading()

	go func() {
		message, err := call(ctx)
		m.settle(req, message, err, onSuccess)
	}()

	return req
}

func (m *machine) settle(req *Request, message string, err error, onSuccess func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer req.cancel()

	if m.pending != req {
		req.finish(idle(), true)
		return
	}

	m.pending = nil
	outcome := resolve(m.localizer, message, err)
	m.outcome = outcome
	if outcome.Kind == enums.OutcomeSuccess && onSuccess != nil {
		onSuccess()
	}
	req.finish(outcome, false)
}

func (m *machine) invalidate(req *Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending != req {
		return
	}
	m.pending = nil
	m.outcome = idle()
	req.markStale()
}

// Close tears the component down. An outstanding request is cancelled and its
// response dropped; later submissions are ignored.
func (m *machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	if m.pending != nil {
		m.pending.markStale()
		m.pending.cancel()
		m.pending = nil
	}
	m.outcome = idle()
}
