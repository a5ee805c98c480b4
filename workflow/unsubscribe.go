package workflow

import (
	"context"
	"net/url"
	"sync"

	"github.com/mangaalertitalia/web/messages"
)

const TokenParam = "unsubscribe_token"

// Unsubscriber removes a subscription using the token from an emailed link. It runs
// once per instance.
type Unsubscriber struct {
	machine
	service Service

	once    sync.Once
	request *Request
}

func NewUnsubscriber(service Service, localizer Localizer) *Unsubscriber {
	u := &Unsubscriber{service: service}
	u.localizer = localizer
	u.outcome = idle()
	return u
}

// TokenFromURL returns the unsubscribe token carried by the page address, or "".
func TokenFromURL(pageURL *url.URL) string {
	if pageURL == nil {
		return ""
	}
	return pageURL.Query().Get(TokenParam)
}

// Activate reads the token from pageURL and sends the unsubscribe call. Only the first
// call does anything; later calls return the same handle.
func (u *Unsubscriber) Activate(ctx context.Context, pageURL *url.URL) *Request {
	u.once.Do(func() {
		u.request = u.run(ctx, TokenFromURL(pageURL))
	})
	return u.request
}

func (u *Unsubscriber) run(ctx context.Context, token string) *Request {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.closed {
		r := settledRequest(idle())
		r.markStale()
		return r
	}
	if token == "" {
		u.outcome = failure(u.localizer.Text(messages.MissingToken), ErrMissingToken)
		return settledRequest(u.outcome)
	}

	call := func(ctx context.Context) (string, error) {
		return u.service.Unsubscribe(ctx, token)
	}
	return u.start(ctx, call, nil)
}
