package workflow

import (
	"context"
	"slices"
	"strings"

	"github.com/mangaalertitalia/web/config"
	"github.com/mangaalertitalia/web/matchers"
	"github.com/mangaalertitalia/web/messages"
)

// Intent is the visitor's unsubmitted choice. Titles keep the order in which they
// were selected and never contain duplicates.
type Intent struct {
	Email  string
	Titles []string
}

func (i Intent) Selected(title string) bool {
	return slices.Contains(i.Titles, title)
}

// Form collects an email and a set of catalog titles and submits them as a new
// subscription.
type Form struct {
	machine
	catalog config.Catalog
	service Service
	intent  Intent
}

func NewForm(catalog config.Catalog, service Service, localizer Localizer) *Form {
	f := &Form{
		catalog: catalog,
		service: service,
	}
	f.localizer = localizer
	f.outcome = idle()
	return f
}

func (f *Form) Catalog() config.Catalog {
	return f.catalog
}

func (f *Form) SetEmail(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.intent.Email = email
}

// Toggle selects or deselects a title. Titles outside the catalog are ignored and
// reported with false.
func (f *Form) Toggle(title string, checked bool) bool {
	if !f.catalog.Contains(title) {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if checked {
		if !slices.Contains(f.intent.Titles, title) {
			f.intent.Titles = append(f.intent.Titles, title)
		}
		return true
	}

	f.intent.Titles = slices.DeleteFunc(f.intent.Titles, func(t string) bool { return t == title })
	return true
}

func (f *Form) Intent() Intent {
	f.mu.Lock()
	defer f.mu.Unlock()
	intent := Intent{Email: f.intent.Email}
	if len(f.intent.Titles) > 0 {
		intent.Titles = slices.Clone(f.intent.Titles)
	}
	return intent
}

// Submit validates the intent and, if it passes, sends exactly one subscribe call.
// Validation failures settle immediately without touching the network. While a call
// is outstanding Submit returns that call's handle instead of sending another one.
func (f *Form) Submit(ctx context.Context) *Request {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		r := settledRequest(idle())
		r.markStale()
		return r
	}
	if f.pending != nil {
		return f.pending
	}

	email := strings.TrimSpace(f.intent.Email)
	if !matchers.MatchesEmailShape(email) {
		f.outcome = failure(f.localizer.Text(messages.InvalidEmail), ErrInvalidEmail)
		return settledRequest(f.outcome)
	}
	if len(f.intent.Titles) == 0 {
		f.outcome = failure(f.localizer.Text(messages.NoTitleSelected), ErrNoTitles)
		return settledRequest(f.outcome)
	}

	titles := slices.Clone(f.intent.Titles)
	call := func(ctx context.Context) (string, error) {
		return f.service.Subscribe(ctx, email, titles)
	}
	return f.start(ctx, call, f.reset)
}

// reset clears the intent after a successful subscription. f.mu must be held.
func (f *Form) reset() {
	f.intent = Intent{}
}
