package workflow

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/mangaalertitalia/web/config"
	"github.com/mangaalertitalia/web/messages"
)

var testCatalog = config.Catalog{"Solo Leveling", "Chainsaw Man", "Jujutsu Kaisen"}

var english = messages.NewLocalizer(language.English)

type subscribeCall struct {
	email  string
	titles []string
}

type fakeService struct {
	message string
	err     error
	gate    chan struct{} // when set, calls block until it is closed or ctx is done

	mu           sync.Mutex
	subscribes   []subscribeCall
	unsubscribes []string
}

func (s *fakeService) Subscribe(ctx context.Context, email string, titles []string) (string, error) {
	s.mu.Lock()
	s.subscribes = append(s.subscribes, subscribeCall{email, titles})
	s.mu.Unlock()
	return s.respond(ctx)
}

func (s *fakeService) Unsubscribe(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	s.unsubscribes = append(s.unsubscribes, token)
	s.mu.Unlock()
	return s.respond(ctx)
}

func (s *fakeService) respond(ctx context.Context) (string, error) {
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.message, s.err
}

func (s *fakeService) subscribeCalls() []subscribeCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]subscribeCall(nil), s.subscribes...)
}

func (s *fakeService) unsubscribeCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.unsubscribes...)
}

func wait(t *testing.T, req *Request) Outcome {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	outcome, err := req.Wait(ctx)
	require.NoError(t, err)
	return outcome
}
