package workflow

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mangaalertitalia/web/clients"
	"github.com/mangaalertitalia/web/enums"
	"github.com/mangaalertitalia/web/messages"
)

var (
	ErrInvalidEmail = errors.New("invalid email")
	ErrNoTitles     = errors.New("no title selected")
	ErrMissingToken = errors.New("no unsubscribe token")
)

// Service is the notification service as seen by the workflow components.
type Service interface {
	Subscribe(ctx context.Context, email string, titles []string) (string, error)
	Unsubscribe(ctx context.Context, token string) (string, error)
}

type Localizer interface {
	Text(key messages.Key) string
}

// Outcome is what the page shows for the latest attempt. Message is user-facing;
// Err keeps the cause of a failure for logging and is never rendered.
type Outcome struct {
	Kind    enums.OutcomeKind
	Message string
	Err     error
}

func (o Outcome) IsSettled() bool {
	return o.Kind == enums.OutcomeSuccess || o.Kind == enums.OutcomeFailure
}

func idle() Outcome {
	return Outcome{Kind: enums.OutcomeIdle}
}

func loading() Outcome {
	return Outcome{Kind: enums.OutcomeLoading}
}

func failure(message string, err error) Outcome {
	return Outcome{Kind: enums.OutcomeFailure, Message: message, Err: err}
}

// resolve turns a settled service call into an outcome. Only service errors carry a
// message worth showing; everything else gets the generic fallback.
func resolve(l Localizer, message string, err error) Outcome {
	if err == nil {
		if message == "" {
			message = l.Text(messages.GenericSuccess)
		}
		return Outcome{Kind: enums.OutcomeSuccess, Message: message}
	}

	var serviceErr *clients.ServiceError
	if errors.As(err, &serviceErr) && serviceErr.Message != "" {
		return failure(serviceErr.Message, err)
	}
	return failure(l.Text(messages.GenericFailure), err)
}
