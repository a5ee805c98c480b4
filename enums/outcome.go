package enums

type OutcomeKind string

const (
	// OutcomeIdle means no request has been started, or the last one was discarded.
	OutcomeIdle OutcomeKind = "idle"

	// OutcomeLoading means a request to the notification service is outstanding.
	OutcomeLoading OutcomeKind = "loading"

	// OutcomeSuccess means the service accepted the request and returned a message.
	OutcomeSuccess OutcomeKind = "success"

	// OutcomeFailure means validation failed, the service rejected the request,
	// or it could not be reached.
	OutcomeFailure OutcomeKind = "failure"
)

type Flow string

const (
	FlowSubscribe   Flow = "subscribe"
	FlowUnsubscribe Flow = "unsubscribe"
)
