package clients

import (
	"encoding/json"
	"fmt"
)

// ServiceError is a non-2xx response that carried an error message meant for the user.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("notification service: status %d: %s", e.StatusCode, e.Message)
}

// TransportError covers everything the user should only see a generic message for:
// network failures, unreadable bodies and non-2xx responses without an error message.
// StatusCode is 0 when no response was received.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("notification service: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("notification service: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseServiceError returns the "error" field of a JSON object body when it is a
// non-empty string, and "" for anything else.
func ParseServiceError(body []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	raw, ok := payload["error"]
	if !ok {
		return ""
	}
	var message string
	if err := json.Unmarshal(raw, &message); err != nil {
		return ""
	}
	return message
}
