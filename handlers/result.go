package handlers

import (
	"errors"
	"net/http"
)

type Handler func(http.ResponseWriter, *http.Request) Result

// Result is what a handler wants written back. A non-empty Page is rendered as HTML
// with Body as template data; otherwise Body is encoded as JSON.
type Result struct {
	Error error
	Code  int
	Page  string
	Body  interface{}
}

func Ok(body interface{}) Result {
	return Result{
		Code: http.StatusOK,
		Body: body,
	}
}

func Page(code int, name string, data interface{}) Result {
	return Result{
		Code: code,
		Page: name,
		Body: data,
	}
}

func InternalError(error error, message string) Result {
	return Result{
		Error: errors.Join(errors.New(message), error),
		Code:  http.StatusInternalServerError,
	}
}
