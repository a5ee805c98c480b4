package handlers

import (
	"log/slog"
	"net/http"

	"github.com/mangaalertitalia/web/enums"
	"github.com/mangaalertitalia/web/messages"
	"github.com/mangaalertitalia/web/workflow"
)

type UnsubscribeHandler struct {
	logger   *slog.Logger
	service  workflow.Service
	observer OutcomeObserver
	language string
}

func NewUnsubscribeHandler(logger *slog.Logger, service workflow.Service, observer OutcomeObserver, language string) *UnsubscribeHandler {
	return &UnsubscribeHandler{
		logger:   logger,
		service:  service,
		observer: observer,
		language: language,
	}
}

// Unsubscribe serves the emailed link /unsubscribe?unsubscribe_token=...
func (h *UnsubscribeHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) Result {
	localizer := localizerFor(r, h.language)
	unsubscriber := workflow.NewUnsubscriber(h.service, localizer)
	defer unsubscriber.Close()

	outcome, err := unsubscriber.Activate(r.Context(), r.URL).Wait(r.Context())
	if err != nil {
		h.logger.Info("unsubscribe: request abandoned", "error", err)
		outcome = unsubscriber.Outcome()
	}
	record(h.logger, h.observer, enums.FlowUnsubscribe, outcome)

	data := newPage(localizer, messages.PageUnsubscribeTitle)
	data.Outcome = outcome
	return Page(http.StatusOK, PageUnsubscribe, data)
}
