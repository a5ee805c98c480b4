package handlers

import (
	"log/slog"
	"net/http"

	"github.com/mangaalertitalia/web/config"
	"github.com/mangaalertitalia/web/enums"
	"github.com/mangaalertitalia/web/messages"
	"github.com/mangaalertitalia/web/workflow"
)

type OutcomeObserver interface {
	ObserveOutcome(flow enums.Flow, outcome enums.OutcomeKind)
}

type SubscriptionHandler struct {
	logger   *slog.Logger
	catalog  config.Catalog
	service  workflow.Service
	observer OutcomeObserver
	language string
}

func NewSubscriptionHandler(logger *slog.Logger, catalog config.Catalog, service workflow.Service, observer OutcomeObserver, language string) *SubscriptionHandler {
	return &SubscriptionHandler{
		logger:   logger,
		catalog:  catalog,
		service:  service,
		observer: observer,
		language: language,
	}
}

func (h *SubscriptionHandler) ShowForm(w http.ResponseWriter, r *http.Request) Result {
	localizer := localizerFor(r, h.language)
	form := workflow.NewForm(h.catalog, h.service, localizer)
	defer form.Close()

	return h.render(localizer, form)
}

func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) Result {
	localizer := localizerFor(r, h.language)
	form := workflow.NewForm(h.catalog, h.service, localizer)
	defer form.Close()

	if err := r.ParseForm(); err != nil {
		h.logger.Debug("subscribe: unreadable form", "error", err)
	}
	form.SetEmail(r.PostForm.Get("email"))
	for _, title := range r.PostForm["titles"] {
		if !form.Toggle(title, true) {
			h.logger.Debug("subscribe: ignoring title outside catalog", "title", title)
		}
	}

	outcome, err := form.Submit(r.Context()).Wait(r.Context())
	if err != nil {
		h.logger.Info("subscribe: request abandoned", "error", err)
		outcome = form.Outcome()
	}
	record(h.logger, h.observer, enums.FlowSubscribe, outcome)

	return h.render(localizer, form)
}

func (h *SubscriptionHandler) render(localizer *messages.Localizer, form *workflow.Form) Result {
	data := newPage(localizer, messages.PageHomeTitle)
	data.Outcome = form.Outcome()
	data.Form = newFormView(h.catalog, form.Intent())
	return Page(http.StatusOK, PageHome, data)
}

func record(logger *slog.Logger, observer OutcomeObserver, flow enums.Flow, outcome workflow.Outcome) {
	if outcome.IsSettled() && observer != nil {
		observer.ObserveOutcome(flow, outcome.Kind)
	}
	if outcome.Kind == enums.OutcomeFailure {
		logger.Info("workflow failed", "flow", flow, "message", outcome.Message, "error", outcome.Err)
	}
}
