package handlers

import (
	"net/http"

	"github.com/mangaalertitalia/web/config"
	"github.com/mangaalertitalia/web/messages"
)

type InfoHandler struct {
	catalog  config.Catalog
	language string
}

func NewInfoHandler(catalog config.Catalog, language string) *InfoHandler {
	return &InfoHandler{
		catalog:  catalog,
		language: language,
	}
}

func (h *InfoHandler) ShowInfo(w http.ResponseWriter, r *http.Request) Result {
	data := newPage(localizerFor(r, h.language), messages.PageInfoTitle)
	data.Catalog = h.catalog
	return Page(http.StatusOK, PageInfo, data)
}

func (h *InfoHandler) NotFound(w http.ResponseWriter, r *http.Request) Result {
	data := newPage(localizerFor(r, h.language), messages.NotFound)
	return Page(http.StatusNotFound, PageNotFound, data)
}

type healthResponse struct {
	Status string `json:"status"`
}

func Health(w http.ResponseWriter, r *http.Request) Result {
	return Ok(healthResponse{Status: "ok"})
}
