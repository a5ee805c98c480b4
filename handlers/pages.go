package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/mangaalertitalia/web/config"
	"github.com/mangaalertitalia/web/enums"
	"github.com/mangaalertitalia/web/messages"
	"github.com/mangaalertitalia/web/workflow"
)

const (
	PageHome        = "home"
	PageUnsubscribe = "unsubscribe"
	PageInfo        = "info"
	PageNotFound    = "notfound"
)

//go:embed templates/*.html
var pageTemplates embed.FS

// Renderer executes the page templates. Each page is parsed together with the shared
// layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{PageHome, PageUnsubscribe, PageInfo, PageNotFound} {
		tmpl, err := template.New(name).ParseFS(pageTemplates, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

type option struct {
	Title   string
	Checked bool
}

type formView struct {
	Email   string
	Options []option
}

// page is the data every template receives.
type page struct {
	Lang    string
	Title   string
	Outcome workflow.Outcome
	Form    formView
	Catalog config.Catalog

	localizer *messages.Localizer
}

func newPage(localizer *messages.Localizer, title messages.Key) page {
	return page{
		Lang:      localizer.Tag().String(),
		Title:     localizer.Text(title),
		localizer: localizer,
	}
}

func (p page) T(key string) string {
	return p.localizer.Text(messages.Key(key))
}

func (p page) Loading() bool {
	return p.Outcome.Kind == enums.OutcomeLoading
}

func (p page) Succeeded() bool {
	return p.Outcome.Kind == enums.OutcomeSuccess
}

func (p page) Failed() bool {
	return p.Outcome.Kind == enums.OutcomeFailure
}

func newFormView(catalog config.Catalog, intent workflow.Intent) formView {
	view := formView{
		Email:   intent.Email,
		Options: make([]option, 0, len(catalog)),
	}
	for _, title := range catalog {
		view.Options = append(view.Options, option{Title: title, Checked: intent.Selected(title)})
	}
	return view
}

// localizerFor picks the page language from ?lang= first, then Accept-Language.
func localizerFor(r *http.Request, fallback string) *messages.Localizer {
	tag := messages.Negotiate(messages.ParseFallback(fallback), r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
	return messages.NewLocalizer(tag)
}
