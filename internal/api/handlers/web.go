package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/flashalerts/internal/api/dto"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/logger"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/metrics"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/validator"
	"github.com/pratik-mahalle/flashalerts/pkg/alerts"
	"github.com/pratik-mahalle/flashalerts/pkg/alerts/render"
)

//go:embed templates/*.html
var pageFS embed.FS

var pageTemplate = template.Must(template.ParseFS(pageFS, "templates/*.html"))

var formTypes = []string{"success", "info", "warning", "danger"}

type pageData struct {
	Driver string
	Alerts template.HTML
	Types  []string
}

// WebHandler serves the HTML demo. Alerts posted through its form survive
// the redirect back to the page.
type WebHandler struct {
	renderers *render.Manager
	logger    *logger.Logger
	validator *validator.Validator
}

func NewWebHandler(renderers *render.Manager, log *logger.Logger, val *validator.Validator) *WebHandler {
	return &WebHandler{renderers: renderers, logger: log, validator: val}
}

// Home renders the page with the alerts container. ?tags=a,b narrows the
// container and ?driver=name picks another renderer.
func (h *WebHandler) Home(w http.ResponseWriter, r *http.Request) {
	driver := r.URL.Query().Get("driver")
	if driver == "" {
		driver = h.renderers.DefaultDriver()
	}
	renderer, err := h.renderers.Driver(driver)
	if err != nil {
		respondError(w, err)
		return
	}

	bag := alerts.FromContext(r.Context())
	container := render.Container{Renderer: renderer, Tags: splitList(r.URL.Query().Get("tags"))}
	html, err := container.Render(bag)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to render alerts")
		respondError(w, err)
		return
	}
	if html != "" {
		metrics.RecordRendered("html", len(bag.Tagged(tagsOrDefault(container.Tags, bag)...)))
	}

	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "page", pageData{Driver: driver, Alerts: html, Types: formTypes}); err != nil {
		h.logger.ErrorWithErr(err, "Failed to render page")
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// Flash queues the posted alert and redirects back to the page
func (h *WebHandler) Flash(w http.ResponseWriter, r *http.Request) {
	bag := alerts.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		bag.New().SetEscapedMessage("The form could not be read.").SetTypes("danger")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	form := dto.FlashForm{
		Message: r.PostForm.Get("message"),
		Type:    r.PostForm.Get("type"),
		Persist: r.PostForm.Get("persist"),
	}
	if errs := h.validator.Validate(form); len(errs) > 0 {
		for _, e := range errs {
			bag.New().SetEscapedMessage(e.Message).SetTypes("danger").Dismiss()
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if form.Type == "" {
		form.Type = "info"
	}
	a := bag.New().SetEscapedMessage(form.Message).SetTypes(form.Type).Dismiss()
	if form.Persist != "" {
		a.PersistAs(form.Persist)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Persist stores a durable alert under key, replacing any alert already
// there
func (h *WebHandler) Persist(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := h.validator.ValidateVar(key, "dotted"); err != nil {
		bag := alerts.FromContext(r.Context())
		bag.New().SetEscapedMessage("Invalid persist key.").SetTypes("danger")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	message := r.FormValue("message")
	if message == "" {
		message = key
	}
	alerts.FromContext(r.Context()).New().
		SetEscapedMessage(message).
		SetTypes("warning").
		PersistAs(key)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Forget abandons the durable alert under key
func (h *WebHandler) Forget(w http.ResponseWriter, r *http.Request) {
	if !alerts.FromContext(r.Context()).Abandon(chi.URLParam(r, "key")) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func tagsOrDefault(tags []string, bag *alerts.Bag) []string {
	if len(tags) == 0 {
		return bag.DefaultTags()
	}
	return tags
}
