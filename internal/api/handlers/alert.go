package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/flashalerts/internal/api/dto"
	"github.com/pratik-mahalle/flashalerts/internal/api/middleware"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/errors"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/logger"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/metrics"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/utils"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/validator"
	"github.com/pratik-mahalle/flashalerts/internal/session"
	"github.com/pratik-mahalle/flashalerts/pkg/alerts"
)

// AlertHandler exposes the request bag as a JSON API. Alerts created here
// are returned in the response body and, for persisted ones, on every
// following request of the same session.
type AlertHandler struct {
	logger    *logger.Logger
	validator *validator.Validator
}

func NewAlertHandler(log *logger.Logger, val *validator.Validator) *AlertHandler {
	return &AlertHandler{logger: log, validator: val}
}

// List returns the alerts of the current request, optionally filtered by
// ?tags=a,b
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	bag := alerts.FromContext(r.Context())

	list := bag.Collect()
	if tags := splitList(r.URL.Query().Get("tags")); len(tags) > 0 {
		list = bag.Tagged(tags...)
	}

	utils.WriteList(w, dto.NewAlertDTOs(list), len(list))
}

// Create adds an alert to the request bag
func (h *AlertHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAlertRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	if req.PersistKey != "" && !session.FromContext(r.Context()).IsActive() {
		utils.WriteError(w, errors.SessionRequired())
		return
	}

	a := alerts.FromContext(r.Context()).New()
	if req.Raw {
		a.SetMessage(req.Message)
	} else {
		a.SetEscapedMessage(req.Message)
	}
	a.SetTypes(req.Types...).SetDismissible(req.Dismissible)
	if len(req.Tags) > 0 {
		a.SetTags(req.Tags...)
	}
	for _, l := range req.Links {
		a.AddLink(l.Replace, l.URL, l.NewTab)
	}
	if req.PersistKey != "" {
		a.PersistAs(req.PersistKey)
	}

	h.logger.With("request_id", middleware.GetRequestID(r)).Debugf("alert %d created", a.Index())
	utils.WriteSuccess(w, http.StatusCreated, dto.NewAlertDTO(a))
}

// Quick adds an alert through the shorthand form, where the name becomes
// the alert type
func (h *AlertHandler) Quick(w http.ResponseWriter, r *http.Request) {
	var req dto.QuickAlertRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	a, err := alerts.FromContext(r.Context()).Quick(chi.URLParam(r, "name"), req.Args...)
	if err != nil {
		metrics.RecordQuickFailure()
		respondError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, dto.NewAlertDTO(a))
}

// Delete abandons the persistent alert stored under key
func (h *AlertHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if !alerts.FromContext(r.Context()).Abandon(key) {
		utils.WriteError(w, errors.NotFound("Persistent alert"))
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Alert abandoned", map[string]string{"key": key})
}
