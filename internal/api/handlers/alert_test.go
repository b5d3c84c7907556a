package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/flashalerts/internal/pkg/logger"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/validator"
	"github.com/pratik-mahalle/flashalerts/internal/session"
	"github.com/pratik-mahalle/flashalerts/pkg/alerts"
	"github.com/pratik-mahalle/flashalerts/pkg/alerts/alertstest"
)

func withBag(req *http.Request, bag *alerts.Bag) *http.Request {
	return req.WithContext(alerts.NewContext(req.Context(), bag))
}

func withParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestAlertHandler_Create(t *testing.T) {
	handler := NewAlertHandler(logger.Nop(), validator.New())

	tests := []struct {
		name           string
		body           string
		withSession    bool
		expectedStatus int
		check          func(t *testing.T, bag *alerts.Bag)
	}{
		{
			name:           "escaped by default",
			body:           `{"message":"<b>hi</b>","types":["success"]}`,
			expectedStatus: http.StatusCreated,
			check: func(t *testing.T, bag *alerts.Bag) {
				alertstest.Expect(t, bag).WithMessage("<b>hi</b>").WithTypes("success").Unique()
			},
		},
		{
			name:           "raw message with link and tags",
			body:           `{"message":"see {docs}","raw":true,"tags":["sidebar"],"links":[{"replace":"docs","url":"https://docs.example","newTab":true}]}`,
			expectedStatus: http.StatusCreated,
			check: func(t *testing.T, bag *alerts.Bag) {
				alertstest.Expect(t, bag).WithRaw("see {docs}").WithTags("sidebar").WithAway("docs", "https://docs.example").Unique()
			},
		},
		{
			name:           "persisted with session",
			body:           `{"message":"hi","persistKey":"trial.expiring"}`,
			withSession:    true,
			expectedStatus: http.StatusCreated,
			check: func(t *testing.T, bag *alerts.Bag) {
				alertstest.Expect(t, bag).PersistedAs("trial.expiring")
			},
		},
		{
			name:           "persisted without session",
			body:           `{"message":"hi","persistKey":"trial.expiring"}`,
			expectedStatus: http.StatusConflict,
			check: func(t *testing.T, bag *alerts.Bag) {
				assert.Equal(t, 0, bag.Len())
			},
		},
		{
			name:           "missing message",
			body:           `{"types":["info"]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad persist key",
			body:           `{"message":"hi","persistKey":"not a key"}`,
			withSession:    true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			body:           `{"message"`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := alerts.NewBag([]string{"default"})
			req := withBag(httptest.NewRequest(http.MethodPost, "/api/v1/alerts", strings.NewReader(tt.body)), bag)
			if tt.withSession {
				req = req.WithContext(session.NewContext(req.Context(), session.New("s1", nil)))
			}
			rr := httptest.NewRecorder()

			handler.Create(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code, rr.Body.String())
			if tt.check != nil {
				tt.check(t, bag)
			}
		})
	}
}

func TestAlertHandler_ListFiltersByTags(t *testing.T) {
	handler := NewAlertHandler(logger.Nop(), validator.New())

	bag := alerts.NewBag([]string{"default"})
	bag.New().SetMessage("main")
	bag.New().SetMessage("side").SetTags("sidebar")

	rr := httptest.NewRecorder()
	handler.List(rr, withBag(httptest.NewRequest(http.MethodGet, "/api/v1/alerts?tags=sidebar", nil), bag))
	require.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	require.Len(t, response.Data, 1)
	assert.Equal(t, "side", response.Data[0]["message"])
	assert.EqualValues(t, 1, response.Data[0]["index"])
}

func TestAlertHandler_Quick(t *testing.T) {
	handler := NewAlertHandler(logger.Nop(), validator.New())

	tests := []struct {
		name           string
		op             string
		body           string
		expectedStatus int
	}{
		{name: "message", op: "success", body: `{"args":["Saved"]}`, expectedStatus: http.StatusCreated},
		{name: "translation with replacements", op: "info", body: `{"args":["cart.saved",{"name":"Ana"}]}`, expectedStatus: http.StatusCreated},
		{name: "too many arguments", op: "info", body: `{"args":["a","b","c","d"]}`, expectedStatus: http.StatusBadRequest},
		{name: "non string message", op: "info", body: `{"args":[42]}`, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := alerts.NewBag(nil)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/quick/"+tt.op, strings.NewReader(tt.body))
			req = withBag(withParam(req, "name", tt.op), bag)
			rr := httptest.NewRecorder()

			handler.Quick(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code, rr.Body.String())
			if tt.expectedStatus == http.StatusCreated {
				alertstest.Expect(t, bag).WithTypes(tt.op).Unique()
			} else {
				assert.Equal(t, 0, bag.Len())
			}
		})
	}
}

func TestAlertHandler_Delete(t *testing.T) {
	handler := NewAlertHandler(logger.Nop(), validator.New())

	bag := alerts.NewBag(nil)
	bag.New().SetMessage("durable").PersistAs("trial")

	rr := httptest.NewRecorder()
	handler.Delete(rr, withBag(withParam(httptest.NewRequest(http.MethodDelete, "/api/v1/alerts/trial", nil), "key", "trial"), bag))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, bag.Len())

	rr = httptest.NewRecorder()
	handler.Delete(rr, withBag(withParam(httptest.NewRequest(http.MethodDelete, "/api/v1/alerts/trial", nil), "key", "trial"), bag))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
