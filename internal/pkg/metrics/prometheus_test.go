package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/items/{id}", "418"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/7", nil))
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/items/{id}", "418"))

	assert.Equal(t, before+1, after)
}

func TestRecordAlerts(t *testing.T) {
	before := testutil.ToFloat64(alertsTotal.WithLabelValues(OutcomeFlashed))
	RecordAlerts(OutcomeFlashed, 3)
	RecordAlerts(OutcomeFlashed, 0)
	assert.Equal(t, before+3, testutil.ToFloat64(alertsTotal.WithLabelValues(OutcomeFlashed)))
}
