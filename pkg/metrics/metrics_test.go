package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/cells/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/cells/{id}", "404"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/cells/7", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/cells/8", nil))

	assert.Equal(t, before+2, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/cells/{id}", "404")))
	assert.Zero(t, testutil.ToFloat64(httpInFlight))
}

func TestHelpers(t *testing.T) {
	solved := testutil.ToFloat64(solves.WithLabelValues("solved"))
	Solve("solved", time.Millisecond)
	Solve("timeout", time.Second)
	assert.Equal(t, solved+1, testutil.ToFloat64(solves.WithLabelValues("solved")))

	rejected := testutil.ToFloat64(cellWrites.WithLabelValues("rejected"))
	CellWrite(false)
	assert.Equal(t, rejected+1, testutil.ToFloat64(cellWrites.WithLabelValues("rejected")))

	hits := testutil.ToFloat64(cacheLookups.WithLabelValues("hit"))
	CacheLookup(true)
	assert.Equal(t, hits+1, testutil.ToFloat64(cacheLookups.WithLabelValues("hit")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	CellWrite(true)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sudoku_cells_writes_total{result="created"}`)
}
