package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_RecordsDurationAndCount(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/v1/scopes/{scope}/search", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{}"))
	})

	req := httptest.NewRequest("POST", "/v1/scopes/posts/search", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	// Labels use the chi route pattern, not the concrete path.
	val := testutil.ToFloat64(
		httpRequestsTotal.WithLabelValues("POST", "/v1/scopes/{scope}/search", "200"))
	if val < 1 {
		t.Errorf("expected http_requests_total >= 1, got %f", val)
	}

	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest("GET", "/missing", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/missing", "404"))
	if val < 1 {
		t.Errorf("expected requests_total for 404 >= 1, got %f", val)
	}
}

func TestPlanMode(t *testing.T) {
	if PlanMode(false) != "simple" {
		t.Errorf("PlanMode(false) = %q, want simple", PlanMode(false))
	}
	if PlanMode(true) != "aggregate" {
		t.Errorf("PlanMode(true) = %q, want aggregate", PlanMode(true))
	}
}

func TestNormalizePath(t *testing.T) {
	if normalizePath("") != "unknown" {
		t.Errorf("normalizePath(\"\") = %q, want unknown", normalizePath(""))
	}
	if normalizePath("/healthz") != "/healthz" {
		t.Errorf("normalizePath(/healthz) = %q", normalizePath("/healthz"))
	}
}
