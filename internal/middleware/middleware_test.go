package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dine/backend/internal/middleware"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAllowAllOrigins_SimpleRequest(t *testing.T) {
	h := middleware.AllowAllOrigins()(http.HandlerFunc(ok))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://anything.example")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAllowAllOrigins_Preflight(t *testing.T) {
	called := false
	h := middleware.AllowAllOrigins()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/tutorials", nil)
	req.Header.Set("Origin", "http://localhost:8081")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.False(t, called)
	assert.Less(t, w.Code, 300)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, w.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", seen)
}

func TestAccessLog_RecoveredPanic(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	reg := prometheus.NewRegistry()
	metrics := middleware.NewHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.AccessLog(log), metrics.Middleware, chimw.Recoverer)
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("GET", "/boom", "500")))

	out := buf.String()
	assert.Contains(t, out, "msg=\"panic recovered\"")
	assert.Contains(t, out, "panic=kaboom")
	assert.Contains(t, out, "msg=request")
	assert.Contains(t, out, "path=/boom")
	assert.Contains(t, out, "status=500")
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	h := middleware.AccessLog(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/brew", nil))

	out := buf.String()
	assert.Contains(t, out, "msg=request")
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "path=/brew")
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := middleware.NewHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/api/tutorials/{id}", ok)

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/tutorials/"+id, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("GET", "/api/tutorials/{id}", "200")))

	expected := `
# HELP dine_http_requests_total Total HTTP requests by method, route and status code.
# TYPE dine_http_requests_total counter
dine_http_requests_total{method="GET",route="/api/tutorials/{id}",status="200"} 2
dine_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "dine_http_requests_total"))
}
