package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/dine/backend/docs" // Import generated docs
	"github.com/dine/backend/internal/handler/dto"
)

// RootMessage is the plain-text body served on GET /.
const RootMessage = "Backend server is running"

// HealthCheckTimeout bounds the database ping behind GET /healthz.
const HealthCheckTimeout = 5 * time.Second

// Pinger reports whether the document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the endpoints that belong to the service itself rather than
// to a route module.
type Handler struct {
	db       Pinger
	gatherer prometheus.Gatherer
}

// New creates a new Handler. db may be nil, in which case /healthz reports unhealthy.
func New(db Pinger, gatherer prometheus.Gatherer) *Handler {
	return &Handler{
		db:       db,
		gatherer: gatherer,
	}
}

// RegisterRoutes registers the service routes. The root liveness route is
// only registered when serveRoot is set.
func (h *Handler) RegisterRoutes(r chi.Router, serveRoot bool) {
	if serveRoot {
		r.Get("/", h.handleRoot)
	}

	// Health check
	r.Get("/healthz", h.handleHealthz)

	// Prometheus exposition
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

// handleRoot confirms the process is up. It never touches the database.
func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(RootMessage))
}

// handleHealthz returns 200 OK if the database is reachable.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /healthz [get]
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		respondJSON(w, http.StatusServiceUnavailable, dto.HealthResponse{Status: "unhealthy", Error: "database not connected"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), HealthCheckTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		respondJSON(w, http.StatusServiceUnavailable, dto.HealthResponse{Status: "unhealthy", Error: "database unavailable"})
		return
	}

	respondJSON(w, http.StatusOK, dto.HealthResponse{Status: "healthy"})
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps err through dto.MapDomainError and writes it.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code, message := dto.MapDomainError(err)
	respondError(w, status, code, message)
}
