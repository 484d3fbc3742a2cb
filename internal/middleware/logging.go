package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLog emits one structured line per request with method, path, status and latency.
// Panics recovered by chimw.Recoverer further down the chain are reported through the
// same logger.
func AccessLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return chimw.RequestLogger(&accessLogFormatter{logger: logger})
}

type accessLogFormatter struct {
	logger *slog.Logger
}

func (f *accessLogFormatter) NewLogEntry(r *http.Request) chimw.LogEntry {
	return &accessLogEntry{logger: f.logger.With(
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
		"request_id", GetRequestID(r.Context()),
	)}
}

type accessLogEntry struct {
	logger *slog.Logger
}

func (e *accessLogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	e.logger.Info("request",
		"status", status,
		"bytes", bytes,
		"latency_ms", elapsed.Milliseconds(),
	)
}

func (e *accessLogEntry) Panic(v interface{}, stack []byte) {
	e.logger.Error("panic recovered", "panic", v, "stack", string(stack))
}
