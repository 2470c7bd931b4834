package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/wecurate/wecurate/curate"
	"github.com/wecurate/wecurate/curate/service"
	"github.com/wecurate/wecurate/internal/render"
)

// SessionName is the admin login cookie.
const SessionName = "wecurate-admin"

// App holds all application dependencies and services.
type App struct {
	Articles   service.ArticleService
	Categories service.CategoryService
	Sessions   service.SessionService
	Assistant  service.AssistantService
	Renderer   *render.HTMLRenderer
	Fetcher    *http.Client
	Config     *curate.Config
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// SlogLoggingMiddleware logs HTTP requests using slog
func SlogLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"size", wrapped.size,
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		)
	})
}

func check(err error) {
	if err != nil {
		slog.Error("unexpected error", "error", err)
	}
}
