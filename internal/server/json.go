package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/wecurate/wecurate/curate"
)

func writeJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.WriteHeader(status)
	check(json.NewEncoder(rw).Encode(v))
}

// ErrorHandler writes a JSON error body with the status implied by the error.
func (a *App) ErrorHandler(rw http.ResponseWriter, req *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", req.Method, "path", req.URL.Path, "error", err)
	}
	writeJSON(rw, status, map[string]string{"error": err.Error()})
}

// statusForError maps the error taxonomy onto HTTP statuses: validation 400,
// auth 401/403, constraint 409, oracle 502, not found 404.
func statusForError(err error) int {
	switch {
	case errors.Is(err, curate.ErrTitleRequired),
		errors.Is(err, curate.ErrSummaryRequired),
		errors.Is(err, curate.ErrCategoryUnknown):
		return http.StatusBadRequest
	case errors.Is(err, curate.ErrIncorrectSecret):
		return http.StatusUnauthorized
	case errors.Is(err, curate.ErrAdminRequired):
		return http.StatusForbidden
	case errors.Is(err, curate.ErrReservedCategory):
		return http.StatusConflict
	case errors.Is(err, curate.ErrCategoryNotFound), errors.Is(err, curate.ErrGenericNotFound):
		return http.StatusNotFound
	case errors.Is(err, curate.ErrOracle):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(req *http.Request, v any) error {
	defer req.Body.Close()
	return json.NewDecoder(req.Body).Decode(v)
}
