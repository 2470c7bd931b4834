package repository

import (
	"net/http"

	"github.com/gorilla/sessions"
)

// SessionRepository persists admin session cookies.
type SessionRepository interface {
	sessions.Store

	// Delete isn't part of sessions.Store for some reason
	Delete(r *http.Request, rw http.ResponseWriter, s *sessions.Session) error
}
