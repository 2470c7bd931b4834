package server

import (
	"log/slog"
	"net/http"

	"github.com/wecurate/wecurate/curate"
)

// RequireAdmin reports whether the request carries an admin session, writing
// a 403 response when it does not.
func (a *App) RequireAdmin(rw http.ResponseWriter, req *http.Request) bool {
	if !IsAdmin(req.Context()) {
		a.ErrorHandler(rw, req, curate.ErrAdminRequired)
		return false
	}
	return true
}

// LoginHandler checks the submitted shared secret and flips the session's
// admin flag.
func (a *App) LoginHandler(rw http.ResponseWriter, req *http.Request) {
	var body struct {
		Secret string `json:"secret"`
	}
	if err := decodeJSON(req, &body); err != nil {
		writeJSON(rw, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := a.Sessions.Authenticate(body.Secret); err != nil {
		slog.Warn("admin login failed", "category", "auth", "action", "login", "ip", req.RemoteAddr)
		a.ErrorHandler(rw, req, err)
		return
	}

	session, err := a.Sessions.NewCookie(req, SessionName)
	if err != nil && session == nil {
		a.ErrorHandler(rw, req, err)
		return
	}
	session.Values["admin"] = true

	if err := a.Sessions.SaveCookie(req, rw, session); err != nil {
		a.ErrorHandler(rw, req, err)
		return
	}

	slog.Info("admin logged in", "category", "auth", "action", "login", "ip", req.RemoteAddr)
	writeJSON(rw, http.StatusOK, map[string]bool{"admin": true})
}

// LogoutHandler drops the admin session.
func (a *App) LogoutHandler(rw http.ResponseWriter, req *http.Request) {
	session, err := a.Sessions.GetCookie(req, SessionName)
	if err == nil && !session.IsNew {
		check(a.Sessions.DeleteCookie(req, rw, session))
	}
	slog.Info("admin logged out", "category", "auth", "action", "logout", "ip", req.RemoteAddr)
	writeJSON(rw, http.StatusOK, map[string]bool{"admin": false})
}

// SessionHandler reports the caller's admin flag.
func (a *App) SessionHandler(rw http.ResponseWriter, req *http.Request) {
	writeJSON(rw, http.StatusOK, map[string]bool{"admin": IsAdmin(req.Context())})
}
