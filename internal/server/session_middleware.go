package server

import (
	"context"
	"net/http"

	"github.com/wecurate/wecurate/curate"
)

// SessionMiddleware resolves the admin flag from the login cookie and stores
// it on the request context.
func (a *App) SessionMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		admin := false
		session, err := a.Sessions.GetCookie(req, SessionName)
		if err == nil && !session.IsNew {
			admin, _ = session.Values["admin"].(bool)
		}
		ctx := context.WithValue(req.Context(), curate.AdminKey, admin)
		handler.ServeHTTP(rw, req.WithContext(ctx))
	})
}

// IsAdmin reports the admin flag resolved by SessionMiddleware.
func IsAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(curate.AdminKey).(bool)
	return admin
}
