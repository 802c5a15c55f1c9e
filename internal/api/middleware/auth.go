package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/PTM-BookingService/internal/api/handlers"
)

const (
	basicRealm = `Basic realm="ptm-admin", charset="UTF-8"`

	msgAuthRequired       = "требуется авторизация администратора"
	msgInvalidCredentials = "неверный логин или пароль"
)

// AdminAuth пропускает запрос только с верными учётными данными HTTP Basic
func AdminAuth(auth Authenticator, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", basicRealm)
				handlers.RespondUnauthorized(w, msgAuthRequired)
				return
			}

			valid, err := auth.Authenticate(r.Context(), username, password)
			if err != nil {
				log.Error("AdminAuth: failed to authenticate user=%q: %v", username, err)
				handlers.RespondInternalError(w)
				return
			}
			if !valid {
				log.Warn("AdminAuth: rejected user=%q for %s %s", username, r.Method, r.URL.Path)
				w.Header().Set("WWW-Authenticate", basicRealm)
				handlers.RespondUnauthorized(w, msgInvalidCredentials)
				return
			}

			ctx := context.WithValue(r.Context(), usernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUsername извлекает логин администратора из контекста
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok
}
