package middleware

import (
	"context"
	"net/http"

	"github.com/good-yellow-bee/powerconnect/internal/toast"
	"github.com/good-yellow-bee/powerconnect/internal/uistate"
	"github.com/good-yellow-bee/powerconnect/internal/web/handlers"
)

// ClientCookie names the cookie carrying the client state id.
const ClientCookie = "pc_client"

// LoadClient attaches the browser's UI state to the request context,
// creating fresh state and a cookie for unknown or expired ids.
func LoadClient(store *uistate.Store, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				client uistate.Client
				ok     bool
			)
			if cookie, err := r.Cookie(ClientCookie); err == nil {
				client, ok = store.Get(cookie.Value)
			}
			if !ok {
				client = store.Create()
				http.SetCookie(w, &http.Cookie{
					Name:     ClientCookie,
					Value:    client.ID,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), handlers.ClientContextKey, client)
			ctx = toast.WithClient(ctx, client.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
