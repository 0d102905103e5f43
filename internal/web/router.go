package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"

	apimw "github.com/good-yellow-bee/powerconnect/internal/api/middleware"
	"github.com/good-yellow-bee/powerconnect/internal/web/middleware"
)

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	// Static files (no CSRF, no client state)
	r.Handle("/static/*", http.StripPrefix("/static/", s.StaticFS()))

	r.Group(func(r chi.Router) {
		r.Use(markPlaintext)
		r.Use(csrf.Protect(
			s.csrfKey,
			csrf.Secure(s.useSecureCookies),
			csrf.Path("/"),
		))
		r.Use(middleware.LoadClient(s.clients, s.useSecureCookies))

		r.Get("/", s.handler.ShowHome)

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", s.handler.ShowDashboard)
			r.Get("/map.svg", s.handler.FeederMapSVG)
			r.Post("/map/select", s.handler.SelectFeeder)
			r.Post("/outages/{id}/expand", s.handler.ToggleOutage)
			r.Post("/outages/{id}/update-time", s.handler.UpdateTime)
			r.Post("/outages/{id}/notify", s.handler.NotifyUsers)
		})

		r.Get("/notifications", s.handler.ShowNotifications)
		r.Post("/notifications/{id}/expand", s.handler.ToggleNotification)

		r.Get("/settings", s.handler.ShowSettings)
		r.Post("/settings/toggle/{group}/{key}", s.handler.ToggleSetting)
		r.Post("/settings/save", s.handler.SaveSettings)
	})

	return r
}

// markPlaintext tells gorilla/csrf which requests arrived over plain HTTP so
// its referer check does not demand https.
func markPlaintext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !apimw.IsRequestSecure(r) {
			r = csrf.PlaintextHTTPRequest(r)
		}
		next.ServeHTTP(w, r)
	})
}
