package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/gorilla/csrf"

	"github.com/good-yellow-bee/powerconnect/internal/actions"
	"github.com/good-yellow-bee/powerconnect/internal/api/middleware"
	"github.com/good-yellow-bee/powerconnect/internal/storage"
	"github.com/good-yellow-bee/powerconnect/internal/toast"
	"github.com/good-yellow-bee/powerconnect/internal/uistate"
	"github.com/good-yellow-bee/powerconnect/internal/web/templates/pages"
)

// Default feeder map size in pixels.
const (
	DefaultMapWidth  = 600
	DefaultMapHeight = 400
)

// Handler serves the PowerConnect pages and form actions.
type Handler struct {
	storage   storage.Storage
	clients   *uistate.Store
	actions   *actions.Service
	toasts    *toast.Queue
	mapWidth  int
	mapHeight int
}

// NewHandler creates a page handler. Nil clients or toasts get fresh defaults.
func NewHandler(store storage.Storage, clients *uistate.Store, svc *actions.Service, toasts *toast.Queue) *Handler {
	if clients == nil {
		clients = uistate.NewStore(24 * time.Hour)
	}
	if toasts == nil {
		toasts = toast.NewQueue(5, time.Minute)
	}
	return &Handler{
		storage:   store,
		clients:   clients,
		actions:   svc,
		toasts:    toasts,
		mapWidth:  DefaultMapWidth,
		mapHeight: DefaultMapHeight,
	}
}

// SetMapSize sets the dashboard feeder map dimensions.
func (h *Handler) SetMapSize(width, height int) {
	if width > 0 {
		h.mapWidth = width
	}
	if height > 0 {
		h.mapHeight = height
	}
}

// Clients returns the client state store.
func (h *Handler) Clients() *uistate.Store {
	return h.clients
}

// Helper to get client state from context
type contextKey string

const ClientContextKey contextKey = "client"

// GetClient returns the client state attached by the client middleware.
func GetClient(r *http.Request) (uistate.Client, bool) {
	c, ok := r.Context().Value(ClientContextKey).(uistate.Client)
	return c, ok
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// page renders body inside the layout, or alone for HTMX requests.
func (h *Handler) page(w http.ResponseWriter, r *http.Request, title, path string, body templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if isHTMX(r) {
		h.renderComponent(w, r, body)
		return
	}

	chrome := pages.Chrome{
		Title:     title,
		Path:      path,
		CSPNonce:  middleware.GetCSPNonce(r.Context()),
		CSRFToken: csrf.Token(r),
	}
	if c, ok := GetClient(r); ok {
		chrome.Toasts = h.toasts.Drain(c.ID)
	}
	h.renderComponent(w, r, pages.Layout(chrome, body))
}

func (h *Handler) renderComponent(w http.ResponseWriter, r *http.Request, c templ.Component) {
	if err := c.Render(r.Context(), w); err != nil {
		log.Printf("render %s: %v", r.URL.Path, err)
	}
}

// actionError maps an action failure onto the response. It returns true when
// the response has been written.
func (h *Handler) actionError(w http.ResponseWriter, r *http.Request, err error, back string) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, actions.ErrRateLimited):
		if isHTMX(r) {
			http.Error(w, err.Error(), http.StatusTooManyRequests)
			return true
		}
		if showErr := h.toasts.Show(r.Context(), toast.Toast{
			Title:       "Please wait",
			Description: "Too many actions in a short time. Try again in a moment.",
		}); showErr != nil {
			log.Printf("toast error: %v", showErr)
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
	default:
		log.Printf("action %s failed: %v", r.URL.Path, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
	return true
}
