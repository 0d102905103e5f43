package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"

	"github.com/good-yellow-bee/powerconnect/internal/models"
	"github.com/good-yellow-bee/powerconnect/internal/uistate"
	"github.com/good-yellow-bee/powerconnect/internal/web/templates/pages"
)

// ShowSettings renders the preference toggles of the client.
func (h *Handler) ShowSettings(w http.ResponseWriter, r *http.Request) {
	client, _ := GetClient(r)
	p := pages.SettingsPage{
		Notification: client.NotificationSettings,
		User:         client.UserSettings,
		CSRFToken:    csrf.Token(r),
	}
	h.page(w, r, "Settings", "/settings", pages.Settings(p))
}

// ToggleSetting flips one preference. Only keys defined for the group are
// accepted.
func (h *Handler) ToggleSetting(w http.ResponseWriter, r *http.Request) {
	group := models.SettingGroup(chi.URLParam(r, "group"))
	key := chi.URLParam(r, "key")

	def, ok := models.LookupSetting(group, key)
	if !ok {
		http.Error(w, "unknown setting", http.StatusNotFound)
		return
	}
	client, ok := GetClient(r)
	if !ok {
		http.Error(w, "missing client state", http.StatusBadRequest)
		return
	}

	client, _ = h.clients.Update(client.ID, func(c uistate.Client) uistate.Client {
		return c.WithSettings(group, c.Settings(group).Toggle(key))
	})

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		h.renderComponent(w, r, pages.SettingRow(def, client.Settings(group).Get(key), csrf.Token(r)))
		return
	}
	http.Redirect(w, r, "/settings#setting-"+string(group)+"-"+key, http.StatusSeeOther)
}

// SaveSettings runs the simulated save. Nothing is persisted.
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	if h.actionError(w, r, h.actions.SaveSettings(r.Context()), "/settings") {
		return
	}
	if isHTMX(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}
