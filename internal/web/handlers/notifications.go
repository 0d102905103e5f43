package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"

	"github.com/good-yellow-bee/powerconnect/internal/notifications"
	"github.com/good-yellow-bee/powerconnect/internal/storage"
	"github.com/good-yellow-bee/powerconnect/internal/uistate"
	"github.com/good-yellow-bee/powerconnect/internal/web/templates/pages"
)

// ShowNotifications renders the filtered and sorted notification list.
// The query comes from the URL and is remembered for the expand redirect.
func (h *Handler) ShowNotifications(w http.ResponseWriter, r *http.Request) {
	q, err := notifications.ParseQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	all, err := h.storage.Notifications().List(r.Context())
	if err != nil {
		log.Printf("list notifications: %v", err)
		http.Error(w, "failed to load notifications", http.StatusInternalServerError)
		return
	}

	client, ok := GetClient(r)
	if ok {
		client, _ = h.clients.Update(client.ID, func(c uistate.Client) uistate.Client {
			c.Query = q
			return c
		})
	}

	p := pages.NotificationsPage{
		Items:     notifications.Apply(all, q),
		Total:     len(all),
		Query:     q,
		Expanded:  client.ExpandedNotifications,
		CSRFToken: csrf.Token(r),
	}
	h.page(w, r, "Notifications", "/notifications", pages.Notifications(p))
}

// ToggleNotification expands or collapses a notification message.
func (h *Handler) ToggleNotification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	client, ok := GetClient(r)
	if !ok {
		http.Error(w, "missing client state", http.StatusBadRequest)
		return
	}

	n, err := h.storage.Notifications().GetByID(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "notification not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("get notification %s: %v", id, err)
		http.Error(w, "failed to load notification", http.StatusInternalServerError)
		return
	}

	client, _ = h.clients.Update(client.ID, func(c uistate.Client) uistate.Client {
		c.ExpandedNotifications = c.ExpandedNotifications.Toggle(id)
		return c
	})

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		h.renderComponent(w, r, pages.NotificationItem(n, client.ExpandedNotifications.Has(id), csrf.Token(r)))
		return
	}
	http.Redirect(w, r, pages.NotificationsURL(client.Query)+"#notification-"+id, http.StatusSeeOther)
}
