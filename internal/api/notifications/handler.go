// Package notifications serves the notification list JSON endpoint.
package notifications

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/good-yellow-bee/powerconnect/internal/models"
	"github.com/good-yellow-bee/powerconnect/internal/notifications"
	"github.com/good-yellow-bee/powerconnect/internal/storage"
)

type errorResponse struct {
	Error errorBody `json:"error"`
}
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
type dataResponse struct {
	Data any `json:"data"`
}

const (
	errCodeValidationFailed = "VALIDATION_FAILED"
	errCodeInternalError    = "INTERNAL_ERROR"
)

func jsonError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: errorBody{Code: code, Message: message}}); err != nil {
		log.Printf("json encode error: %v", err)
	}
}

func jsonOK(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dataResponse{Data: data}); err != nil {
		log.Printf("json encode error: %v", err)
	}
}

// ListResponse is a filtered notification view.
type ListResponse struct {
	Items []*models.Notification `json:"items"`
	Total int                    `json:"total"`
	Query notifications.Query    `json:"query"`
}

// Handler handles notification endpoints.
type Handler struct {
	storage storage.Storage
}

func NewHandler(store storage.Storage) *Handler {
	return &Handler{storage: store}
}

// List returns notifications filtered and sorted by q, status, sort and order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q, err := notifications.ParseQuery(r.URL.Query())
	if err != nil {
		jsonError(w, http.StatusBadRequest, errCodeValidationFailed, err.Error())
		return
	}

	all, err := h.storage.Notifications().List(r.Context())
	if err != nil {
		log.Printf("list notifications error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "failed to list notifications")
		return
	}

	jsonOK(w, ListResponse{
		Items: notifications.Apply(all, q),
		Total: len(all),
		Query: q,
	})
}
