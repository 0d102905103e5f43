// Package outages serves the outage and feeder map JSON endpoints.
package outages

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/powerconnect/internal/feedermap"
	"github.com/good-yellow-bee/powerconnect/internal/metrics"
	"github.com/good-yellow-bee/powerconnect/internal/models"
	"github.com/good-yellow-bee/powerconnect/internal/storage"
)

// Response helpers
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
	errCodeBadRequest    = "BAD_REQUEST"
	errCodeNotFound      = "NOT_FOUND"
	errCodeInternalError = "INTERNAL_ERROR"
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

// ListResponse is the outage list with its derived counters.
type ListResponse struct {
	Items   []*models.Outage     `json:"items"`
	Summary models.OutageSummary `json:"summary"`
}

// HitResponse reports the feeder under a map position, if any.
type HitResponse struct {
	Hit    bool              `json:"hit"`
	Feeder *feedermap.Feeder `json:"feeder,omitempty"`
}

// Handler handles outage endpoints.
type Handler struct {
	storage storage.Storage
}

func NewHandler(store storage.Storage) *Handler {
	return &Handler{storage: store}
}

// List returns every outage in source order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.storage.Outages().List(r.Context())
	if err != nil {
		log.Printf("list outages error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "failed to list outages")
		return
	}
	jsonOK(w, ListResponse{Items: list, Summary: models.Summarize(list)})
}

// GetByID returns one outage.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	o, err := h.storage.Outages().GetByID(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		jsonError(w, http.StatusNotFound, errCodeNotFound, "outage not found")
		return
	}
	if err != nil {
		log.Printf("get outage error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "failed to get outage")
		return
	}
	jsonOK(w, o)
}

// Hit runs the feeder map hit test for a position on a w x h map.
func (h *Handler) Hit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	values := make(map[string]float64, 4)
	for _, name := range []string{"x", "y", "w", "h"} {
		v, err := strconv.ParseFloat(q.Get(name), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			jsonError(w, http.StatusBadRequest, errCodeBadRequest, "invalid "+name+": must be a number")
			return
		}
		values[name] = v
	}
	if values["w"] <= 0 || values["h"] <= 0 {
		jsonError(w, http.StatusBadRequest, errCodeBadRequest, "w and h must be positive")
		return
	}

	list, err := h.storage.Outages().List(r.Context())
	if err != nil {
		log.Printf("list outages error: %v", err)
		jsonError(w, http.StatusInternalServerError, errCodeInternalError, "failed to list outages")
		return
	}

	resp := HitResponse{}
	if f, ok := feedermap.HitTest(feedermap.FromOutages(list), values["w"], values["h"], values["x"], values["y"]); ok {
		resp.Hit = true
		resp.Feeder = &f
		metrics.FeederMapClicksTotal.WithLabelValues("hit").Inc()
	} else {
		metrics.FeederMapClicksTotal.WithLabelValues("miss").Inc()
	}
	jsonOK(w, resp)
}
