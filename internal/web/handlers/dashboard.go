package handlers

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"

	"github.com/good-yellow-bee/powerconnect/internal/feedermap"
	"github.com/good-yellow-bee/powerconnect/internal/metrics"
	"github.com/good-yellow-bee/powerconnect/internal/models"
	"github.com/good-yellow-bee/powerconnect/internal/storage"
	"github.com/good-yellow-bee/powerconnect/internal/uistate"
	"github.com/good-yellow-bee/powerconnect/internal/web/templates/pages"
)

// Feeder map images are clamped to this range on each axis.
const (
	minMapSize = 50
	maxMapSize = 2000
)

// ShowHome renders the landing page.
func (h *Handler) ShowHome(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, "Home", "/", pages.Home())
}

// ShowDashboard renders the outage dashboard.
func (h *Handler) ShowDashboard(w http.ResponseWriter, r *http.Request) {
	client, _ := GetClient(r)

	outages, err := h.storage.Outages().List(r.Context())
	if err != nil {
		log.Printf("list outages: %v", err)
		http.Error(w, "failed to load outages", http.StatusInternalServerError)
		return
	}

	p := pages.DashboardPage{
		Outages:   outages,
		Summary:   models.Summarize(outages),
		Expanded:  client.ExpandedOutages,
		MapWidth:  h.mapWidth,
		MapHeight: h.mapHeight,
		CSRFToken: csrf.Token(r),
	}
	if client.SelectedFeeder != "" {
		for _, o := range outages {
			if o.ID == client.SelectedFeeder {
				p.Selected = o
				break
			}
		}
	}

	h.page(w, r, "Dashboard", "/dashboard", pages.Dashboard(p))
}

// ToggleOutage expands or collapses an outage card.
func (h *Handler) ToggleOutage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	client, ok := GetClient(r)
	if !ok {
		http.Error(w, "missing client state", http.StatusBadRequest)
		return
	}

	o, err := h.storage.Outages().GetByID(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "outage not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("get outage %s: %v", id, err)
		http.Error(w, "failed to load outage", http.StatusInternalServerError)
		return
	}

	client, _ = h.clients.Update(client.ID, func(c uistate.Client) uistate.Client {
		c.ExpandedOutages = c.ExpandedOutages.Toggle(id)
		return c
	})

	h.outageResponse(w, r, o, client)
}

// UpdateTime sets an outage's estimated restoration time.
func (h *Handler) UpdateTime(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	o, err := h.actions.UpdateTime(r.Context(), id)
	if h.actionError(w, r, err, dashboardAnchor(id)) {
		return
	}
	client, _ := GetClient(r)
	h.outageResponse(w, r, o, client)
}

// NotifyUsers sends the simulated notification for an outage.
func (h *Handler) NotifyUsers(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if h.actionError(w, r, h.actions.SendNotification(r.Context(), id), dashboardAnchor(id)) {
		return
	}
	if !isHTMX(r) {
		http.Redirect(w, r, dashboardAnchor(id), http.StatusSeeOther)
		return
	}
	o, err := h.storage.Outages().GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, "outage not found", http.StatusNotFound)
		return
	}
	client, _ := GetClient(r)
	h.outageResponse(w, r, o, client)
}

// outageResponse renders the outage card for HTMX or redirects back to it.
func (h *Handler) outageResponse(w http.ResponseWriter, r *http.Request, o *models.Outage, client uistate.Client) {
	if !isHTMX(r) {
		http.Redirect(w, r, dashboardAnchor(o.ID), http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	h.renderComponent(w, r, pages.OutageCard(o, client.ExpandedOutages.Has(o.ID), csrf.Token(r)))
}

func dashboardAnchor(id string) string {
	return "/dashboard#outage-" + url.PathEscape(id)
}

// FeederMapSVG renders the feeder map as an SVG image. The selected feeder
// of the requesting client is drawn emphasised.
func (h *Handler) FeederMapSVG(w http.ResponseWriter, r *http.Request) {
	width := parseMapSize(r.URL.Query().Get("w"), h.mapWidth)
	height := parseMapSize(r.URL.Query().Get("h"), h.mapHeight)

	outages, err := h.storage.Outages().List(r.Context())
	if err != nil {
		log.Printf("list outages: %v", err)
		http.Error(w, "failed to load outages", http.StatusInternalServerError)
		return
	}

	client, _ := GetClient(r)
	svg := feedermap.NewSVG(float64(width), float64(height))
	feedermap.Render(svg, feedermap.FromOutages(outages), client.SelectedFeeder)
	metrics.FeederMapRendersTotal.Inc()

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := svg.WriteTo(w); err != nil {
		log.Printf("write feeder map: %v", err)
	}
}

// SelectFeeder handles a click on the feeder map image. The browser submits
// the click position as map.x and map.y. A miss leaves the selection as is.
func (h *Handler) SelectFeeder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	x, errX := strconv.ParseFloat(r.PostForm.Get("map.x"), 64)
	y, errY := strconv.ParseFloat(r.PostForm.Get("map.y"), 64)
	if errX != nil || errY != nil || !finite(x) || !finite(y) {
		http.Error(w, "invalid click position", http.StatusBadRequest)
		return
	}
	width := parseMapSize(r.PostForm.Get("w"), h.mapWidth)
	height := parseMapSize(r.PostForm.Get("h"), h.mapHeight)

	feeder, hit, err := h.hitTest(r.Context(), width, height, x, y)
	if err != nil {
		log.Printf("feeder hit test: %v", err)
		http.Error(w, "failed to load outages", http.StatusInternalServerError)
		return
	}

	if hit {
		metrics.FeederMapClicksTotal.WithLabelValues("hit").Inc()
		if client, ok := GetClient(r); ok {
			h.clients.Update(client.ID, func(c uistate.Client) uistate.Client {
				c.SelectedFeeder = feeder.ID
				return c
			})
		}
	} else {
		metrics.FeederMapClicksTotal.WithLabelValues("miss").Inc()
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) hitTest(ctx context.Context, width, height int, x, y float64) (feedermap.Feeder, bool, error) {
	outages, err := h.storage.Outages().List(ctx)
	if err != nil {
		return feedermap.Feeder{}, false, err
	}
	f, ok := feedermap.HitTest(feedermap.FromOutages(outages), float64(width), float64(height), x, y)
	return f, ok, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func parseMapSize(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	if n < minMapSize {
		return minMapSize
	}
	if n > maxMapSize {
		return maxMapSize
	}
	return n
}
