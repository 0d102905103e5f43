package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/good-yellow-bee/powerconnect/internal/feedermap"
	"github.com/good-yellow-bee/powerconnect/internal/models"
)

func TestShowDashboard(t *testing.T) {
	env := newTestEnv(t)
	rec := serve(env.h.ShowDashboard, env.request("GET", "/dashboard", nil, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Power Outage Dashboard", "2,574", "OUT-7823", "OUT-7826", "Feeder Status Map", "/dashboard/map.svg?w=600&amp;h=400"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	// Only the outage without a resolution time offers Update Time.
	if n := strings.Count(body, "/update-time"); n != 1 {
		t.Errorf("update-time buttons = %d, want 1", n)
	}
	if n := strings.Count(body, "/notify"); n != 4 {
		t.Errorf("notify buttons = %d, want 4", n)
	}
}

func TestShowDashboard_Empty(t *testing.T) {
	env := newTestEnv(t)
	env.store.Load(nil, nil)

	rec := serve(env.h.ShowDashboard, env.request("GET", "/dashboard", nil, nil))
	if !strings.Contains(rec.Body.String(), "No outages reported") {
		t.Error("empty dashboard should say no outages reported")
	}
}

func TestToggleOutage(t *testing.T) {
	env := newTestEnv(t)
	params := map[string]string{"id": "OUT-7824"}

	rec := serve(env.h.ToggleOutage, env.request("POST", "/dashboard/outages/OUT-7824/expand", url.Values{}, params))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard#outage-OUT-7824" {
		t.Errorf("redirect = %q", loc)
	}
	if !env.state(t).ExpandedOutages.Has("OUT-7824") {
		t.Error("outage not expanded")
	}

	req := env.request("POST", "/dashboard/outages/OUT-7824/expand", url.Values{}, params)
	req.Header.Set("HX-Request", "true")
	rec = serve(env.h.ToggleOutage, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("htmx status = %d", rec.Code)
	}
	if env.state(t).ExpandedOutages.Has("OUT-7824") {
		t.Error("second toggle should collapse")
	}
	if !strings.Contains(rec.Body.String(), "Show More") {
		t.Error("collapsed card should offer Show More")
	}
}

func TestToggleOutage_ExpandedShowsDetails(t *testing.T) {
	env := newTestEnv(t)
	req := env.request("POST", "/dashboard/outages/OUT-7824/expand", url.Values{}, map[string]string{"id": "OUT-7824"})
	req.Header.Set("HX-Request", "true")
	rec := serve(env.h.ToggleOutage, req)

	body := rec.Body.String()
	for _, want := range []string{"Show Less", "Industrial-F3", "TC-112", "Equipment failure due to overload", "Estimated Resolution"} {
		if !strings.Contains(body, want) {
			t.Errorf("expanded card missing %q", want)
		}
	}
}

func TestToggleOutage_NotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := serve(env.h.ToggleOutage, env.request("POST", "/dashboard/outages/NOPE/expand", url.Values{}, map[string]string{"id": "NOPE"}))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateTime(t *testing.T) {
	env := newTestEnv(t)
	rec := serve(env.h.UpdateTime, env.request("POST", "/dashboard/outages/OUT-7823/update-time", url.Values{}, map[string]string{"id": "OUT-7823"}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	o, err := env.store.Outages().GetByID(context.Background(), "OUT-7823")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if o.EstimatedResolution == nil {
		t.Fatal("resolution not set")
	}
	if o.CanUpdateTime() {
		t.Error("outage with resolution should no longer offer Update Time")
	}

	toasts := env.toasts.Drain(env.client.ID)
	if len(toasts) != 1 || toasts[0].Description != "Estimated restoration time updated for Central District" {
		t.Errorf("toasts = %+v", toasts)
	}
}

func TestUpdateTime_NotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := serve(env.h.UpdateTime, env.request("POST", "/dashboard/outages/NOPE/update-time", url.Values{}, map[string]string{"id": "NOPE"}))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestNotifyUsers(t *testing.T) {
	env := newTestEnv(t)
	rec := serve(env.h.NotifyUsers, env.request("POST", "/dashboard/outages/OUT-7824/notify", url.Values{}, map[string]string{"id": "OUT-7824"}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	toasts := env.toasts.Drain(env.client.ID)
	if len(toasts) != 1 || toasts[0].Title != "Notifications sent" {
		t.Fatalf("toasts = %+v", toasts)
	}
	if toasts[0].Description != "432 users have been notified about the status" {
		t.Errorf("description = %q", toasts[0].Description)
	}
}

func TestFeederMapSVG(t *testing.T) {
	env := newTestEnv(t)
	rec := serve(env.h.FeederMapSVG, env.request("GET", "/dashboard/map.svg?w=300&h=200", nil, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `width="300" height="200"`) {
		t.Errorf("svg size not applied: %.120s", body)
	}
	if strings.Contains(body, `stroke-width="3"`) {
		t.Error("no feeder is selected yet")
	}
	if !strings.Contains(body, models.ColorOutage) || !strings.Contains(body, models.ColorOnline) {
		t.Error("status colours missing")
	}
}

func TestSelectFeeder(t *testing.T) {
	env := newTestEnv(t)
	p := feedermap.Endpoint(2, 4, DefaultMapWidth, DefaultMapHeight)

	form := url.Values{
		"map.x": {fmt.Sprintf("%.0f", p.X)},
		"map.y": {fmt.Sprintf("%.0f", p.Y)},
		"w":     {"600"},
		"h":     {"400"},
	}
	rec := serve(env.h.SelectFeeder, env.request("POST", "/dashboard/map/select", form, nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if got := env.state(t).SelectedFeeder; got != "OUT-7825" {
		t.Fatalf("selected = %q, want OUT-7825", got)
	}

	// The selection is emphasised on the map and described on the dashboard.
	rec = serve(env.h.FeederMapSVG, env.request("GET", "/dashboard/map.svg", nil, nil))
	if !strings.Contains(rec.Body.String(), `stroke-width="3"`) {
		t.Error("selected feeder should be drawn wider")
	}
	rec = serve(env.h.ShowDashboard, env.request("GET", "/dashboard", nil, nil))
	if !strings.Contains(rec.Body.String(), "Selected Feeder") {
		t.Error("dashboard should describe the selected feeder")
	}

	// A miss keeps the current selection.
	form.Set("map.x", "300")
	form.Set("map.y", "200")
	serve(env.h.SelectFeeder, env.request("POST", "/dashboard/map/select", form, nil))
	if got := env.state(t).SelectedFeeder; got != "OUT-7825" {
		t.Errorf("selected after miss = %q, want OUT-7825", got)
	}
}

func TestSelectFeeder_HitTestsAtDrawnSize(t *testing.T) {
	env := newTestEnv(t)
	env.h.SetMapSize(480, 320)

	rec := serve(env.h.ShowDashboard, env.request("GET", "/dashboard", nil, nil))
	body := rec.Body.String()
	for _, want := range []string{
		`name="w" value="480"`,
		`name="h" value="320"`,
		`src="/dashboard/map.svg?w=480&amp;h=320" width="480" height="320"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %s", want)
		}
	}

	// The node as drawn on a 480x320 map, not where it sits on the default map.
	drawn := feedermap.Endpoint(0, 4, 480, 320)
	form := url.Values{
		"map.x": {fmt.Sprintf("%.0f", drawn.X)},
		"map.y": {fmt.Sprintf("%.0f", drawn.Y)},
		"w":     {"480"},
		"h":     {"320"},
	}
	serve(env.h.SelectFeeder, env.request("POST", "/dashboard/map/select", form, nil))
	if got := env.state(t).SelectedFeeder; got != "OUT-7823" {
		t.Fatalf("selected = %q, want OUT-7823", got)
	}

	env2 := newTestEnv(t)
	env2.h.SetMapSize(480, 320)
	def := feedermap.Endpoint(0, 4, DefaultMapWidth, DefaultMapHeight)
	form.Set("map.x", fmt.Sprintf("%.0f", def.X))
	form.Set("map.y", fmt.Sprintf("%.0f", def.Y))
	serve(env2.h.SelectFeeder, env2.request("POST", "/dashboard/map/select", form, nil))
	if got := env2.state(t).SelectedFeeder; got != "" {
		t.Errorf("selected = %q, want none for a position off the drawn nodes", got)
	}
}

func TestSelectFeeder_InvalidPosition(t *testing.T) {
	env := newTestEnv(t)
	for _, form := range []url.Values{
		{"map.x": {"left"}},
		{"map.x": {"NaN"}, "map.y": {"10"}},
		{"map.x": {"10"}, "map.y": {"Inf"}},
	} {
		rec := serve(env.h.SelectFeeder, env.request("POST", "/dashboard/map/select", form, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%v: status = %d, want 400", form, rec.Code)
		}
	}
}
