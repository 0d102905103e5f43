package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestShowNotifications_Filtered(t *testing.T) {
	env := newTestEnv(t)
	rec := serve(env.h.ShowNotifications, env.request("GET", "/notifications?q=central&status=outage", nil, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"notification-NOTIF-9241", "notification-NOTIF-9242", "Showing 2 of 5 notifications"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	for _, unwanted := range []string{"notification-NOTIF-9243", "notification-NOTIF-9244", "notification-NOTIF-9245"} {
		if strings.Contains(body, unwanted) {
			t.Errorf("body should not contain %q", unwanted)
		}
	}
	// Default order is newest first.
	if strings.Index(body, "NOTIF-9242") > strings.Index(body, "NOTIF-9241") {
		t.Error("expected NOTIF-9242 before NOTIF-9241")
	}

	q := env.state(t).Query
	if q.Search != "central" || q.Status != "outage" {
		t.Errorf("stored query = %+v", q)
	}
}

func TestShowNotifications_NoMatches(t *testing.T) {
	env := newTestEnv(t)
	rec := serve(env.h.ShowNotifications, env.request("GET", "/notifications?q=zzz", nil, nil))
	if !strings.Contains(rec.Body.String(), "No notifications yet") {
		t.Error("empty result should say no notifications yet")
	}
}

func TestShowNotifications_InvalidQuery(t *testing.T) {
	env := newTestEnv(t)
	rec := serve(env.h.ShowNotifications, env.request("GET", "/notifications?sort=area", nil, nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestShowNotifications_CollapsedPreview(t *testing.T) {
	env := newTestEnv(t)
	rec := serve(env.h.ShowNotifications, env.request("GET", "/notifications", nil, nil))
	body := rec.Body.String()

	if strings.Contains(body, "We apologize for the inconvenience.") {
		t.Error("collapsed message should be truncated")
	}
	if !strings.Contains(body, "...") {
		t.Error("truncated message should end with an ellipsis")
	}
	if !strings.Contains(body, "Sent to 1,245 users") {
		t.Error("missing recipient count")
	}
}

func TestToggleNotification(t *testing.T) {
	env := newTestEnv(t)
	serve(env.h.ShowNotifications, env.request("GET", "/notifications?status=outage", nil, nil))

	params := map[string]string{"id": "NOTIF-9241"}
	rec := serve(env.h.ToggleNotification, env.request("POST", "/notifications/NOTIF-9241/expand", url.Values{}, params))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/notifications?status=outage#notification-NOTIF-9241" {
		t.Errorf("redirect = %q", loc)
	}

	rec = serve(env.h.ShowNotifications, env.request("GET", "/notifications?status=outage", nil, nil))
	if !strings.Contains(rec.Body.String(), "We apologize for the inconvenience.") {
		t.Error("expanded notification should show the full message")
	}
}

func TestToggleNotification_NotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := serve(env.h.ToggleNotification, env.request("POST", "/notifications/NOPE/expand", url.Values{}, map[string]string{"id": "NOPE"}))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
