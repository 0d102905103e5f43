package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestShowSettings(t *testing.T) {
	env := newTestEnv(t)
	rec := serve(env.h.ShowSettings, env.request("GET", "/settings", nil, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Notification Channels", "Alert Types", "System Settings", "Detailed Reporting", "Save Settings"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	// Defaults: 8 on, 2 off.
	if on, off := strings.Count(body, "switch switch-on"), strings.Count(body, "switch switch-off"); on != 8 || off != 2 {
		t.Errorf("switches on/off = %d/%d, want 8/2", on, off)
	}
}

func TestToggleSetting(t *testing.T) {
	env := newTestEnv(t)
	params := map[string]string{"group": "notification", "key": "pushEnabled"}

	rec := serve(env.h.ToggleSetting, env.request("POST", "/settings/toggle/notification/pushEnabled", url.Values{}, params))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if !env.state(t).NotificationSettings.Get("pushEnabled") {
		t.Error("pushEnabled should be on")
	}
	if !env.state(t).UserSettings.Get("storeHistorical") {
		t.Error("other group must be untouched")
	}

	req := env.request("POST", "/settings/toggle/notification/pushEnabled", url.Values{}, params)
	req.Header.Set("HX-Request", "true")
	rec = serve(env.h.ToggleSetting, req)
	if env.state(t).NotificationSettings.Get("pushEnabled") {
		t.Error("double toggle should restore pushEnabled")
	}
	if !strings.Contains(rec.Body.String(), "switch-off") {
		t.Error("partial should render the switch off")
	}
}

func TestToggleSetting_UnknownKey(t *testing.T) {
	env := newTestEnv(t)
	tests := []map[string]string{
		{"group": "notification", "key": "faxEnabled"},
		{"group": "user", "key": "smsEnabled"},
		{"group": "admin", "key": "smsEnabled"},
	}
	for _, params := range tests {
		rec := serve(env.h.ToggleSetting, env.request("POST", "/settings/toggle", url.Values{}, params))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%v: status = %d, want 404", params, rec.Code)
		}
	}
}

func TestSaveSettings(t *testing.T) {
	env := newTestEnv(t)
	rec := serve(env.h.SaveSettings, env.request("POST", "/settings/save", url.Values{}, nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	toasts := env.toasts.Drain(env.client.ID)
	if len(toasts) != 1 || toasts[0].Title != "Settings saved" {
		t.Errorf("toasts = %+v", toasts)
	}
}
