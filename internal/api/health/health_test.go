package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(ctx context.Context) error { return p.err }

func decode(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	h := NewHandler("v1.2.3")
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp.Status != "ok" || resp.Version != "v1.2.3" {
		t.Errorf("response = %+v", resp)
	}
}

func TestReady(t *testing.T) {
	tests := []struct {
		name       string
		checkers   []Checker
		wantStatus int
		wantBody   string
	}{
		{"no checkers", nil, http.StatusOK, "ready"},
		{"healthy", []Checker{NewStorageChecker(fakePinger{}), NewWatcherChecker(func() bool { return true })}, http.StatusOK, "ready"},
		{"storage down", []Checker{NewStorageChecker(fakePinger{err: errors.New("empty")})}, http.StatusServiceUnavailable, "not_ready"},
		{"watcher stopped", []Checker{NewWatcherChecker(func() bool { return false })}, http.StatusServiceUnavailable, "not_ready"},
		{"nil pinger", []Checker{NewStorageChecker(nil)}, http.StatusServiceUnavailable, "not_ready"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler("dev")
			for _, c := range tt.checkers {
				h.RegisterChecker(c)
			}
			rec := httptest.NewRecorder()
			h.Ready(rec, httptest.NewRequest("GET", "/health/ready", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if resp := decode(t, rec); resp.Status != tt.wantBody {
				t.Errorf("body status = %q, want %q", resp.Status, tt.wantBody)
			}
		})
	}
}

func TestLive(t *testing.T) {
	h := NewHandler("dev")
	rec := httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest("GET", "/health/live", nil))
	if resp := decode(t, rec); resp.Status != "live" {
		t.Errorf("status = %q, want live", resp.Status)
	}
}
