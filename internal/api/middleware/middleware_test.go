package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func TestRequestLogger_SetsRequestID(t *testing.T) {
	var ctxID string
	handler := RequestLogger(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	headerID := rec.Header().Get("X-Request-ID")
	if len(headerID) != 8 {
		t.Errorf("X-Request-ID = %q, want 8 chars", headerID)
	}
	if ctxID != headerID {
		t.Errorf("context id = %q, header id = %q", ctxID, headerID)
	}
}

func TestRequestLogger_LogsOnlyFailuresWhenQuiet(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	ok := RequestLogger(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ok.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/fine", nil))
	if buf.Len() != 0 {
		t.Errorf("successful request logged: %s", buf.String())
	}

	failing := RequestLogger(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	failing.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/missing", nil))
	if !strings.Contains(buf.String(), "GET /missing 404") {
		t.Errorf("failed request not logged: %s", buf.String())
	}
}

func TestGetRequestID_Missing(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if got := GetRequestID(req.Context()); got != "-" {
		t.Errorf("GetRequestID = %q, want -", got)
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2)

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("a") {
		t.Error("third request should be limited")
	}
	if !rl.Allow("b") {
		t.Error("other keys have their own bucket")
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(5)
	rl.idle = -time.Second
	rl.Allow("a")
	rl.Cleanup()

	rl.mu.Lock()
	n := len(rl.limiters)
	rl.mu.Unlock()
	if n != 0 {
		t.Errorf("limiters after cleanup = %d, want 0", n)
	}
}

func TestRateLimitByIP(t *testing.T) {
	handler := RateLimitByIP(NewRateLimiter(1))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest("GET", "/api/v1/outages", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Errorf("request %d: status = %d, want %d", i, rec.Code, want)
		}
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name   string
		header string
		value  string
		remote string
		want   string
	}{
		{"remote addr", "", "", "192.0.2.1:5000", "192.0.2.1"},
		{"forwarded list", "X-Forwarded-For", "203.0.113.7, 10.0.0.1", "10.0.0.1:80", "203.0.113.7"},
		{"real ip", "X-Real-IP", "198.51.100.4", "10.0.0.1:80", "198.51.100.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	var pattern string
	r.Get("/api/v1/outages/{id}", func(w http.ResponseWriter, req *http.Request) {
		pattern = getRoutePattern(req)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/outages/OUT-7823", nil))

	if pattern != "/api/v1/outages/{id}" {
		t.Errorf("pattern = %q", pattern)
	}
	if got := getRoutePattern(httptest.NewRequest("GET", "/nowhere", nil)); got != "unmatched" {
		t.Errorf("unrouted pattern = %q, want unmatched", got)
	}
}
