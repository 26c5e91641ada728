package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrSnakeDoc/langdocs/internal/logger"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestMatchHost(t *testing.T) {
	tests := []struct {
		host    string
		pattern string
		want    bool
	}{
		{"docs.example.com", "docs.example.com", true},
		{"api.example.com", "*.example.com", true},
		{"example.com", "*.example.com", false},
		{"evilexample.com", "*.example.com", false},
		{"docs.example.com", "other.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.host+" "+tt.pattern, func(t *testing.T) {
			if got := matchHost(tt.host, tt.pattern); got != tt.want {
				t.Errorf("matchHost(%q, %q) = %v, want %v", tt.host, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"Docs.Example.com"}, logger.Nop())(okHandler)

	tests := []struct {
		host string
		want int
	}{
		{"docs.example.com", http.StatusOK},
		{"docs.example.com:8080", http.StatusOK},
		{"other.example.com", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/reload", nil)
			r.Host = tt.host
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)
			if rec.Code != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestAllowOnlyCIDRS(t *testing.T) {
	h := AllowOnlyCIDRS([]string{"10.0.0.0/8"}, true, logger.Nop())(okHandler)

	tests := []struct {
		name   string
		remote string
		xff    string
		want   int
	}{
		{name: "allowed remote", remote: "10.1.1.1:1234", want: http.StatusOK},
		{name: "rejected remote", remote: "192.0.2.1:1234", want: http.StatusForbidden},
		{name: "allowed via proxy header", remote: "127.0.0.1:1", xff: "10.2.2.2", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)
			if rec.Code != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, rec.Code)
			}
		})
	}

	if passthrough := AllowOnlyCIDRS(nil, false, logger.Nop())(okHandler); passthrough == nil {
		t.Error("Expected a passthrough handler")
	}
}

func TestLimiterRefill(t *testing.T) {
	l := newLimiter(RateLimitConfig{Burst: 1, PerMinute: 60})
	now := time.Now()

	if ok, _, _ := l.allow("1.2.3.4", now); !ok {
		t.Fatal("first request should pass")
	}
	ok, _, retry := l.allow("1.2.3.4", now)
	if ok || retry != 1 {
		t.Fatalf("second request should wait 1s, got ok=%v retry=%d", ok, retry)
	}
	if ok, _, _ := l.allow("5.6.7.8", now); !ok {
		t.Error("buckets are per IP")
	}
	if ok, _, _ := l.allow("1.2.3.4", now.Add(time.Second)); !ok {
		t.Error("bucket should refill after 1s")
	}
}

func TestLimiterSweep(t *testing.T) {
	l := newLimiter(RateLimitConfig{Burst: 1, PerMinute: 1, IdleTTL: time.Minute, SweepEvery: time.Second})
	now := time.Now()
	l.allow("1.2.3.4", now)

	l.sweepMaybe(now.Add(2 * time.Minute))

	if len(l.buckets) != 0 {
		t.Errorf("Expected idle bucket to be swept, got %d", len(l.buckets))
	}
}

func TestStatusWriterCode(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		expected int
	}{
		{name: "nothing written", handler: func(http.ResponseWriter, *http.Request) {}, expected: http.StatusOK},
		{name: "body only", handler: func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("x")) }, expected: http.StatusOK},
		{name: "explicit status", handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) }, expected: http.StatusTeapot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ww := &statusWriter{ResponseWriter: httptest.NewRecorder()}
			tt.handler(ww, httptest.NewRequest(http.MethodGet, "/", nil))
			if got := ww.code(); got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestRoutePatternUnmatched(t *testing.T) {
	if got := routePattern(httptest.NewRequest(http.MethodGet, "/nope", nil)); got != "unmatched" {
		t.Errorf("Expected unmatched, got %q", got)
	}
}
