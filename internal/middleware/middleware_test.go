package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS_SetsPermissiveHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", nil)
	rr := httptest.NewRecorder()

	CORS(okHandler()).ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Headers"); got != "authorization, x-client-info, apikey, content-type" {
		t.Errorf("unexpected Allow-Headers: %q", got)
	}
	if rr.Code != http.StatusOK {
		t.Errorf("non-preflight requests must pass through, got %d", rr.Code)
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/chat", nil)
	rr := httptest.NewRecorder()
	CORS(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rr.Code)
	}
	if called {
		t.Error("preflight must not reach the next handler")
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("preflight response must still carry CORS headers")
	}
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("X-Request-ID")
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	RequestID(next).ServeHTTP(rr, req)

	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("generated request ID %q is not a UUID", seen)
	}
	if rr.Header().Get("X-Request-ID") != seen {
		t.Error("response must echo the request ID")
	}
}

func TestRequestID_PreservesExisting(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	rr := httptest.NewRecorder()

	RequestID(okHandler()).ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-ID"); got != "caller-supplied" {
		t.Errorf("expected caller-supplied ID to survive, got %q", got)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	handler := rl.Middleware(okHandler())

	var lastCode int
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		lastCode = rr.Code

		if i < 3 && rr.Code != http.StatusOK {
			t.Fatalf("request %d should pass, got %d", i+1, rr.Code)
		}
	}

	if lastCode != http.StatusTooManyRequests {
		t.Errorf("4th request should be limited, got %d", lastCode)
	}
}

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	handler := rl.Middleware(okHandler())

	first := httptest.NewRequest(http.MethodPost, "/api/v1/chat", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	rr1 := httptest.NewRecorder()
	handler.ServeHTTP(rr1, first)

	other := httptest.NewRequest(http.MethodPost, "/api/v1/chat", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	rr2 := httptest.NewRecorder()
	handler.ServeHTTP(rr2, other)

	if rr2.Code != http.StatusOK {
		t.Errorf("a different IP must not share the counter, got %d", rr2.Code)
	}
}
