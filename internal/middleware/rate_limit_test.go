package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/evyataryagoni/countryselect/internal/limiter"
	"github.com/evyataryagoni/countryselect/internal/models"
)

func okHandler(called *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called++
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})
}

// TestRateLimitMiddleware_Allowed tests request allowed
func TestRateLimitMiddleware_Allowed(t *testing.T) {
	mockLimiter := limiter.NewMockLimiter(true)
	calls := 0
	handler := RateLimitMiddleware(mockLimiter)(okHandler(&calls))

	req := httptest.NewRequest(http.MethodGet, "/v1/countries", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if calls != 1 {
		t.Error("expected next handler to be called")
	}
	if rec.Code != http.StatusOK || rec.Body.String() != "success" {
		t.Errorf("expected 200 success, got %d %q", rec.Code, rec.Body.String())
	}
}

// TestRateLimitMiddleware_RateLimited tests request blocked
func TestRateLimitMiddleware_RateLimited(t *testing.T) {
	mockLimiter := limiter.NewMockLimiter(false)
	calls := 0
	handler := RateLimitMiddleware(mockLimiter)(okHandler(&calls))

	req := httptest.NewRequest(http.MethodGet, "/v1/countries", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if calls != 0 {
		t.Error("expected next handler NOT to be called")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}

	var errResp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	if errResp.Error != "Rate limit exceeded. Please try again later." {
		t.Errorf("unexpected error message: %s", errResp.Error)
	}
}

// TestClientKey tests client extraction
func TestClientKey(t *testing.T) {
	tests := []struct {
		name          string
		remoteAddr    string
		xRealIP       string
		xForwardedFor string
		expected      string
	}{
		{
			name:       "RemoteAddr without port",
			remoteAddr: "192.168.1.1:12345",
			expected:   "192.168.1.1",
		},
		{
			name:       "RemoteAddr with no port",
			remoteAddr: "192.168.1.1",
			expected:   "192.168.1.1",
		},
		{
			name:       "IPv6 RemoteAddr",
			remoteAddr: "[2001:db8::1]:8080",
			expected:   "2001:db8::1",
		},
		{
			name:       "X-Real-IP takes priority",
			remoteAddr: "192.168.1.1:12345",
			xRealIP:    "10.0.0.1",
			expected:   "10.0.0.1",
		},
		{
			name:          "X-Forwarded-For when no X-Real-IP",
			remoteAddr:    "192.168.1.1:12345",
			xForwardedFor: "10.0.0.2",
			expected:      "10.0.0.2",
		},
		{
			name:          "X-Forwarded-For with multiple IPs",
			remoteAddr:    "192.168.1.1:12345",
			xForwardedFor: "10.0.0.3, 10.0.0.4, 10.0.0.5",
			expected:      "10.0.0.3",
		},
		{
			name:          "X-Real-IP over X-Forwarded-For",
			remoteAddr:    "192.168.1.1:12345",
			xRealIP:       "10.0.0.1",
			xForwardedFor: "10.0.0.2",
			expected:      "10.0.0.1",
		},
		{
			name:          "blank headers fall back to RemoteAddr",
			remoteAddr:    "192.168.1.1:12345",
			xRealIP:       " ",
			xForwardedFor: " ,10.0.0.2",
			expected:      "192.168.1.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLimiter := limiter.NewMockLimiter(true)
			calls := 0
			handler := RateLimitMiddleware(mockLimiter)(okHandler(&calls))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}
			if tt.xForwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tt.xForwardedFor)
			}

			handler.ServeHTTP(httptest.NewRecorder(), req)

			keys := mockLimiter.Calls()
			if len(keys) != 1 {
				t.Fatalf("expected 1 limiter call, got %d", len(keys))
			}
			if keys[0] != tt.expected {
				t.Errorf("expected key %s, limiter called with %s", tt.expected, keys[0])
			}
		})
	}
}

// TestRateLimitMiddleware_MemoryLimiter tests the middleware with a real limiter
func TestRateLimitMiddleware_MemoryLimiter(t *testing.T) {
	lim := limiter.NewMemoryLimiter(limiter.Quota{Limit: 2, Window: time.Minute})
	calls := 0
	handler := RateLimitMiddleware(lim)(okHandler(&calls))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/countries", nil)
		req.RemoteAddr = "192.168.1.1:1000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	expected := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i := range expected {
		if codes[i] != expected[i] {
			t.Errorf("request %d: expected %d, got %d", i+1, expected[i], codes[i])
		}
	}
}

// TestRateLimitMiddleware_PreservesNextHandlerResponse tests that allowed requests preserve response
func TestRateLimitMiddleware_PreservesNextHandlerResponse(t *testing.T) {
	handler := RateLimitMiddleware(limiter.NewMockLimiter(true))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Custom-Header", "test-value")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("custom response"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	if rec.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rec.Code)
	}
	if rec.Header().Get("X-Custom-Header") != "test-value" {
		t.Errorf("expected custom header to be preserved")
	}
	if rec.Body.String() != "custom response" {
		t.Errorf("expected custom response body to be preserved")
	}
}
