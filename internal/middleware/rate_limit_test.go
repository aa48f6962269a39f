package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 5) // 10 per minute, burst of 5
	defer rl.Stop()

	// First 5 requests should be allowed (burst)
	for i := 0; i < 5; i++ {
		if !rl.Allow(1) {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	// 6th request should be rate limited (exceeded burst)
	if rl.Allow(1) {
		t.Error("Request 6 should be rate limited")
	}
}

func TestRateLimiter_DifferentWorkspaces(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 3)
	defer rl.Stop()

	// Exhaust workspace 1's burst
	for i := 0; i < 3; i++ {
		if !rl.Allow(1) {
			t.Errorf("Workspace 1 request %d should be allowed", i+1)
		}
	}

	// Workspace 1 should be rate limited
	if rl.Allow(1) {
		t.Error("Workspace 1 should be rate limited")
	}

	// Workspace 2 should still have its full burst
	for i := 0; i < 3; i++ {
		if !rl.Allow(2) {
			t.Errorf("Workspace 2 request %d should be allowed", i+1)
		}
	}
}

func workspaceContext(e *echo.Echo, workspaceID int32) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses/1/export", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if workspaceID > 0 {
		ctx := context.WithValue(req.Context(), WorkspaceIDKey, workspaceID)
		c.SetRequest(req.WithContext(ctx))
	}
	return c, rec
}

func TestRateLimitMiddleware_SkipsUnauthenticated(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(1, 1)
	defer rl.Stop()

	handlerCalled := false
	handler := func(c echo.Context) error {
		handlerCalled = true
		return c.String(http.StatusOK, "OK")
	}

	// Without a workspace in context the limiter passes through; the auth
	// middleware rejects such requests before they reach a handler anyway.
	for i := 0; i < 5; i++ {
		c, _ := workspaceContext(e, 0)
		handlerCalled = false

		if err := RateLimitMiddleware(rl)(handler)(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !handlerCalled {
			t.Error("Handler should be called for unauthenticated requests")
		}
	}
}

func TestRateLimitMiddleware_LimitsWorkspace(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(10, 2) // Small burst for testing
	defer rl.Stop()

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}

	// First 2 requests should succeed (burst)
	for i := 0; i < 2; i++ {
		c, rec := workspaceContext(e, 7)

		if err := RateLimitMiddleware(rl)(handler)(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("Request %d: expected status 200, got %d", i+1, rec.Code)
		}
		if rec.Header().Get("X-RateLimit-Remaining") == "" {
			t.Error("Expected X-RateLimit-Remaining header")
		}
	}

	// 3rd request should be rate limited
	c, rec := workspaceContext(e, 7)
	if err := RateLimitMiddleware(rl)(handler)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("Expected X-RateLimit-Remaining 0, got %s", rec.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestRateLimitMiddleware_IsolatesWorkspaces(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(10, 1)
	defer rl.Stop()

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}

	// Exhaust workspace 1
	c, _ := workspaceContext(e, 1)
	if err := RateLimitMiddleware(rl)(handler)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	c, rec := workspaceContext(e, 1)
	if err := RateLimitMiddleware(rl)(handler)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("Expected workspace 1 to be limited, got %d", rec.Code)
	}

	// Workspace 2 is unaffected
	c, rec = workspaceContext(e, 2)
	if err := RateLimitMiddleware(rl)(handler)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected workspace 2 to pass, got %d", rec.Code)
	}
}
