package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kmayhew/propfolio/propfolio-backend/internal/websocket"
)

// The concrete Auth0 validator must satisfy the handler's view of it
var _ JWTValidator = (*websocket.Auth0JWTValidator)(nil)

type stubValidator struct {
	workspaceID int32
	err         error
}

func (s *stubValidator) ValidateToken(ctx context.Context, token string) (int32, error) {
	return s.workspaceID, s.err
}

func TestHandleWS_MissingToken(t *testing.T) {
	e := echo.New()
	h := NewWebSocketHandler(websocket.NewHub(), &stubValidator{workspaceID: 1}, nil)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.HandleWS(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("Expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", httpErr.Code)
	}
}

func TestHandleWS_InvalidToken(t *testing.T) {
	e := echo.New()
	h := NewWebSocketHandler(websocket.NewHub(), &stubValidator{err: websocket.ErrInvalidToken}, nil)

	req := httptest.NewRequest(http.MethodGet, "/ws?token=bad", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.HandleWS(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("Expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", httpErr.Code)
	}
}

func TestCheckOrigin(t *testing.T) {
	h := NewWebSocketHandler(websocket.NewHub(), &stubValidator{workspaceID: 1}, []string{"https://app.propfolio.app"})

	cases := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"https://app.propfolio.app", true},
		{"https://evil.example.com", false},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if tc.origin != "" {
			req.Header.Set("Origin", tc.origin)
		}
		if got := h.checkOrigin(req); got != tc.want {
			t.Errorf("checkOrigin(%q) = %v, want %v", tc.origin, got, tc.want)
		}
	}
}
