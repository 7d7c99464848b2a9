package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/todo-system/internal/pkg/token"
)

func TestAuth_ValidToken(t *testing.T) {
	e := echo.New()
	codec := token.NewJWTCodec("secret")

	signed, err := codec.Encode("alice", "u1", time.Minute)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(codec)(func(c echo.Context) error {
		called = true
		identity, ok := IdentityFrom(c)
		if !ok {
			t.Fatalf("identity not set")
		}
		if identity.Username != "alice" || identity.UserID != "u1" {
			t.Fatalf("unexpected identity: %+v", identity)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func rejectedStatus(t *testing.T, header string) int {
	t.Helper()
	e := echo.New()
	codec := token.NewJWTCodec("secret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(codec)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code
}

func TestAuth_MissingHeader(t *testing.T) {
	if code := rejectedStatus(t, ""); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuth_WrongScheme(t *testing.T) {
	if code := rejectedStatus(t, "Token abc"); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	if code := rejectedStatus(t, "Bearer not-a-token"); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	codec := token.NewJWTCodec("secret")
	signed, err := codec.Encode("alice", "u1", -time.Second)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if code := rejectedStatus(t, "Bearer "+signed); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
