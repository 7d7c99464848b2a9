package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskdesk/todo-system/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(err, c)

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return rec.Code, resp["detail"]
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   int
		detail string
	}{
		{"username exists", domain.ErrUsernameExists, http.StatusBadRequest, "Username already exists"},
		{"email exists", domain.ErrEmailExists, http.StatusBadRequest, "Email already exists"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many login attempts"},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized, "Could not validate credentials"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "Unauthorized"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"todo not found", domain.ErrTodoNotFound, http.StatusNotFound, "Todo not found"},
		{"book not found", domain.ErrBookNotFound, http.StatusNotFound, "Book not found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, detail := renderError(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
			if detail != tc.detail {
				t.Fatalf("expected detail %q, got %q", tc.detail, detail)
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("find todo"), domain.ErrTodoNotFound)
	code, detail := renderError(t, wrapped)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if detail != "Todo not found" {
		t.Fatalf("unexpected detail: %q", detail)
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	code, detail := renderError(t, echo.NewHTTPError(http.StatusUnprocessableEntity, "title is required"))
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
	if detail != "title is required" {
		t.Fatalf("unexpected detail: %q", detail)
	}
}

func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	code, detail := renderError(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if detail != "Internal server error" {
		t.Fatalf("internal cause leaked: %q", detail)
	}
}
