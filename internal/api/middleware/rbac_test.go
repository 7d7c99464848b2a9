package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/todo-system/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (r *stubUserRepo) UpdatePassword(context.Context, string, string) error {
	return nil
}

func roleCheckResult(t *testing.T, repo *stubUserRepo, identity *domain.Identity) (error, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set(identityKey, *identity)
	}

	called := false
	handler := RequireRole(repo, domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	return handler(c), called
}

func TestRequireRole_AdminAllowed(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{
		"u1": {ID: "u1", Username: "alice", Role: domain.RoleAdmin},
	}}

	err, called := roleCheckResult(t, repo, &domain.Identity{Username: "alice", UserID: "u1"})
	if err != nil {
		t.Fatalf("expected request to pass, got %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireRole_UserForbidden(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{
		"u2": {ID: "u2", Username: "bob", Role: domain.RoleUser},
	}}

	err, called := roleCheckResult(t, repo, &domain.Identity{Username: "bob", UserID: "u2"})
	if called {
		t.Fatalf("next handler should not run")
	}
	// The central error handler maps this sentinel to 403 "Unauthorized".
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRole_UnknownUserForbidden(t *testing.T) {
	// Stateless token may outlive the account; role resolution then fails
	// and the request is refused.
	repo := &stubUserRepo{users: map[string]*domain.User{}}

	err, called := roleCheckResult(t, repo, &domain.Identity{Username: "ghost", UserID: "u9"})
	if called {
		t.Fatalf("next handler should not run")
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRole_NoIdentity(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{}}

	err, called := roleCheckResult(t, repo, nil)
	if called {
		t.Fatalf("next handler should not run")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
