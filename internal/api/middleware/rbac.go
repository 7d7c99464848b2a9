package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/todo-system/internal/core/domain"
	"github.com/taskdesk/todo-system/internal/core/ports"
)

// RequireRole enforces role-based access control. The token carries no role
// claim, so the identity's current role is resolved through the user
// repository on each request; a role change therefore takes effect
// immediately, unlike the stateless identity check itself. Refusals surface
// as domain.ErrForbidden and are mapped to a response by the central error
// handler.
func RequireRole(users ports.UserRepository, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedDetail)
			}

			user, err := users.FindByID(c.Request().Context(), identity.UserID)
			if err != nil {
				return domain.ErrForbidden
			}
			if _, ok := allowed[user.Role]; !ok {
				return domain.ErrForbidden
			}

			return next(c)
		}
	}
}
