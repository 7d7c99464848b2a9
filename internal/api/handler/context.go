package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/todo-system/internal/api/middleware"
	"github.com/taskdesk/todo-system/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware.
// Its absence means the route was wired without the middleware; fail closed.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
	}
	return identity, nil
}
