package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/todo-system/internal/api/metrics"
	"github.com/taskdesk/todo-system/internal/core/domain"
	"github.com/taskdesk/todo-system/internal/core/ports"
)

// identityKey is the echo context key holding the request identity.
const identityKey = "identity"

const unauthenticatedDetail = "Could not validate credentials"

// Auth validates the bearer token and injects the request identity into the
// context. Validation is purely stateless: no store lookup happens here, so
// a token stays accepted until its expiry even if the account changed after
// issuance.
func Auth(codec ports.TokenCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedDetail)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenRejectionsTotal.WithLabelValues("bad_scheme").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedDetail)
			}

			identity, err := codec.Decode(parts[1])
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedDetail)
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// IdentityFrom extracts the identity placed in the context by Auth.
// The ok result is false when the middleware did not run.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	return identity, ok
}
