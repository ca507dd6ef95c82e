package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskly/task-system/internal/core/domain"
)

// RequireRoles gates a route by the declared role set. The gate is opt-in:
// an empty set passes every request unchanged. With roles declared, a
// request without a principal is forbidden, and otherwise passes exactly
// when the principal's role is a member of the set. Changing the empty-set
// behavior would be a regression, not a fix.
func RequireRoles(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(allowed) == 0 {
				return next(c)
			}

			user := PrincipalFrom(c)
			if user == nil {
				return errForbidden
			}
			if _, ok := allowed[user.Role]; !ok {
				return errForbidden
			}
			return next(c)
		}
	}
}

var errForbidden = echo.NewHTTPError(http.StatusForbidden, "Forbidden")
