package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskly/task-system/internal/api/middleware"
	"github.com/taskly/task-system/internal/core/domain"
)

// ctxPrincipal extracts the principal attached by the Auth middleware and
// fast-fails before any service call. A nil principal means the middleware
// did not run on this route; reject rather than proceed unauthenticated.
func ctxPrincipal(c echo.Context) (*domain.User, error) {
	user := middleware.PrincipalFrom(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	return user, nil
}
