package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskly/task-system/internal/core/domain"
	"github.com/taskly/task-system/internal/core/ports"
)

// UserContextKey is the echo context key under which Auth stores the
// resolved principal.
const UserContextKey = "user"

// UserFinder resolves a user id to a stored user. Satisfied by the Redis
// read-through cache and by any ports.UserRepository.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Auth resolves the bearer token to a stored user and attaches it to the
// request context. Every failure path returns the same 401 with the same
// message; the distinguishing reason is never surfaced, and the context is
// only mutated on success.
func Auth(tokens ports.TokenService, users UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return errUnauthenticated
			}

			// The scheme prefix is discarded positionally, not validated
			// by name.
			parts := strings.Fields(authHeader)
			if len(parts) < 2 {
				return errUnauthenticated
			}

			userID, err := tokens.Decode(parts[1])
			if err != nil {
				return errUnauthenticated
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return errUnauthenticated
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

var errUnauthenticated = echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")

// PrincipalFrom returns the user attached by Auth, or nil when the request
// is unauthenticated.
func PrincipalFrom(c echo.Context) *domain.User {
	user, _ := c.Get(UserContextKey).(*domain.User)
	return user
}
