package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskly/task-system/internal/core/domain"
)

func newRBACContext(e *echo.Echo, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(UserContextKey, user)
	}
	return c, rec
}

// An empty role set is an opt-out: everyone passes, principal or not.
func TestRequireRoles_EmptySetAllowsAll(t *testing.T) {
	e := echo.New()
	for _, user := range []*domain.User{
		nil,
		{ID: "u1", Role: domain.RoleUser},
		{ID: "a1", Role: domain.RoleAdmin},
	} {
		c, rec := newRBACContext(e, user)

		called := false
		handler := RequireRoles()(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})

		if err := handler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if !called || rec.Code != http.StatusOK {
			t.Fatalf("expected pass for %+v, got %d", user, rec.Code)
		}
	}
}

func TestRequireRoles_NoPrincipal(t *testing.T) {
	e := echo.New()
	c, rec := newRBACContext(e, nil)

	handler := RequireRoles(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRoles_AllowsMember(t *testing.T) {
	e := echo.New()
	c, rec := newRBACContext(e, &domain.User{ID: "a1", Role: domain.RoleAdmin})

	called := false
	handler := RequireRoles(domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRoles_ForbidsNonMember(t *testing.T) {
	e := echo.New()
	c, rec := newRBACContext(e, &domain.User{ID: "u1", Role: domain.RoleUser})

	handler := RequireRoles(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
