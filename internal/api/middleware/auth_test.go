package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskly/task-system/internal/core/domain"
)

type stubTokens struct {
	userID string
	err    error
}

func (s *stubTokens) Generate(string) (string, error) { return "", nil }

func (s *stubTokens) Decode(string) (string, error) {
	return s.userID, s.err
}

type stubUserFinder struct {
	user *domain.User
	err  error
}

func (s *stubUserFinder) FindByID(context.Context, string) (*domain.User, error) {
	return s.user, s.err
}

func failureMessage(t *testing.T, e *echo.Echo, c echo.Context, rec *httptest.ResponseRecorder, err error) string {
	t.Helper()
	e.HTTPErrorHandler(err, c)
	var resp map[string]any
	if jsonErr := json.Unmarshal(rec.Body.Bytes(), &resp); jsonErr != nil {
		t.Fatalf("invalid json: %v", jsonErr)
	}
	msg, _ := resp["message"].(string)
	return msg
}

func TestAuth_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	user := &domain.User{ID: "u1", Role: domain.RoleUser}
	mw := Auth(&stubTokens{userID: "u1"}, &stubUserFinder{user: user})

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		if PrincipalFrom(c) != user {
			t.Fatalf("principal not attached")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

// The scheme prefix is discarded positionally; any first token works.
func TestAuth_SchemeNameNotValidated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token some-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(&stubTokens{userID: "u1"}, &stubUserFinder{user: &domain.User{ID: "u1"}})
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_FailurePathsAreUniform(t *testing.T) {
	cases := []struct {
		name   string
		header string
		tokens *stubTokens
		users  *stubUserFinder
	}{
		{
			name:   "missing header",
			header: "",
			tokens: &stubTokens{userID: "u1"},
			users:  &stubUserFinder{user: &domain.User{ID: "u1"}},
		},
		{
			name:   "no second token",
			header: "Bearer",
			tokens: &stubTokens{userID: "u1"},
			users:  &stubUserFinder{user: &domain.User{ID: "u1"}},
		},
		{
			name:   "invalid token",
			header: "Bearer bad",
			tokens: &stubTokens{err: errors.New("invalid token")},
			users:  &stubUserFinder{user: &domain.User{ID: "u1"}},
		},
		{
			name:   "unknown user",
			header: "Bearer good",
			tokens: &stubTokens{userID: "ghost"},
			users:  &stubUserFinder{err: domain.ErrUserNotFound},
		},
	}

	var messages []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			mw := Auth(tc.tokens, tc.users)
			handler := mw(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			err := handler(c)
			if err == nil {
				t.Fatalf("expected error")
			}
			if PrincipalFrom(c) != nil {
				t.Fatalf("context mutated on failure path")
			}

			msg := failureMessage(t, e, c, rec, err)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			messages = append(messages, msg)
		})
	}

	for _, m := range messages {
		if m != messages[0] {
			t.Fatalf("failure messages differ: %v", messages)
		}
	}
}
