package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskly/task-system/internal/api/middleware"
	"github.com/taskly/task-system/internal/core/domain"
	"github.com/taskly/task-system/internal/core/ports"
)

type stubTaskService struct {
	createFn   func(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error)
	updateFn   func(ctx context.Context, id string, in ports.UpdateTaskInput, actor *domain.User) (*domain.Task, error)
	findByIDFn func(ctx context.Context, id string, actor *domain.User) (*domain.Task, error)
	findAllFn  func(ctx context.Context, actor *domain.User) ([]*domain.Task, error)
	deleteFn   func(ctx context.Context, id string, actor *domain.User) error
}

func (s *stubTaskService) Create(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	return s.createFn(ctx, in)
}

func (s *stubTaskService) Update(ctx context.Context, id string, in ports.UpdateTaskInput, actor *domain.User) (*domain.Task, error) {
	return s.updateFn(ctx, id, in, actor)
}

func (s *stubTaskService) FindByID(ctx context.Context, id string, actor *domain.User) (*domain.Task, error) {
	return s.findByIDFn(ctx, id, actor)
}

func (s *stubTaskService) FindAll(ctx context.Context, actor *domain.User) ([]*domain.Task, error) {
	return s.findAllFn(ctx, actor)
}

func (s *stubTaskService) Delete(ctx context.Context, id string, actor *domain.User) error {
	return s.deleteFn(ctx, id, actor)
}

func authedContext(e *echo.Echo, method, target string, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.UserContextKey, user)
	}
	return c, rec
}

// The owner of a created task is always the caller, never the body.
func TestTaskHandler_Create_OwnerIsPrincipal(t *testing.T) {
	e := newEcho()
	h := NewTaskHandler(&stubTaskService{
		createFn: func(_ context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
			if in.UserID != "u1" {
				t.Fatalf("expected owner u1, got %s", in.UserID)
			}
			return &domain.Task{ID: "t1", Title: in.Title, UserID: in.UserID}, nil
		},
	})

	c, rec := authedContext(e, http.MethodPost, "/v1/tasks",
		`{"title":"write report","description":"numbers"}`,
		&domain.User{ID: "u1", Role: domain.RoleUser})

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestTaskHandler_Create_Unauthenticated(t *testing.T) {
	e := newEcho()
	h := NewTaskHandler(&stubTaskService{
		createFn: func(context.Context, ports.CreateTaskInput) (*domain.Task, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	c, _ := authedContext(e, http.MethodPost, "/v1/tasks", `{"title":"x"}`, nil)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestTaskHandler_List(t *testing.T) {
	e := newEcho()
	h := NewTaskHandler(&stubTaskService{
		findAllFn: func(_ context.Context, actor *domain.User) ([]*domain.Task, error) {
			if actor.ID != "u1" {
				t.Fatalf("actor not forwarded: %+v", actor)
			}
			return []*domain.Task{{ID: "t1", Title: "one", UserID: "u1"}}, nil
		},
	})

	c, rec := authedContext(e, http.MethodGet, "/v1/tasks", "", &domain.User{ID: "u1", Role: domain.RoleUser})

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["total"] != float64(1) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTaskHandler_Update_PartialPayload(t *testing.T) {
	e := newEcho()
	h := NewTaskHandler(&stubTaskService{
		updateFn: func(_ context.Context, id string, in ports.UpdateTaskInput, _ *domain.User) (*domain.Task, error) {
			if id != "t1" {
				t.Fatalf("unexpected id %s", id)
			}
			if in.Title != nil || in.Description != nil {
				t.Fatalf("absent fields must be nil: %+v", in)
			}
			if in.IsCompleted == nil || !*in.IsCompleted {
				t.Fatalf("is_completed not parsed: %+v", in)
			}
			return &domain.Task{ID: id, Title: "kept", IsCompleted: true, UserID: "u1"}, nil
		},
	})

	c, rec := authedContext(e, http.MethodPut, "/v1/tasks/t1",
		`{"is_completed":true}`, &domain.User{ID: "u1", Role: domain.RoleUser})
	c.SetParamNames("id")
	c.SetParamValues("t1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	e := newEcho()
	h := NewTaskHandler(&stubTaskService{
		deleteFn: func(_ context.Context, id string, actor *domain.User) error {
			if id != "t1" || actor.ID != "u1" {
				t.Fatalf("unexpected call: %s %+v", id, actor)
			}
			return nil
		},
	})

	c, rec := authedContext(e, http.MethodDelete, "/v1/tasks/t1", "", &domain.User{ID: "u1", Role: domain.RoleUser})
	c.SetParamNames("id")
	c.SetParamValues("t1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestTaskHandler_Delete_Forbidden(t *testing.T) {
	e := newEcho()
	h := NewTaskHandler(&stubTaskService{
		deleteFn: func(context.Context, string, *domain.User) error {
			return domain.ErrTaskDeleteForbidden
		},
	})

	c, _ := authedContext(e, http.MethodDelete, "/v1/tasks/t1", "", &domain.User{ID: "u2", Role: domain.RoleUser})
	c.SetParamNames("id")
	c.SetParamValues("t1")

	if err := h.Delete(c); !errors.Is(err, domain.ErrTaskDeleteForbidden) {
		t.Fatalf("expected ErrTaskDeleteForbidden, got %v", err)
	}
}
