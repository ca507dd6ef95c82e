package ports

import (
	"context"

	"github.com/taskly/task-system/internal/core/domain"
)

// CreateTaskInput carries all data needed to create a task.
type CreateTaskInput struct {
	Title       string
	Description string
	UserID      string
}

// UpdateTaskInput is a partial update payload; nil fields are not changed.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	IsCompleted *bool
}

// TaskService defines the task use cases. Operations taking an actor apply
// the owner-or-admin policy after confirming the task exists.
type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, id string, in UpdateTaskInput, actor *domain.User) (*domain.Task, error)
	FindByID(ctx context.Context, id string, actor *domain.User) (*domain.Task, error)
	// FindAll lists every task for admins and only the actor's own tasks
	// otherwise. The filter is applied at the store, not post-fetch.
	FindAll(ctx context.Context, actor *domain.User) ([]*domain.Task, error)
	Delete(ctx context.Context, id string, actor *domain.User) error
}
