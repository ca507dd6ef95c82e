package ports

import (
	"context"
	"time"

	"github.com/taskly/task-system/internal/core/domain"
)

// UpdateTaskParams is a partial update: nil fields are left untouched at the
// store. CompletedAt needs three states (untouched / stamped / cleared), so
// clearing is carried separately from the value.
type UpdateTaskParams struct {
	Title            *string
	Description      *string
	IsCompleted      *bool
	CompletedAt      *time.Time
	ClearCompletedAt bool
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// FindAll returns tasks ordered by creation time, newest first.
	// When ownerID is non-empty, the query is filtered to that owner's tasks.
	FindAll(ctx context.Context, ownerID string) ([]*domain.Task, error)
	Update(ctx context.Context, id string, params UpdateTaskParams) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
