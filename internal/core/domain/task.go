package domain

import (
	"errors"
	"time"
)

var ErrTaskNotFound = errors.New("task not found")
var ErrTitleRequired = errors.New("title is required")
var ErrOwnerRequired = errors.New("user id is required")
var ErrTaskAccessForbidden = errors.New("no permission to access this task")
var ErrTaskUpdateForbidden = errors.New("can only update own tasks")
var ErrTaskDeleteForbidden = errors.New("no permission to delete this task")

// Task is the core aggregate root. CompletedAt is set exactly when
// IsCompleted transitions false→true and cleared on true→false; no-change
// updates leave it untouched.
type Task struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	IsCompleted bool       `json:"is_completed" bson:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	UserID      string     `json:"user_id" bson:"user_id"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// CanBeAccessedBy reports whether u may read or mutate the task:
// admins always, everyone else only on their own tasks.
func (t *Task) CanBeAccessedBy(u *User) bool {
	return u.Role == RoleAdmin || t.UserID == u.ID
}
