package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskly/task-system/internal/core/domain"
	"github.com/taskly/task-system/internal/core/ports"
)

// TaskService implements the task use cases with the owner-or-admin policy.
type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

// Create persists a new task. Title and owner are required after trimming;
// the repository is not called when either is blank.
func (s *TaskService) Create(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.ErrTitleRequired
	}
	if strings.TrimSpace(in.UserID) == "" {
		return nil, domain.ErrOwnerRequired
	}

	created, err := s.repo.Create(ctx, &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		UserID:      in.UserID,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", in.UserID).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("user_id", created.UserID).Msg("task created")
	return created, nil
}

// FindByID returns a single task. Existence is checked before ownership, so
// a missing id yields not-found even to callers who would lack permission.
func (s *TaskService) FindByID(ctx context.Context, id string, actor *domain.User) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !task.CanBeAccessedBy(actor) {
		return nil, domain.ErrTaskAccessForbidden
	}
	return task, nil
}

// FindAll lists tasks newest first. The ownership policy is pushed into the
// query: admins list unfiltered, everyone else is scoped to their own id.
func (s *TaskService) FindAll(ctx context.Context, actor *domain.User) ([]*domain.Task, error) {
	ownerID := ""
	if actor.Role != domain.RoleAdmin {
		ownerID = actor.ID
	}
	return s.repo.FindAll(ctx, ownerID)
}

// Update applies a partial update after the existence and ownership checks.
// Completion is transition-driven: false→true stamps CompletedAt, true→false
// clears it, and a no-change payload leaves it untouched.
func (s *TaskService) Update(ctx context.Context, id string, in ports.UpdateTaskInput, actor *domain.User) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !task.CanBeAccessedBy(actor) {
		return nil, domain.ErrTaskUpdateForbidden
	}

	params := ports.UpdateTaskParams{
		Title:       in.Title,
		Description: in.Description,
		IsCompleted: in.IsCompleted,
	}
	if in.IsCompleted != nil {
		switch {
		case *in.IsCompleted && !task.IsCompleted:
			now := time.Now().UTC()
			params.CompletedAt = &now
		case !*in.IsCompleted && task.IsCompleted:
			params.ClearCompletedAt = true
		}
	}

	updated, err := s.repo.Update(ctx, id, params)
	if err != nil {
		s.logger.Error().Err(err).Str("task_id", id).Msg("failed to update task")
		return nil, err
	}
	return updated, nil
}

// Delete removes a task after the existence and ownership checks.
func (s *TaskService) Delete(ctx context.Context, id string, actor *domain.User) error {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !task.CanBeAccessedBy(actor) {
		return domain.ErrTaskDeleteForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("task_id", id).Msg("failed to delete task")
		return err
	}

	s.logger.Info().Str("task_id", id).Str("actor_id", actor.ID).Msg("task deleted")
	return nil
}
