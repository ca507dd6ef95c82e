package handler

import "github.com/taskly/task-system/internal/core/domain"

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
		CompletedAt: t.CompletedAt,
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskListResponse(tasks []*domain.Task) taskListResponse {
	items := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, toTaskResponse(t))
	}
	return taskListResponse{Items: items, Total: len(items)}
}
