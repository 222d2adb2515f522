package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// TaskService handles task operations. Every operation is scoped to the owning user.
type TaskService interface {
	ListTasks(ctx context.Context, userID uint, filter model.TaskFilter) ([]model.Task, error)
	GetTask(ctx context.Context, id, userID uint) (*model.Task, error)
	CreateTask(ctx context.Context, task *model.Task) (*model.Task, error)
	UpdateTask(ctx context.Context, id uint, task *model.Task) error
	DeleteTask(ctx context.Context, id, userID uint) error
	Summary(ctx context.Context, userID uint) (*model.TaskSummary, error)
}

type taskService struct {
	tasks      repository.TaskRepository
	categories repository.CategoryRepository
	now        func() time.Time
}

// NewTaskService creates a new task service.
func NewTaskService(tasks repository.TaskRepository, categories repository.CategoryRepository) TaskService {
	return &taskService{
		tasks:      tasks,
		categories: categories,
		now:        time.Now,
	}
}

// ListTasks returns the user's tasks, newest first, narrowed by filter.
func (s *taskService) ListTasks(ctx context.Context, userID uint, filter model.TaskFilter) ([]model.Task, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	now := s.now()
	tasks, err := s.tasks.ListByUser(ctx, userID, filter, now)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	for i := range tasks {
		tasks[i].Overdue = tasks[i].IsOverdue(now)
	}
	return tasks, nil
}

// GetTask returns the task only when userID owns it.
func (s *taskService) GetTask(ctx context.Context, id, userID uint) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id, userID)
	if err != nil {
		return nil, notFoundOr(err, "get task")
	}
	task.Overdue = task.IsOverdue(s.now())
	return task, nil
}

// CreateTask validates and persists a new task for task.UserID.
func (s *taskService) CreateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	task.ID = 0
	task.ApplyDefaults()
	if err := s.validate(ctx, task); err != nil {
		return nil, err
	}

	now := s.now()
	task.ApplyCompletion(now)

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	task.Overdue = task.IsOverdue(now)
	return task, nil
}

// UpdateTask replaces the task identified by id. The body id must match id.
// Entering Completed stamps the completion time; any other status clears it.
func (s *taskService) UpdateTask(ctx context.Context, id uint, task *model.Task) error {
	if task.ID != id {
		return apperrors.Validation("Task ID mismatch")
	}
	task.ApplyDefaults()
	if err := s.validate(ctx, task); err != nil {
		return err
	}

	task.ApplyCompletion(s.now())

	if err := s.tasks.Update(ctx, task); err != nil {
		return notFoundOr(err, "update task")
	}
	return nil
}

// DeleteTask removes the task when userID owns it.
func (s *taskService) DeleteTask(ctx context.Context, id, userID uint) error {
	if err := s.tasks.Delete(ctx, id, userID); err != nil {
		return notFoundOr(err, "delete task")
	}
	return nil
}

// Summary counts the user's tasks per status and how many are overdue.
func (s *taskService) Summary(ctx context.Context, userID uint) (*model.TaskSummary, error) {
	counts, err := s.tasks.CountByStatus(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	overdue, err := s.tasks.CountOverdue(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("count overdue tasks: %w", err)
	}

	summary := &model.TaskSummary{ByStatus: make(map[model.TaskStatus]int64, len(model.TaskStatuses)), Overdue: overdue}
	for _, status := range model.TaskStatuses {
		summary.ByStatus[status] = counts[status]
		summary.Total += counts[status]
	}
	return summary, nil
}

func (s *taskService) validate(ctx context.Context, task *model.Task) error {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return apperrors.Validation("Title is required")
	}
	if task.UserID == 0 {
		return apperrors.Validation("User ID is required")
	}
	if !task.Priority.Valid() {
		return apperrors.Validation("Invalid priority %q", task.Priority)
	}
	if !task.Status.Valid() {
		return apperrors.Validation("Invalid status %q", task.Status)
	}
	if task.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *task.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Validation("Category %d does not exist", *task.CategoryID)
			}
			return fmt.Errorf("check category: %w", err)
		}
	}
	return nil
}

func validateFilter(filter model.TaskFilter) error {
	if filter.Status != "" && !filter.Status.Valid() {
		return apperrors.Validation("Invalid status %q", filter.Status)
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		return apperrors.Validation("Invalid priority %q", filter.Priority)
	}
	return nil
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("Task")
	}
	return fmt.Errorf("%s: %w", op, err)
}
