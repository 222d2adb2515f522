package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard/internal/model"
)

// UserTaskCount pairs a user with a number of tasks.
type UserTaskCount struct {
	UserID uint
	Count  int64
}

// TaskRepository defines task persistence operations. Every read or write of
// a single task is filtered by task id and owner id in one predicate.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id, userID uint) error
	FindByID(ctx context.Context, id, userID uint) (*model.Task, error)
	ListByUser(ctx context.Context, userID uint, filter model.TaskFilter, now time.Time) ([]model.Task, error)
	CountByStatus(ctx context.Context, userID uint) (map[model.TaskStatus]int64, error)
	CountOverdue(ctx context.Context, userID uint, now time.Time) (int64, error)
	CountOverdueByUser(ctx context.Context, now time.Time) ([]UserTaskCount, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

const ownedTask = "task_id = ? AND user_id = ?"

// Create inserts the task and fills in the generated id.
func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	normalizeTimes(task)
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

// Update overwrites the mutable fields of a task owned by task.UserID.
// While the task stays Completed an already stored completion time wins over
// task.CompletedAt. Returns gorm.ErrRecordNotFound when no owned row matched.
func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	normalizeTimes(task)
	var completedAt interface{}
	if task.Status == model.TaskStatusCompleted {
		completedAt = gorm.Expr("COALESCE(completed_at, ?)", task.CompletedAt)
	}

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where(ownedTask, task.ID, task.UserID).
		Updates(map[string]interface{}{
			"category_id":  task.CategoryID,
			"title":        task.Title,
			"description":  task.Description,
			"priority":     task.Priority,
			"status":       task.Status,
			"due_date":     task.DueDate,
			"completed_at": completedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a task owned by userID.
func (r *taskRepository) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).Where(ownedTask, id, userID).Delete(&model.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID returns the task only when it is owned by userID.
func (r *taskRepository) FindByID(ctx context.Context, id, userID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where(ownedTask, id, userID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByUser returns the user's tasks, newest first.
func (r *taskRepository) ListByUser(ctx context.Context, userID uint, filter model.TaskFilter, now time.Time) ([]model.Task, error) {
	tasks := []model.Task{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Scopes(filterScope(filter, now)).
		Order("created_at DESC, task_id DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountByStatus returns how many of the user's tasks are in each status.
func (r *taskRepository) CountByStatus(ctx context.Context, userID uint) (map[model.TaskStatus]int64, error) {
	var rows []struct {
		Status model.TaskStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.TaskStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CountOverdue counts the user's overdue tasks.
func (r *taskRepository) CountOverdue(ctx context.Context, userID uint, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ?", userID).
		Scopes(overdueScope(now)).
		Count(&count).Error
	return count, err
}

// CountOverdueByUser counts overdue tasks for every user that has any.
func (r *taskRepository) CountOverdueByUser(ctx context.Context, now time.Time) ([]UserTaskCount, error) {
	var rows []UserTaskCount
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("user_id, COUNT(*) AS count").
		Scopes(overdueScope(now)).
		Group("user_id").
		Order("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func filterScope(filter model.TaskFilter, now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		if filter.Priority != "" {
			db = db.Where("priority = ?", filter.Priority)
		}
		if filter.CategoryID != nil {
			db = db.Where("category_id = ?", *filter.CategoryID)
		}
		if filter.OverdueOnly {
			db = overdueScope(now)(db)
		}
		return db
	}
}

func overdueScope(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("due_date IS NOT NULL AND due_date < ? AND status <> ?", now.UTC(), model.TaskStatusCompleted)
	}
}

// normalizeTimes stores client-supplied instants in UTC. SQLite compares
// timestamps as text, which is only ordered when every value shares a zone.
func normalizeTimes(task *model.Task) {
	if task.DueDate != nil {
		due := task.DueDate.UTC()
		task.DueDate = &due
	}
	if task.CompletedAt != nil {
		completed := task.CompletedAt.UTC()
		task.CompletedAt = &completed
	}
}
