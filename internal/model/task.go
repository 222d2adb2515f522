package model

import "time"

// TaskPriority is the urgency of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// Valid reports whether p is one of the known priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// TaskStatus is the lifecycle state of a task. Any status may move to any other.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusCancelled  TaskStatus = "Cancelled"
)

// TaskStatuses lists every status in display order.
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	for _, known := range TaskStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          uint         `json:"taskId" gorm:"column:task_id;primaryKey"`
	UserID      uint         `json:"userId" gorm:"not null;index"`
	CategoryID  *uint        `json:"categoryId" gorm:"index"`
	Title       string       `json:"title" gorm:"size:255;not null"`
	Description *string      `json:"description" gorm:"type:text"`
	Priority    TaskPriority `json:"priority" gorm:"type:varchar(10);not null;default:'Medium'"`
	Status      TaskStatus   `json:"status" gorm:"type:varchar(20);not null;default:'Pending';index"`
	DueDate     *time.Time   `json:"dueDate"`
	CompletedAt *time.Time   `json:"completedAt"`
	CreatedAt   time.Time    `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Overdue     bool         `json:"isOverdue" gorm:"-"`
}

// IsOverdue reports whether the task is past due and not yet completed.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskStatusCompleted
}

// ApplyDefaults fills in the priority and status of a new task when omitted.
func (t *Task) ApplyDefaults() {
	if t.Priority == "" {
		t.Priority = TaskPriorityMedium
	}
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
}

// ApplyCompletion keeps CompletedAt consistent with Status: a completed task
// without a timestamp is stamped with now, any other status clears it.
func (t *Task) ApplyCompletion(now time.Time) {
	if t.Status != TaskStatusCompleted {
		t.CompletedAt = nil
		return
	}
	if t.CompletedAt == nil {
		stamp := now
		t.CompletedAt = &stamp
	}
}

// TaskFilter narrows a task listing. Zero values match everything.
type TaskFilter struct {
	Status      TaskStatus
	Priority    TaskPriority
	CategoryID  *uint
	OverdueOnly bool
}

// Matches applies the filter to a single task.
func (f TaskFilter) Matches(t *Task, now time.Time) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *f.CategoryID) {
		return false
	}
	if f.OverdueOnly && !t.IsOverdue(now) {
		return false
	}
	return true
}

// TaskSummary aggregates a user's tasks for dashboards.
type TaskSummary struct {
	Total    int64                `json:"total"`
	ByStatus map[TaskStatus]int64 `json:"byStatus"`
	Overdue  int64                `json:"overdue"`
}
