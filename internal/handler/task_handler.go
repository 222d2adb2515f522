package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"taskboard/internal/model"
	"taskboard/internal/service"
)

// TaskHandler serves task CRUD scoped to the acting user.
type TaskHandler struct {
	tasks service.TaskService
	errorResponder
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(tasks service.TaskService, exposeErrors bool) *TaskHandler {
	return &TaskHandler{tasks: tasks, errorResponder: errorResponder{exposeDetail: exposeErrors}}
}

// TaskRequest is the create/update body.
type TaskRequest struct {
	TaskID      uint       `json:"taskId"`
	UserID      uint       `json:"userId"`
	CategoryID  *uint      `json:"categoryId"`
	Title       string     `json:"title" validate:"max=255"`
	Description *string    `json:"description" validate:"omitempty,max=4000"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *Timestamp `json:"dueDate" swaggertype:"string"`
	CompletedAt *Timestamp `json:"completedAt" swaggertype:"string"`
}

func (r *TaskRequest) toModel() *model.Task {
	return &model.Task{
		ID:          r.TaskID,
		UserID:      r.UserID,
		CategoryID:  r.CategoryID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    model.TaskPriority(r.Priority),
		Status:      model.TaskStatus(r.Status),
		DueDate:     r.DueDate.Ptr(),
		CompletedAt: r.CompletedAt.Ptr(),
	}
}

// bindTask decodes a task body; a token's user overrides the body userId.
func bindTask(c echo.Context) (*model.Task, error) {
	var req TaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return nil, err
	}
	task := req.toModel()
	if id, ok := tokenUserID(c); ok {
		task.UserID = id
	}
	return task, nil
}

// ListTasks godoc
// @Summary List the user's tasks, newest first
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param userId query int false "Owner (ignored when a bearer token is sent)"
// @Param status query string false "Status filter"
// @Param priority query string false "Priority filter"
// @Param categoryId query int false "Category filter"
// @Param overdue query bool false "Only overdue tasks"
// @Success 200 {array} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	tasks, err := h.tasks.ListTasks(c.Request().Context(), userID, filter)
	if err != nil {
		return h.fail(err, "Error retrieving tasks")
	}
	return c.JSON(http.StatusOK, tasks)
}

// Summary godoc
// @Summary Count the user's tasks per status and overdue
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param userId query int false "Owner (ignored when a bearer token is sent)"
// @Success 200 {object} model.TaskSummary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/summary [get]
func (h *TaskHandler) Summary(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	summary, err := h.tasks.Summary(c.Request().Context(), userID)
	if err != nil {
		return h.fail(err, "Error retrieving task summary")
	}
	return c.JSON(http.StatusOK, summary)
}

// GetTask godoc
// @Summary Get a task owned by the user
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param userId query int false "Owner (ignored when a bearer token is sent)"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.GetTask(c.Request().Context(), id, userID)
	if err != nil {
		return h.fail(err, "Error retrieving task")
	}
	return c.JSON(http.StatusOK, task)
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TaskRequest true "Task without taskId"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	task, err := bindTask(c)
	if err != nil {
		return err
	}

	created, err := h.tasks.CreateTask(c.Request().Context(), task)
	if err != nil {
		return h.fail(err, "Error creating task")
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/tasks/%d?userId=%d", created.ID, created.UserID))
	return c.JSON(http.StatusCreated, created)
}

// UpdateTask godoc
// @Summary Replace a task owned by the user
// @Tags tasks
// @Accept json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body TaskRequest true "Task; taskId must match the path"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	task, err := bindTask(c)
	if err != nil {
		return err
	}

	if err := h.tasks.UpdateTask(c.Request().Context(), id, task); err != nil {
		return h.fail(err, "Error updating task")
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteTask godoc
// @Summary Delete a task owned by the user
// @Tags tasks
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param userId query int false "Owner (ignored when a bearer token is sent)"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	if err := h.tasks.DeleteTask(c.Request().Context(), id, userID); err != nil {
		return h.fail(err, "Error deleting task")
	}
	return c.NoContent(http.StatusNoContent)
}

// parseFilter reads the optional list filters. "all" is accepted as "no filter"
// to match the values a filter dropdown sends.
func parseFilter(c echo.Context) (model.TaskFilter, error) {
	var filter model.TaskFilter

	if v := filterValue(c, "status"); v != "" {
		filter.Status = model.TaskStatus(v)
	}
	if v := filterValue(c, "priority"); v != "" {
		filter.Priority = model.TaskPriority(v)
	}
	if v := filterValue(c, "categoryId"); v != "" {
		id, ok := parseID(v)
		if !ok {
			return filter, badRequest("invalid categoryId")
		}
		filter.CategoryID = &id
	}
	if v := filterValue(c, "overdue"); v != "" {
		overdue, err := strconv.ParseBool(v)
		if err != nil {
			return filter, badRequest("invalid overdue flag")
		}
		filter.OverdueOnly = overdue
	}
	return filter, nil
}

func filterValue(c echo.Context, name string) string {
	v := strings.TrimSpace(c.QueryParam(name))
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}
