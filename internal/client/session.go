package client

import (
	"context"
	"errors"
	"time"

	"taskboard/internal/model"
)

// ErrNotLoggedIn is returned by Session calls that need a current user.
var ErrNotLoggedIn = errors.New("not logged in")

// Filter narrows the visible task list. Zero values match everything.
type Filter struct {
	Status      model.TaskStatus
	Priority    model.TaskPriority
	CategoryID  *uint
	OverdueOnly bool
}

// Session holds the logged-in user and the lists last fetched for them.
// It is not safe for concurrent use.
type Session struct {
	client       *Client
	refreshToken string

	User       *model.User
	Tasks      []model.Task
	Categories []model.Category
	Filter     Filter
}

// NewSession starts a logged-out session.
func NewSession(c *Client) *Session {
	return &Session{client: c}
}

// Login authenticates, remembers the user and loads their lists.
func (s *Session) Login(ctx context.Context, username, password string) error {
	result, err := s.client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	user := result.User
	s.User = &user
	s.refreshToken = result.RefreshToken
	s.client.SetToken(result.AccessToken)
	return s.Reload(ctx)
}

// Register creates an account without logging in.
func (s *Session) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	return s.client.Register(ctx, username, email, password)
}

// Logout revokes the refresh token and clears all session state.
func (s *Session) Logout(ctx context.Context) error {
	var err error
	if s.refreshToken != "" {
		err = s.client.Logout(ctx, s.refreshToken)
	}
	s.client.SetToken("")
	*s = Session{client: s.client}
	return err
}

// Reload re-fetches categories and tasks.
func (s *Session) Reload(ctx context.Context) error {
	if s.User == nil {
		return ErrNotLoggedIn
	}
	categories, err := s.client.ListCategories(ctx)
	if err != nil {
		return err
	}
	s.Categories = categories
	return s.reloadTasks(ctx)
}

func (s *Session) reloadTasks(ctx context.Context) error {
	tasks, err := s.client.ListTasks(ctx, s.User.ID)
	if err != nil {
		return err
	}
	s.Tasks = tasks
	return nil
}

// CreateTask creates a task for the current user and refreshes the list.
func (s *Session) CreateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	if s.User == nil {
		return nil, ErrNotLoggedIn
	}
	task.UserID = s.User.ID
	created, err := s.client.CreateTask(ctx, task)
	if err != nil {
		return nil, err
	}
	return created, s.reloadTasks(ctx)
}

func (s *Session) UpdateTask(ctx context.Context, task *model.Task) error {
	if s.User == nil {
		return ErrNotLoggedIn
	}
	task.UserID = s.User.ID
	if err := s.client.UpdateTask(ctx, task); err != nil {
		return err
	}
	return s.reloadTasks(ctx)
}

func (s *Session) DeleteTask(ctx context.Context, id uint) error {
	if s.User == nil {
		return ErrNotLoggedIn
	}
	if err := s.client.DeleteTask(ctx, id, s.User.ID); err != nil {
		return err
	}
	return s.reloadTasks(ctx)
}

// Visible returns the cached tasks matching Filter, in server order.
func (s *Session) Visible() []model.Task {
	return s.visibleAt(time.Now())
}

func (s *Session) visibleAt(now time.Time) []model.Task {
	filter := model.TaskFilter{
		Status:      s.Filter.Status,
		Priority:    s.Filter.Priority,
		CategoryID:  s.Filter.CategoryID,
		OverdueOnly: s.Filter.OverdueOnly,
	}
	out := make([]model.Task, 0, len(s.Tasks))
	for i := range s.Tasks {
		if filter.Matches(&s.Tasks[i], now) {
			out = append(out, s.Tasks[i])
		}
	}
	return out
}

// CategoryName resolves a task's category for display; "" when unset or unknown.
func (s *Session) CategoryName(id *uint) string {
	if id == nil {
		return ""
	}
	for _, c := range s.Categories {
		if c.ID == *id {
			return c.Name
		}
	}
	return ""
}

// IsOverdue reports whether task is past due and not completed.
func IsOverdue(task model.Task, now time.Time) bool {
	return task.IsOverdue(now)
}
