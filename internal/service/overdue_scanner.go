package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"taskboard/internal/repository"
)

const scanTimeout = 30 * time.Second

// Logger is the subset of echo.Logger the scanner writes to.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// OverdueScanner periodically reports how many overdue tasks each user has.
type OverdueScanner struct {
	tasks  repository.TaskRepository
	logger Logger
	cron   *cron.Cron
	now    func() time.Time
}

// NewOverdueScanner creates a scanner; call Start to schedule it.
func NewOverdueScanner(tasks repository.TaskRepository, logger Logger, loc *time.Location) *OverdueScanner {
	if loc == nil {
		loc = time.Local
	}
	return &OverdueScanner{
		tasks:  tasks,
		logger: logger,
		cron:   cron.New(cron.WithLocation(loc)),
		now:    time.Now,
	}
}

// Start schedules Scan with a cron spec such as "@every 1h" or "0 8 * * *".
func (s *OverdueScanner) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return fmt.Errorf("schedule overdue scan %q: %w", spec, err)
	}
	s.cron.Start()
	return nil
}

// Stop waits for a running scan to finish.
func (s *OverdueScanner) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Scan counts overdue tasks per user and logs one line per user.
func (s *OverdueScanner) Scan(ctx context.Context) ([]repository.UserTaskCount, error) {
	counts, err := s.tasks.CountOverdueByUser(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("count overdue tasks: %w", err)
	}
	for _, c := range counts {
		s.logger.Infof("overdue scan: user %d has %d overdue task(s)", c.UserID, c.Count)
	}
	return counts, nil
}

func (s *OverdueScanner) run() {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()
	if _, err := s.Scan(ctx); err != nil {
		s.logger.Errorf("overdue scan: %v", err)
	}
}
