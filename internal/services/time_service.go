package services

import (
	"strconv"
	"strings"
	"time"

	"task-manager/internal/domain"
)

// timeServiceImpl implements the TimeService interface
type timeServiceImpl struct {
	clock func() time.Time
}

// NewTimeService creates a new TimeService instance. A nil clock means time.Now.
func NewTimeService(clock func() time.Time) TimeService {
	if clock == nil {
		clock = time.Now
	}
	return &timeServiceImpl{clock: clock}
}

// Today returns midnight of the current local day, expressed in UTC so it
// compares directly with parsed deadlines
func (t *timeServiceImpl) Today() time.Time {
	now := t.clock()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// ResolveDeadline converts deadline input to the stored YYYY-MM-DD form
func (t *timeServiceImpl) ResolveDeadline(input string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))

	switch trimmed {
	case "", "none":
		return "", nil
	case "today":
		return t.Today().Format(domain.DeadlineLayout), nil
	case "tomorrow":
		return t.Today().AddDate(0, 0, 1).Format(domain.DeadlineLayout), nil
	}

	if days, ok := parseDayShorthand(trimmed); ok {
		return t.Today().AddDate(0, 0, days).Format(domain.DeadlineLayout), nil
	}

	return domain.ParseDeadline(input)
}

// parseDayShorthand accepts +Nd and +Nw offsets
func parseDayShorthand(s string) (int, bool) {
	if len(s) < 3 || s[0] != '+' {
		return 0, false
	}
	unit := s[len(s)-1]
	n, err := strconv.Atoi(s[1 : len(s)-1])
	if err != nil || n < 0 {
		return 0, false
	}
	switch unit {
	case 'd':
		return n, true
	case 'w':
		return n * 7, true
	}
	return 0, false
}

// IsOverdue reports whether an unfinished task's deadline has passed
func (t *timeServiceImpl) IsOverdue(task domain.Task) bool {
	days, ok := t.DaysUntil(task)
	return ok && days < 0 && task.Status != domain.StatusCompleted
}

// IsDueToday reports whether the task's deadline is today
func (t *timeServiceImpl) IsDueToday(task domain.Task) bool {
	days, ok := t.DaysUntil(task)
	return ok && days == 0
}

// DaysUntil returns the number of days between today and the deadline
func (t *timeServiceImpl) DaysUntil(task domain.Task) (int, bool) {
	deadline, ok := task.DeadlineTime()
	if !ok {
		return 0, false
	}
	return int(deadline.Sub(t.Today()).Hours() / 24), true
}

// FormatDeadline renders a stored deadline using layout, or "-" when absent
func FormatDeadline(task domain.Task, layout string) string {
	deadline, ok := task.DeadlineTime()
	if !ok {
		return "-"
	}
	return deadline.Format(layout)
}
