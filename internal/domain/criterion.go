package domain

import (
	"fmt"
	"strings"

	"task-manager/internal/errors"
)

// Criterion selects which tasks the view shows: all of them, the completed
// ones, or one priority tier.
type Criterion string

const (
	CriterionAll       Criterion = "All"
	CriterionCompleted Criterion = "Completed"
	CriterionHigh      Criterion = "High"
	CriterionMedium    Criterion = "Medium"
	CriterionLow       Criterion = "Low"
)

// Criteria returns the five filter values in the order the filter bar shows them.
func Criteria() []Criterion {
	return []Criterion{CriterionAll, CriterionHigh, CriterionMedium, CriterionLow, CriterionCompleted}
}

// ParseCriterion parses a filter value, ignoring case.
func ParseCriterion(s string) (Criterion, error) {
	for _, c := range Criteria() {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", errors.NewInvalidInputError("filter", s, "must be one of All, High, Medium, Low, Completed")
}

// Valid reports whether c is one of the five criteria.
func (c Criterion) Valid() bool {
	for _, known := range Criteria() {
		if c == known {
			return true
		}
	}
	return false
}

// Priority returns the tier a priority criterion selects.
func (c Criterion) Priority() (Priority, bool) {
	switch c {
	case CriterionHigh:
		return PriorityHigh, true
	case CriterionMedium:
		return PriorityMedium, true
	case CriterionLow:
		return PriorityLow, true
	}
	return 0, false
}

// Matches reports whether t satisfies the criterion.
func (c Criterion) Matches(t Task) bool {
	switch c {
	case CriterionAll:
		return true
	case CriterionCompleted:
		return t.Status == StatusCompleted
	}
	if p, ok := c.Priority(); ok {
		return t.Priority == p
	}
	return false
}

// Filter returns the tasks that match c, in their original order. The input
// slice is never modified.
func Filter(tasks []Task, c Criterion) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if c.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// EmptyTitle is the headline shown when a view has no tasks.
const EmptyTitle = "No tasks found"

// EmptyMessage returns the hint shown under EmptyTitle for criterion c.
func EmptyMessage(c Criterion) string {
	switch c {
	case CriterionCompleted:
		return "No completed tasks yet"
	case CriterionAll:
		return `Click "Add New Task" to get started`
	}
	return fmt.Sprintf("No tasks with %s priority", string(c))
}

// Summary holds the counters shown under the task list.
type Summary struct {
	Total      int `json:"total" yaml:"total"`
	InProgress int `json:"in_progress" yaml:"in_progress"`
	Completed  int `json:"completed" yaml:"completed"`
}

// Summarize counts tasks over the full, unfiltered collection.
func Summarize(tasks []Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case StatusInProgress:
			s.InProgress++
		case StatusCompleted:
			s.Completed++
		}
	}
	return s
}
