package domain

import (
	"strings"
	"time"

	"task-manager/internal/errors"
)

// DeadlineLayout is the ISO calendar date layout deadlines are stored in.
const DeadlineLayout = "2006-01-02"

// Priority is the urgency tier of a task.
type Priority int

const (
	PriorityHigh Priority = iota + 1
	PriorityMedium
	PriorityLow
)

var priorityNames = map[Priority]string{
	PriorityHigh:   "High",
	PriorityMedium: "Medium",
	PriorityLow:    "Low",
}

// Priorities returns every priority tier, highest first.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// String returns the persisted spelling of the priority.
func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether p is one of the enumerated tiers.
func (p Priority) Valid() bool {
	_, ok := priorityNames[p]
	return ok
}

// ParsePriority parses the persisted spelling of a priority.
// Matching is case-insensitive so CLI input like "high" is accepted.
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities() {
		if strings.EqualFold(strings.TrimSpace(s), p.String()) {
			return p, nil
		}
	}
	return 0, errors.NewInvalidInputError("priority", s, "must be one of High, Medium, Low")
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, errors.NewInvalidInputError("priority", int(p), "not an enumerated priority")
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Status is the progress state of a task. Any status may replace any other.
type Status int

const (
	StatusNotStarted Status = iota + 1
	StatusInProgress
	StatusCompleted
	StatusOnHold
)

var statusNames = map[Status]string{
	StatusNotStarted: "Not Started",
	StatusInProgress: "In Progress",
	StatusCompleted:  "Completed",
	StatusOnHold:     "On Hold",
}

// Statuses returns every status in display order.
func Statuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusCompleted, StatusOnHold}
}

// String returns the persisted spelling of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// ParseStatus parses the persisted spelling of a status. Case and the
// separator between words are not significant ("in-progress", "In Progress").
func ParseStatus(s string) (Status, error) {
	normalized := normalizeWords(s)
	for _, st := range Statuses() {
		if normalized == normalizeWords(st.String()) {
			return st, nil
		}
	}
	return 0, errors.NewInvalidInputError("status", s, "must be one of Not Started, In Progress, Completed, On Hold")
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, errors.NewInvalidInputError("status", int(s), "not an enumerated status")
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func normalizeWords(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
	return strings.Join(fields, " ")
}

// ParseDeadline validates an ISO calendar date. An empty string means no
// deadline and is returned unchanged.
func ParseDeadline(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", nil
	}
	d, err := time.Parse(DeadlineLayout, trimmed)
	if err != nil {
		return "", errors.NewInvalidInputError("deadline", s, "must be a date in YYYY-MM-DD form")
	}
	return d.Format(DeadlineLayout), nil
}

// Task is a single to-do record.
type Task struct {
	ID          int64
	Name        string
	Description string
	Deadline    string // YYYY-MM-DD, empty when absent
	Priority    Priority
	Status      Status
	Notes       string
}

// IsValid checks if the task satisfies the record invariants.
func (t Task) IsValid() bool {
	return strings.TrimSpace(t.Name) != "" && t.Priority.Valid() && t.Status.Valid()
}

// HasDeadline reports whether a deadline is set.
func (t Task) HasDeadline() bool {
	return t.Deadline != ""
}

// DeadlineTime returns the deadline as a time at midnight UTC.
func (t Task) DeadlineTime() (time.Time, bool) {
	if !t.HasDeadline() {
		return time.Time{}, false
	}
	d, err := time.Parse(DeadlineLayout, t.Deadline)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// String returns the task name for display purposes.
func (t Task) String() string {
	return t.Name
}

// Draft holds the user-entered fields of a task that has not been created yet.
type Draft struct {
	Name        string
	Description string
	Deadline    string
	Priority    Priority
	Status      Status
	Notes       string
}

// NewDraft returns a draft with the form defaults: Medium priority, Not Started.
func NewDraft(name string) Draft {
	return Draft{
		Name:     name,
		Priority: PriorityMedium,
		Status:   StatusNotStarted,
	}
}

// ToTask builds a task from the draft with the given id. Fields are copied
// as entered.
func (d Draft) ToTask(id int64) Task {
	return Task{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Deadline:    d.Deadline,
		Priority:    d.Priority,
		Status:      d.Status,
		Notes:       d.Notes,
	}
}
