package services

import (
	"context"
	"time"

	"task-manager/internal/domain"
)

// LoadResult reports how the persisted collection was hydrated.
type LoadResult struct {
	Count int `json:"count"`
	// Warning is set when persisted data could not be read and the store
	// fell back to an empty collection.
	Warning error `json:"-"`
}

// Recovered reports whether Load discarded malformed persisted data.
func (r LoadResult) Recovered() bool {
	return r.Warning != nil
}

// TaskStore owns the ordered task collection and mirrors it to durable storage
type TaskStore interface {
	// Load hydrates the collection from storage, replacing anything in memory
	Load(ctx context.Context) (LoadResult, error)

	// Add appends a task built from draft. A blank name is a no-op.
	Add(ctx context.Context, draft domain.Draft) (domain.Task, bool, error)
	// Remove deletes the task with id. An unknown id is a no-op.
	Remove(ctx context.Context, id int64) (bool, error)
	// Update applies one field update to the task with id. An unknown id is a no-op.
	Update(ctx context.Context, id int64, update domain.FieldUpdate) (domain.Task, bool, error)

	// Tasks returns a copy of the collection in insertion order
	Tasks() []domain.Task
	// Get returns a copy of the task with id
	Get(id int64) (domain.Task, bool)
}

// TimeService resolves and classifies deadlines relative to the current day
type TimeService interface {
	// ResolveDeadline accepts ISO dates and the shorthands today, tomorrow, +Nd and +Nw
	ResolveDeadline(input string) (string, error)
	IsOverdue(task domain.Task) bool
	IsDueToday(task domain.Task) bool
	// DaysUntil returns whole days from today to the deadline; false when none is set
	DaysUntil(task domain.Task) (int, bool)
	Today() time.Time
}

// SortOrder defines how task results should be sorted
type SortOrder string

const (
	SortByInsertion SortOrder = "insertion" // Creation order (default)
	SortByDeadline  SortOrder = "deadline"  // Earliest deadline first, undated last
	SortByPriority  SortOrder = "priority"  // High before Medium before Low
	SortByName      SortOrder = "name"      // Alphabetical by task name
)

// SortOrders lists the accepted sort orders.
func SortOrders() []SortOrder {
	return []SortOrder{SortByInsertion, SortByDeadline, SortByPriority, SortByName}
}

// SearchCriteria represents criteria for narrowing a task list
type SearchCriteria struct {
	Criterion   domain.Criterion `json:"criterion"`
	TextFilter  string           `json:"text_filter,omitempty"`
	OverdueOnly bool             `json:"overdue_only,omitempty"`
	Order       SortOrder        `json:"order,omitempty"`
}

// SearchService handles search and ordering over a task collection
type SearchService interface {
	Search(tasks []domain.Task, criteria SearchCriteria) ([]domain.Task, error)
	SortTasks(tasks []domain.Task, order SortOrder) []domain.Task
}

// Report extends the summary counters with per-tier and per-status breakdowns
type Report struct {
	Summary    domain.Summary `json:"summary" yaml:"summary"`
	ByPriority map[string]int `json:"by_priority" yaml:"by_priority"`
	ByStatus   map[string]int `json:"by_status" yaml:"by_status"`
	Overdue    int            `json:"overdue" yaml:"overdue"`
	DueToday   int            `json:"due_today" yaml:"due_today"`
}

// ReportingService handles aggregate reporting over a task collection
type ReportingService interface {
	BuildReport(tasks []domain.Task) *Report
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TaskStore        TaskStore
	TimeService      TimeService
	SearchService    SearchService
	ReportingService ReportingService
}
