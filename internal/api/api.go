package api

import (
	"context"

	"task-manager/internal/domain"
	"task-manager/internal/services"
)

// View is the projection a surface renders: the filtered tasks for the
// active criterion plus the counters over the whole collection.
type View struct {
	Criterion    domain.Criterion `json:"criterion" yaml:"criterion"`
	Tasks        []domain.Task    `json:"-" yaml:"-"`
	EmptyTitle   string           `json:"empty_title,omitempty" yaml:"empty_title,omitempty"`
	EmptyMessage string           `json:"empty_message,omitempty" yaml:"empty_message,omitempty"`
	Summary      domain.Summary   `json:"summary" yaml:"summary"`
}

// IsEmpty reports whether the filtered list has nothing to show
func (v View) IsEmpty() bool {
	return len(v.Tasks) == 0
}

// API is the event surface the CLI and terminal UI drive. It holds the
// session state (the active filter) around a single task store.
type API interface {
	// ========== Lifecycle ==========

	// Load hydrates the store. Malformed data is reported in the result, not as an error.
	Load(ctx context.Context) (services.LoadResult, error)

	// ========== Task Events ==========

	// CreateTask adds a task. created is false when the draft name is blank.
	CreateTask(ctx context.Context, draft domain.Draft) (task domain.Task, created bool, err error)

	// DeleteTask removes a task. deleted is false when no task has the id.
	DeleteTask(ctx context.Context, id int64) (deleted bool, err error)

	// UpdateTask applies one typed field update. updated is false when no task has the id.
	UpdateTask(ctx context.Context, id int64, update domain.FieldUpdate) (task domain.Task, updated bool, err error)

	// ParseUpdate builds a field update from text, accepting deadline shorthands
	ParseUpdate(field, value string) (domain.FieldUpdate, error)

	// ResolveDeadline converts deadline input to the stored form
	ResolveDeadline(input string) (string, error)

	// ========== View State ==========

	// SetFilter changes the active criterion. Unknown criteria are rejected
	// and leave the active one unchanged.
	SetFilter(criterion domain.Criterion) error

	// Filter returns the active criterion
	Filter() domain.Criterion

	// View projects the store through the active criterion
	View() View

	// ========== Queries ==========

	// GetTask returns a task by id or a not found error
	GetTask(id int64) (domain.Task, error)

	// Tasks returns the whole collection in insertion order
	Tasks() []domain.Task

	// Summary returns the counters over the whole collection
	Summary() domain.Summary

	// Search narrows and orders the collection
	Search(criteria services.SearchCriteria) ([]domain.Task, error)

	// Report returns the extended breakdown of the collection
	Report() *services.Report

	// IsOverdue reports whether a task's deadline has passed while it is unfinished
	IsOverdue(task domain.Task) bool
}
