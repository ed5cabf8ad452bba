package api

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/services"
	"task-manager/internal/validation"
)

// businessAPIImpl implements the API interface
type businessAPIImpl struct {
	services      *services.ServiceContainer
	taskValidator *validation.TaskValidator

	mu     sync.RWMutex
	filter domain.Criterion
}

// New creates a new API around the services in container. The active
// filter starts at All.
func New(container *services.ServiceContainer) API {
	return &businessAPIImpl{
		services:      container,
		taskValidator: validation.NewTaskValidator(),
		filter:        domain.CriterionAll,
	}
}

// ========== Lifecycle ==========

func (b *businessAPIImpl) Load(ctx context.Context) (services.LoadResult, error) {
	return b.services.TaskStore.Load(ctx)
}

// ========== Task Events ==========

func (b *businessAPIImpl) CreateTask(ctx context.Context, draft domain.Draft) (domain.Task, bool, error) {
	return b.services.TaskStore.Add(ctx, draft)
}

func (b *businessAPIImpl) DeleteTask(ctx context.Context, id int64) (bool, error) {
	return b.services.TaskStore.Remove(ctx, id)
}

func (b *businessAPIImpl) UpdateTask(ctx context.Context, id int64, update domain.FieldUpdate) (domain.Task, bool, error) {
	return b.services.TaskStore.Update(ctx, id, update)
}

func (b *businessAPIImpl) ParseUpdate(field, value string) (domain.FieldUpdate, error) {
	if strings.EqualFold(strings.TrimSpace(field), domain.FieldDeadline) {
		resolved, err := b.ResolveDeadline(value)
		if err != nil {
			return nil, err
		}
		return domain.SetDeadline(resolved)
	}
	return domain.ParseFieldUpdate(field, value)
}

func (b *businessAPIImpl) ResolveDeadline(input string) (string, error) {
	return b.services.TimeService.ResolveDeadline(input)
}

// ========== View State ==========

func (b *businessAPIImpl) SetFilter(criterion domain.Criterion) error {
	if !criterion.Valid() {
		return errors.NewInvalidInputError("filter", string(criterion), "unknown criterion")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter = criterion
	return nil
}

func (b *businessAPIImpl) Filter() domain.Criterion {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.filter
}

func (b *businessAPIImpl) View() View {
	criterion := b.Filter()
	all := b.services.TaskStore.Tasks()

	view := View{
		Criterion: criterion,
		Tasks:     domain.Filter(all, criterion),
		Summary:   domain.Summarize(all),
	}
	if view.IsEmpty() {
		view.EmptyTitle = domain.EmptyTitle
		view.EmptyMessage = domain.EmptyMessage(criterion)
	}
	return view
}

// ========== Queries ==========

func (b *businessAPIImpl) GetTask(id int64) (domain.Task, error) {
	if err := b.taskValidator.ValidateTaskID(id); err != nil {
		return domain.Task{}, errors.NewValidationError("invalid task ID", err)
	}
	task, ok := b.services.TaskStore.Get(id)
	if !ok {
		return domain.Task{}, errors.NewNotFoundError("task", strconv.FormatInt(id, 10))
	}
	return task, nil
}

func (b *businessAPIImpl) Tasks() []domain.Task {
	return b.services.TaskStore.Tasks()
}

func (b *businessAPIImpl) Summary() domain.Summary {
	return domain.Summarize(b.services.TaskStore.Tasks())
}

func (b *businessAPIImpl) Search(criteria services.SearchCriteria) ([]domain.Task, error) {
	return b.services.SearchService.Search(b.services.TaskStore.Tasks(), criteria)
}

func (b *businessAPIImpl) Report() *services.Report {
	return b.services.ReportingService.BuildReport(b.services.TaskStore.Tasks())
}

func (b *businessAPIImpl) IsOverdue(task domain.Task) bool {
	return b.services.TimeService.IsOverdue(task)
}
