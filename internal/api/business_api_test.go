package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/repository/memory"
	"task-manager/internal/services"
)

var testNow = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

func setupTestAPI(t *testing.T) (API, *memory.Repository) {
	t.Helper()
	repo := memory.New()
	clock := func() time.Time { return testNow }
	store := services.NewTaskStore(repo, services.StoreOptions{Clock: clock})
	a := New(services.NewServiceContainer(store, services.NewTimeService(clock)))
	_, err := a.Load(context.Background())
	require.NoError(t, err)
	return a, repo
}

func addTask(t *testing.T, a API, name string, p domain.Priority, s domain.Status) domain.Task {
	t.Helper()
	draft := domain.NewDraft(name)
	draft.Priority = p
	draft.Status = s
	task, created, err := a.CreateTask(context.Background(), draft)
	require.NoError(t, err)
	require.True(t, created)
	return task
}

func TestView_Scenarios(t *testing.T) {
	t.Run("empty store with All shows the add hint", func(t *testing.T) {
		a, _ := setupTestAPI(t)

		view := a.View()

		assert.Equal(t, domain.CriterionAll, view.Criterion)
		assert.True(t, view.IsEmpty())
		assert.Equal(t, "No tasks found", view.EmptyTitle)
		assert.Equal(t, `Click "Add New Task" to get started`, view.EmptyMessage)
		assert.Equal(t, domain.Summary{}, view.Summary)
	})

	t.Run("completed filter with only open tasks", func(t *testing.T) {
		a, _ := setupTestAPI(t)
		addTask(t, a, "Write report", domain.PriorityHigh, domain.StatusNotStarted)

		require.NoError(t, a.SetFilter(domain.CriterionCompleted))
		view := a.View()

		assert.True(t, view.IsEmpty())
		assert.Equal(t, "No completed tasks yet", view.EmptyMessage)
		assert.Equal(t, domain.Summary{Total: 1}, view.Summary, "counters ignore the filter")
	})

	t.Run("medium filter shows only the medium task", func(t *testing.T) {
		a, _ := setupTestAPI(t)
		addTask(t, a, "high", domain.PriorityHigh, domain.StatusNotStarted)
		medium := addTask(t, a, "medium", domain.PriorityMedium, domain.StatusInProgress)
		addTask(t, a, "low", domain.PriorityLow, domain.StatusCompleted)

		require.NoError(t, a.SetFilter(domain.CriterionMedium))
		view := a.View()

		assert.Equal(t, []domain.Task{medium}, view.Tasks)
		assert.Empty(t, view.EmptyTitle)
		assert.Empty(t, view.EmptyMessage)
		assert.Equal(t, domain.Summary{Total: 3, InProgress: 1, Completed: 1}, view.Summary)
	})

	t.Run("priority filter without matches names the tier", func(t *testing.T) {
		a, _ := setupTestAPI(t)
		addTask(t, a, "high", domain.PriorityHigh, domain.StatusNotStarted)

		require.NoError(t, a.SetFilter(domain.CriterionLow))

		assert.Equal(t, "No tasks with Low priority", a.View().EmptyMessage)
	})

	t.Run("blank name leaves the store unchanged", func(t *testing.T) {
		a, repo := setupTestAPI(t)

		_, created, err := a.CreateTask(context.Background(), domain.NewDraft(""))

		require.NoError(t, err)
		assert.False(t, created)
		assert.Empty(t, a.Tasks())
		_, found, _ := repo.Get(context.Background(), "professionalTasks")
		assert.False(t, found)
	})
}

func TestView_FilterTotality(t *testing.T) {
	a, _ := setupTestAPI(t)
	addTask(t, a, "a", domain.PriorityHigh, domain.StatusCompleted)
	addTask(t, a, "b", domain.PriorityMedium, domain.StatusOnHold)
	addTask(t, a, "c", domain.PriorityLow, domain.StatusInProgress)
	addTask(t, a, "d", domain.PriorityHigh, domain.StatusNotStarted)

	for _, criterion := range domain.Criteria() {
		t.Run(string(criterion), func(t *testing.T) {
			require.NoError(t, a.SetFilter(criterion))
			view := a.View()

			for _, task := range view.Tasks {
				assert.True(t, criterion.Matches(task))
			}
			matching := 0
			for _, task := range a.Tasks() {
				if criterion.Matches(task) {
					matching++
				}
			}
			assert.Len(t, view.Tasks, matching)
		})
	}
}

func TestDeleteTask(t *testing.T) {
	tests := []struct {
		name           string
		id             func(existing domain.Task) int64
		wantDeleted    bool
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:        "should delete existing task",
			id:          func(existing domain.Task) int64 { return existing.ID },
			wantDeleted: true,
		},
		{
			name: "should ignore unknown id",
			id:   func(existing domain.Task) int64 { return existing.ID + 1 },
		},
		{
			name: "should ignore non-positive id",
			id:   func(domain.Task) int64 { return 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := setupTestAPI(t)
			existing := addTask(t, a, "existing", domain.PriorityMedium, domain.StatusNotStarted)

			deleted, err := a.DeleteTask(context.Background(), tt.id(existing))

			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantDeleted, deleted)
			if tt.wantDeleted {
				assert.Empty(t, a.Tasks())
			} else {
				assert.Len(t, a.Tasks(), 1)
			}
		})
	}
}

func TestUpdateTask(t *testing.T) {
	a, _ := setupTestAPI(t)
	ctx := context.Background()
	other := addTask(t, a, "other", domain.PriorityLow, domain.StatusNotStarted)
	target := addTask(t, a, "target", domain.PriorityMedium, domain.StatusNotStarted)

	update, err := a.ParseUpdate("status", "in-progress")
	require.NoError(t, err)

	updated, ok, err := a.UpdateTask(ctx, target.ID, update)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, domain.StatusInProgress, updated.Status)
	assert.Equal(t, target.Name, updated.Name)
	assert.Equal(t, []domain.Task{other, updated}, a.Tasks())
	assert.Equal(t, domain.Summary{Total: 2, InProgress: 1}, a.Summary())

	_, ok, err = a.UpdateTask(ctx, 12345, update)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = a.UpdateTask(ctx, -1, update)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetFilter_RejectsUnknownCriterion(t *testing.T) {
	a, _ := setupTestAPI(t)
	addTask(t, a, "a", domain.PriorityHigh, domain.StatusNotStarted)
	require.NoError(t, a.SetFilter(domain.CriterionHigh))

	err := a.SetFilter(domain.Criterion("bogus"))

	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	assert.Equal(t, domain.CriterionHigh, a.Filter())
	assert.Len(t, a.View().Tasks, 1)
}

func TestParseUpdate(t *testing.T) {
	a, _ := setupTestAPI(t)

	tests := []struct {
		name           string
		field          string
		value          string
		wantField      string
		wantValue      string
		errorAssertion func(t *testing.T, err error)
	}{
		{name: "deadline shorthand", field: "deadline", value: "tomorrow", wantField: "deadline", wantValue: "2024-03-16"},
		{name: "deadline case-insensitive field", field: "Deadline", value: "+1w", wantField: "deadline", wantValue: "2024-03-22"},
		{name: "clear deadline", field: "deadline", value: "", wantField: "deadline", wantValue: ""},
		{name: "priority", field: "priority", value: "high", wantField: "priority", wantValue: "High"},
		{name: "notes", field: "notes", value: "call back", wantField: "notes", wantValue: "call back"},
		{
			name: "unknown field", field: "owner", value: "me",
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
			},
		},
		{
			name: "bad deadline", field: "deadline", value: "someday",
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update, err := a.ParseUpdate(tt.field, tt.value)
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, update.Field())
			assert.Equal(t, tt.wantValue, update.Value())
		})
	}
}

func TestGetTask(t *testing.T) {
	a, _ := setupTestAPI(t)
	existing := addTask(t, a, "existing", domain.PriorityMedium, domain.StatusNotStarted)

	got, err := a.GetTask(existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing, got)

	_, err = a.GetTask(999)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "task not found: 999")

	_, err = a.GetTask(-1)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
}

func TestSearchAndReport(t *testing.T) {
	a, _ := setupTestAPI(t)
	ctx := context.Background()
	draft := domain.NewDraft("Overdue thing")
	draft.Deadline = "2024-03-01"
	overdue, _, err := a.CreateTask(ctx, draft)
	require.NoError(t, err)
	addTask(t, a, "Fresh", domain.PriorityHigh, domain.StatusNotStarted)

	found, err := a.Search(services.SearchCriteria{OverdueOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []domain.Task{overdue}, found)
	assert.True(t, a.IsOverdue(overdue))

	report := a.Report()
	assert.Equal(t, 2, report.Summary.Total)
	assert.Equal(t, 1, report.Overdue)
	assert.Equal(t, 1, report.ByPriority["High"])
}

func TestLoad_ReportsRecovery(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, "professionalTasks", []byte(`not json`)))

	store := services.NewTaskStore(repo, services.StoreOptions{})
	a := New(services.NewServiceContainer(store, services.NewTimeService(nil)))

	result, err := a.Load(ctx)
	require.NoError(t, err)
	assert.True(t, result.Recovered())
	assert.True(t, a.View().IsEmpty())
}
