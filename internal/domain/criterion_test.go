package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []Task {
	return []Task{
		{ID: 1, Name: "a", Priority: PriorityHigh, Status: StatusCompleted},
		{ID: 2, Name: "b", Priority: PriorityMedium, Status: StatusInProgress},
		{ID: 3, Name: "c", Priority: PriorityLow, Status: StatusNotStarted},
		{ID: 4, Name: "d", Priority: PriorityHigh, Status: StatusOnHold},
		{ID: 5, Name: "e", Priority: PriorityMedium, Status: StatusCompleted},
	}
}

func ids(tasks []Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		criterion Criterion
		expected  []int64
	}{
		{CriterionAll, []int64{1, 2, 3, 4, 5}},
		{CriterionCompleted, []int64{1, 5}},
		{CriterionHigh, []int64{1, 4}},
		{CriterionMedium, []int64{2, 5}},
		{CriterionLow, []int64{3}},
	}

	for _, tt := range tests {
		t.Run(string(tt.criterion), func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(Filter(sampleTasks(), tt.criterion)))
		})
	}
}

func TestFilter_Totality(t *testing.T) {
	tasks := sampleTasks()
	for _, c := range Criteria() {
		filtered := Filter(tasks, c)

		for _, task := range filtered {
			assert.True(t, c.Matches(task), "criterion %s returned non-matching task %d", c, task.ID)
		}

		// every matching task appears exactly once, in original order
		var expected []int64
		for _, task := range tasks {
			if c.Matches(task) {
				expected = append(expected, task.ID)
			}
		}
		if expected == nil {
			expected = []int64{}
		}
		assert.Equal(t, expected, ids(filtered), "criterion %s", c)
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	tasks := sampleTasks()
	_ = Filter(tasks, CriterionCompleted)
	assert.Equal(t, sampleTasks(), tasks)
}

func TestFilter_Scenarios(t *testing.T) {
	t.Run("empty collection with All shows the add prompt", func(t *testing.T) {
		filtered := Filter(nil, CriterionAll)
		assert.Empty(t, filtered)
		assert.Equal(t, `Click "Add New Task" to get started`, EmptyMessage(CriterionAll))
	})

	t.Run("no completed tasks", func(t *testing.T) {
		tasks := []Task{{ID: 1, Name: "Ship report", Priority: PriorityHigh, Status: StatusNotStarted}}
		assert.Empty(t, Filter(tasks, CriterionCompleted))
		assert.Equal(t, "No completed tasks yet", EmptyMessage(CriterionCompleted))
	})

	t.Run("medium only", func(t *testing.T) {
		tasks := []Task{
			{ID: 1, Name: "h", Priority: PriorityHigh, Status: StatusNotStarted},
			{ID: 2, Name: "m", Priority: PriorityMedium, Status: StatusNotStarted},
			{ID: 3, Name: "l", Priority: PriorityLow, Status: StatusNotStarted},
		}
		assert.Equal(t, []int64{2}, ids(Filter(tasks, CriterionMedium)))
	})
}

func TestEmptyMessage_PriorityTier(t *testing.T) {
	assert.Equal(t, "No tasks with High priority", EmptyMessage(CriterionHigh))
	assert.Equal(t, "No tasks with Low priority", EmptyMessage(CriterionLow))
}

func TestParseCriterion(t *testing.T) {
	c, err := ParseCriterion("completed")
	require.NoError(t, err)
	assert.Equal(t, CriterionCompleted, c)

	_, err = ParseCriterion("In Progress")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{Total: 5, InProgress: 1, Completed: 2}, Summarize(sampleTasks()))
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestCriterion_Valid(t *testing.T) {
	for _, c := range Criteria() {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, Criterion("bogus").Valid())
	assert.False(t, Criterion("").Valid())
	assert.False(t, Criterion("high").Valid())
}
