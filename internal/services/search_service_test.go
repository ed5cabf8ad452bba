package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/domain"
)

func searchFixture() []domain.Task {
	return []domain.Task{
		{ID: 1, Name: "Write report", Deadline: "2024-03-20", Priority: domain.PriorityMedium, Status: domain.StatusInProgress},
		{ID: 2, Name: "call vendor", Notes: "about the Report template", Priority: domain.PriorityHigh, Status: domain.StatusNotStarted},
		{ID: 3, Name: "Archive", Deadline: "2024-03-01", Priority: domain.PriorityLow, Status: domain.StatusCompleted},
		{ID: 4, Name: "Budget", Deadline: "2024-03-10", Priority: domain.PriorityHigh, Status: domain.StatusOnHold},
	}
}

func taskIDs(tasks []domain.Task) []int64 {
	ids := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestSearchService_Search(t *testing.T) {
	service := NewSearchService(NewTimeService(fixedClock(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))))

	tests := []struct {
		name     string
		criteria SearchCriteria
		expected []int64
	}{
		{"zero criteria shows all", SearchCriteria{}, []int64{1, 2, 3, 4}},
		{"criterion only", SearchCriteria{Criterion: domain.CriterionHigh}, []int64{2, 4}},
		{"completed", SearchCriteria{Criterion: domain.CriterionCompleted}, []int64{3}},
		{"text matches name and notes case-insensitively", SearchCriteria{TextFilter: "REPORT"}, []int64{1, 2}},
		{"text combined with criterion", SearchCriteria{Criterion: domain.CriterionHigh, TextFilter: "report"}, []int64{2}},
		{"overdue skips completed", SearchCriteria{OverdueOnly: true}, []int64{4}},
		{"sorted by deadline", SearchCriteria{Order: SortByDeadline}, []int64{3, 4, 1, 2}},
		{"sorted by priority keeps ties in order", SearchCriteria{Order: SortByPriority}, []int64{2, 4, 1, 3}},
		{"sorted by name", SearchCriteria{Order: SortByName}, []int64{3, 4, 2, 1}},
		{"no matches", SearchCriteria{TextFilter: "nothing"}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := searchFixture()
			got, err := service.Search(input, tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, taskIDs(got))
			assert.Equal(t, searchFixture(), input, "input must not be modified")
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		input    string
		expected SortOrder
		ok       bool
	}{
		{"", SortByInsertion, true},
		{"Deadline", SortByDeadline, true},
		{"priority", SortByPriority, true},
		{"name", SortByName, true},
		{"insertion", SortByInsertion, true},
		{"size", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseSortOrder(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.expected, got, tt.input)
	}
}
