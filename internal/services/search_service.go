package services

import (
	"sort"
	"strings"

	"task-manager/internal/domain"
)

// searchServiceImpl implements the SearchService interface
type searchServiceImpl struct {
	timeService TimeService
}

// NewSearchService creates a new SearchService instance
func NewSearchService(timeService TimeService) SearchService {
	return &searchServiceImpl{
		timeService: timeService,
	}
}

// matchesTextFilter checks name, description and notes for the filter text
func (s *searchServiceImpl) matchesTextFilter(task domain.Task, textFilter string) bool {
	if textFilter == "" {
		return true
	}
	needle := strings.ToLower(textFilter)
	for _, haystack := range []string{task.Name, task.Description, task.Notes} {
		if strings.Contains(strings.ToLower(haystack), needle) {
			return true
		}
	}
	return false
}

// Search applies the view criterion first, then the optional narrowing
// filters, then the requested order
func (s *searchServiceImpl) Search(tasks []domain.Task, criteria SearchCriteria) ([]domain.Task, error) {
	criterion := criteria.Criterion
	if criterion == "" {
		criterion = domain.CriterionAll
	}

	filtered := domain.Filter(tasks, criterion)

	textFilter := strings.TrimSpace(criteria.TextFilter)
	if textFilter != "" || criteria.OverdueOnly {
		narrowed := make([]domain.Task, 0, len(filtered))
		for _, task := range filtered {
			if !s.matchesTextFilter(task, textFilter) {
				continue
			}
			if criteria.OverdueOnly && !s.timeService.IsOverdue(task) {
				continue
			}
			narrowed = append(narrowed, task)
		}
		filtered = narrowed
	}

	return s.SortTasks(filtered, criteria.Order), nil
}

// SortTasks sorts tasks according to the specified order. The sort is
// stable, so ties keep insertion order.
func (s *searchServiceImpl) SortTasks(tasks []domain.Task, order SortOrder) []domain.Task {
	// Make a copy to avoid modifying the original
	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)

	switch order {
	case SortByDeadline:
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := sorted[i].Deadline, sorted[j].Deadline
			if a == "" || b == "" {
				return a != "" && b == ""
			}
			return a < b
		})
	case SortByPriority:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Priority < sorted[j].Priority
		})
	case SortByName:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
		})
	case SortByInsertion, "":
	}

	return sorted
}

// ParseSortOrder parses a sort order name
func ParseSortOrder(s string) (SortOrder, bool) {
	for _, o := range SortOrders() {
		if strings.EqualFold(strings.TrimSpace(s), string(o)) {
			return o, true
		}
	}
	if strings.TrimSpace(s) == "" {
		return SortByInsertion, true
	}
	return "", false
}
