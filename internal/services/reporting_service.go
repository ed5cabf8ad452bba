package services

import (
	"task-manager/internal/domain"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	timeService TimeService
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(timeService TimeService) ReportingService {
	return &reportingServiceImpl{
		timeService: timeService,
	}
}

// BuildReport aggregates the full collection. Every tier and status appears
// in the breakdowns, with zero counts where nothing matches.
func (r *reportingServiceImpl) BuildReport(tasks []domain.Task) *Report {
	report := &Report{
		Summary:    domain.Summarize(tasks),
		ByPriority: make(map[string]int, len(domain.Priorities())),
		ByStatus:   make(map[string]int, len(domain.Statuses())),
	}
	for _, p := range domain.Priorities() {
		report.ByPriority[p.String()] = 0
	}
	for _, s := range domain.Statuses() {
		report.ByStatus[s.String()] = 0
	}

	for _, task := range tasks {
		report.ByPriority[task.Priority.String()]++
		report.ByStatus[task.Status.String()]++
		if r.timeService.IsOverdue(task) {
			report.Overdue++
		}
		if r.timeService.IsDueToday(task) {
			report.DueToday++
		}
	}

	return report
}

// NewServiceContainer wires every service around a single task store
func NewServiceContainer(store TaskStore, timeService TimeService) *ServiceContainer {
	return &ServiceContainer{
		TaskStore:        store,
		TimeService:      timeService,
		SearchService:    NewSearchService(timeService),
		ReportingService: NewReportingService(timeService),
	}
}
