package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/services"
	"task-manager/internal/ui"
)

// ListOptions holds the list command flags
type ListOptions struct {
	Filter  string
	Search  string
	Sort    string
	Overdue bool
}

// ListCommand handles the list command
type ListCommand struct {
	app          *App
	opts         ListOptions
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App, opts ListOptions) *ListCommand {
	return &ListCommand{
		app:          app,
		opts:         opts,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if c.opts.Filter != "" {
		criterion, err := domain.ParseCriterion(c.opts.Filter)
		if err != nil {
			return c.errorHandler.Handle("list tasks", err)
		}
		if err := c.app.api.SetFilter(criterion); err != nil {
			return c.errorHandler.Handle("list tasks", err)
		}
	}

	view := c.app.api.View()
	tasks := view.Tasks

	if c.narrowed() {
		order, ok := services.ParseSortOrder(c.opts.Sort)
		if !ok {
			return c.errorHandler.Handle("list tasks", errors.NewInvalidInputError("sort", c.opts.Sort, "must be one of "+sortOrderNames()))
		}
		found, err := c.app.api.Search(services.SearchCriteria{
			Criterion:   view.Criterion,
			TextFilter:  c.opts.Search,
			OverdueOnly: c.opts.Overdue,
			Order:       order,
		})
		if err != nil {
			return c.errorHandler.Handle("list tasks", err)
		}
		tasks = found
	}

	if len(tasks) == 0 {
		c.app.println(domain.EmptyTitle)
		if view.IsEmpty() {
			c.app.println(view.EmptyMessage)
		} else {
			c.app.println("No tasks match the search")
		}
	} else {
		c.printTable(tasks)
	}

	c.app.println()
	printSummary(c.app, view.Summary)
	return nil
}

func (c *ListCommand) narrowed() bool {
	return c.opts.Search != "" || c.opts.Overdue || c.opts.Sort != ""
}

// printTable prints one row per task with columns padded to the widest cell
func (c *ListCommand) printTable(tasks []domain.Task) {
	rows := [][]string{{"ID", "NAME", "PRIORITY", "STATUS", "DEADLINE"}}
	for _, task := range tasks {
		deadline := formatDeadline(c.app, task)
		if c.app.api.IsOverdue(task) {
			deadline = ui.OverdueStyle().Render(deadline + " (overdue)")
		}
		rows = append(rows, []string{
			strconv.FormatInt(task.ID, 10),
			task.Name,
			ui.PriorityStyle(task.Priority).Render(task.Priority.String()),
			ui.StatusStyle(task.Status).Render(task.Status.String()),
			deadline,
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		c.app.println(strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

// printSummary prints the three counters on one line
func printSummary(app *App, s domain.Summary) {
	app.printf("Total: %d | In Progress: %d | Completed: %d\n", s.Total, s.InProgress, s.Completed)
}

// formatDeadline renders a deadline with the configured date format
func formatDeadline(app *App, task domain.Task) string {
	return services.FormatDeadline(task, app.config.Display.DateFormat)
}

func sortOrderNames() string {
	names := make([]string, 0, len(services.SortOrders()))
	for _, order := range services.SortOrders() {
		names = append(names, string(order))
	}
	return strings.Join(names, ", ")
}
