package cli

import (
	"context"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// SummaryOptions holds the summary command flags
type SummaryOptions struct {
	Format string
}

// SummaryCommand handles the summary command
type SummaryCommand struct {
	app          *App
	opts         SummaryOptions
	errorHandler *ErrorHandler
}

// NewSummaryCommand creates a new summary command handler
func NewSummaryCommand(app *App, opts SummaryOptions) *SummaryCommand {
	return &SummaryCommand{
		app:          app,
		opts:         opts,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the summary command
func (c *SummaryCommand) Execute(ctx context.Context, args []string) error {
	report := c.app.api.Report()

	switch c.opts.Format {
	case "", "text":
	case FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return c.errorHandler.Handle("build summary", err)
		}
		c.app.println(string(data))
		return nil
	case FormatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return c.errorHandler.Handle("build summary", err)
		}
		c.app.printf("%s", data)
		return nil
	default:
		return c.errorHandler.Handle("build summary", errors.NewInvalidInputError("format", c.opts.Format, "unsupported format"))
	}

	printSummary(c.app, report.Summary)

	c.app.println()
	c.app.println("By priority:")
	for _, p := range domain.Priorities() {
		c.app.printf("  %-12s %d\n", p.String(), report.ByPriority[p.String()])
	}

	c.app.println()
	c.app.println("By status:")
	for _, s := range domain.Statuses() {
		c.app.printf("  %-12s %d\n", s.String(), report.ByStatus[s.String()])
	}

	c.app.println()
	c.app.printf("Overdue: %d | Due today: %d\n", report.Overdue, report.DueToday)
	return nil
}
