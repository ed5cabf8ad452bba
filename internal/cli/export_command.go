package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// Export formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// ExportOptions holds the export command flags
type ExportOptions struct {
	Format string
	Output string
}

// ExportCommand handles the export command
type ExportCommand struct {
	app          *App
	opts         ExportOptions
	mapper       *domain.TaskMapper
	errorHandler *ErrorHandler
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App, opts ExportOptions) *ExportCommand {
	return &ExportCommand{
		app:          app,
		opts:         opts,
		mapper:       domain.NewTaskMapper(),
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	var write func(w io.Writer, records []domain.TaskRecord) error
	switch c.opts.Format {
	case FormatJSON, "":
		write = writeJSON
	case FormatYAML:
		write = writeYAML
	case FormatCSV:
		write = writeCSV
	default:
		return c.errorHandler.Handle("export tasks", errors.NewInvalidInputError("format", c.opts.Format, "unsupported format"))
	}

	records := c.mapper.ToRecordSlice(c.app.api.Tasks())

	if c.opts.Output == "" {
		if err := write(c.app.out, records); err != nil {
			return c.errorHandler.Handle("export tasks", err)
		}
		return nil
	}

	f, err := os.Create(c.opts.Output)
	if err != nil {
		return c.errorHandler.Handle("export tasks", err)
	}
	if err := write(f, records); err != nil {
		f.Close()
		return c.errorHandler.Handle("export tasks", err)
	}
	if err := f.Close(); err != nil {
		return c.errorHandler.Handle("export tasks", err)
	}

	c.app.printf("Exported %d tasks to %s\n", len(records), c.opts.Output)
	return nil
}

func writeJSON(w io.Writer, records []domain.TaskRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func writeYAML(w io.Writer, records []domain.TaskRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

func writeCSV(w io.Writer, records []domain.TaskRecord) error {
	writer := csv.NewWriter(w)

	header := []string{"id", "name", "description", "deadline", "priority", "status", "notes"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.FormatInt(record.ID, 10),
			record.Name,
			record.Description,
			record.Deadline,
			record.Priority,
			record.Status,
			record.Notes,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
