package cli

import (
	"context"
	"strings"

	"task-manager/internal/domain"
	"task-manager/internal/validation"
)

// AddOptions holds the optional fields of a new task as typed on the command line
type AddOptions struct {
	Description string
	Deadline    string
	Priority    string
	Status      string
	Notes       string
}

// AddCommand handles the add command
type AddCommand struct {
	app          *App
	opts         AddOptions
	errorHandler *ErrorHandler
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App, opts AddOptions) *AddCommand {
	return &AddCommand{
		app:          app,
		opts:         opts,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	draft, err := c.buildDraft(strings.TrimSpace(strings.Join(args, " ")))
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}

	task, created, err := c.app.api.CreateTask(ctx, draft)
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}
	if !created {
		validationErr := validation.NewValidationError()
		validationErr.AddRequiredError("name")
		return c.errorHandler.Handle("add task", validationErr)
	}

	c.app.logger.Debug("task created", "id", task.ID, "priority", task.Priority, "status", task.Status)
	c.app.printf("Added task %d: %s\n", task.ID, task.Name)
	return nil
}

// buildDraft starts from the form defaults and applies the flags that were given
func (c *AddCommand) buildDraft(name string) (domain.Draft, error) {
	draft := domain.NewDraft(name)
	draft.Description = c.opts.Description
	draft.Notes = c.opts.Notes

	if c.opts.Priority != "" {
		priority, err := domain.ParsePriority(c.opts.Priority)
		if err != nil {
			return domain.Draft{}, err
		}
		draft.Priority = priority
	}

	if c.opts.Status != "" {
		status, err := domain.ParseStatus(c.opts.Status)
		if err != nil {
			return domain.Draft{}, err
		}
		draft.Status = status
	}

	deadline, err := c.app.api.ResolveDeadline(c.opts.Deadline)
	if err != nil {
		return domain.Draft{}, err
	}
	draft.Deadline = deadline

	return draft, nil
}
