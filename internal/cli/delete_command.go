package cli

import (
	"context"
	"strconv"

	"task-manager/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: tm delete ID")
	}

	id, err := parseTaskID(args[0])
	if err != nil {
		return c.errorHandler.Handle("delete task", err)
	}

	// Look the task up first so the confirmation can name it
	task, err := c.app.api.GetTask(id)
	if err != nil {
		return c.errorHandler.Handle("delete task", err)
	}

	deleted, err := c.app.api.DeleteTask(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("delete task", err)
	}
	if !deleted {
		return c.errorHandler.Handle("delete task", errors.NewNotFoundError("task", strconv.FormatInt(id, 10)))
	}

	c.app.printf("Deleted task %d: %s\n", task.ID, task.Name)
	return nil
}
