package cli

import (
	"context"
	"strconv"
	"strings"

	"task-manager/internal/errors"
)

// SetCommand handles the set command
type SetCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewSetCommand creates a new set command handler
func NewSetCommand(app *App) *SetCommand {
	return &SetCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the set command. Arguments after the field are joined into
// the value, so multi-word values need no quoting.
func (c *SetCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return c.errorHandler.Handle("update task", errors.NewInvalidInputError("command", "set", "usage: tm set ID FIELD [VALUE]"))
	}

	id, err := parseTaskID(args[0])
	if err != nil {
		return c.errorHandler.Handle("update task", err)
	}

	update, err := c.app.api.ParseUpdate(args[1], strings.Join(args[2:], " "))
	if err != nil {
		return c.errorHandler.Handle("update task", err)
	}

	task, updated, err := c.app.api.UpdateTask(ctx, id, update)
	if err != nil {
		return c.errorHandler.Handle("update task", err)
	}
	if !updated {
		return c.errorHandler.Handle("update task", errors.NewNotFoundError("task", strconv.FormatInt(id, 10)))
	}

	c.app.logger.Debug("task updated", "id", task.ID, "field", update.Field())
	c.app.printf("Updated task %d: %s = %q\n", task.ID, update.Field(), update.Value())
	return nil
}
