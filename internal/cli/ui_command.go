package cli

import (
	"context"

	"task-manager/internal/ui"
)

// UICommand handles the ui command
type UICommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewUICommand creates a new ui command handler
func NewUICommand(app *App) *UICommand {
	return &UICommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute opens the board over the already loaded store
func (c *UICommand) Execute(ctx context.Context, args []string) error {
	opts := ui.Options{
		DateFormat: c.app.config.Display.DateFormat,
		Timeout:    c.app.config.GetWriteTimeout(),
		Warning:    c.app.warning,
	}
	if err := c.app.runUI(ctx, c.app.api, opts); err != nil {
		return c.errorHandler.Handle("run ui", err)
	}
	return nil
}
