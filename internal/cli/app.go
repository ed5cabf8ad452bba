package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"task-manager/internal/api"
	"task-manager/internal/config"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/ui"
)

// Command represents a CLI command handler
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// UIRunner starts the interactive board. Replaced in tests.
type UIRunner func(ctx context.Context, a api.API, opts ui.Options) error

// App carries what every command handler needs: the API, the effective
// configuration and the writers output goes to.
type App struct {
	api     api.API
	config  *config.Config
	out     io.Writer
	errOut  io.Writer
	logger  *log.Logger
	runUI   UIRunner
	warning string
}

// NewApp creates a new CLI application instance writing to stdout and stderr
func NewApp(a api.API, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		api:    a,
		config: cfg,
		out:    os.Stdout,
		errOut: os.Stderr,
		logger: logging.Default(),
		runUI:  ui.Run,
	}
}

// SetOutput redirects command output and diagnostics
func (a *App) SetOutput(out, errOut io.Writer) {
	a.out = out
	a.errOut = errOut
}

// printf writes formatted output to the app's output writer
func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// println writes a line to the app's output writer
func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

// warnf writes a line to the diagnostics writer
func (a *App) warnf(format string, args ...interface{}) {
	fmt.Fprintf(a.errOut, format+"\n", args...)
}

// parseTaskID parses a task ID argument
func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError("id", arg, "must be a positive number")
	}
	return id, nil
}
