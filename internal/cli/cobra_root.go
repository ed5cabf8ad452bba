package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"task-manager/internal/api"
	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/ui"
)

// APIFactory builds the API over the storage a configuration selects. The
// returned closer releases that storage.
type APIFactory func(cfg *config.Config) (api.API, io.Closer, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	factory APIFactory
	config  *config.Config
	app     *App
	closer  io.Closer
	out     io.Writer
	errOut  io.Writer
	runUI   UIRunner
}

// NewRootCommand creates the root cobra command with global flags. The API
// is built once flags are parsed, so storage flags take effect.
func NewRootCommand(factory APIFactory) *RootCommand {
	root := &RootCommand{
		factory: factory,
		out:     os.Stdout,
		errOut:  os.Stderr,
		runUI:   ui.Run,
	}

	root.cmd = &cobra.Command{
		Use:   "tm",
		Short: "A command-line task manager",
		Long: `Task Manager (tm) keeps a list of professional tasks with a priority,
a status and an optional deadline.

FEATURES:
  • Add, edit and delete tasks
  • Filter by priority tier or show completed tasks
  • Search, sort and spot overdue work
  • Export to JSON, YAML or CSV
  • Interactive terminal board (tm ui)

EXAMPLES:
  tm add "Write report" --priority high --deadline +3d
  tm list --filter High                    # Only High priority tasks
  tm list --search report --sort deadline  # Text search, earliest deadline first
  tm set 1710495000000 status "In Progress"
  tm delete 1710495000000
  tm summary
  tm export --format csv > tasks.csv
  tm ui

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults

  Config file: --config, TM_CONFIG, or tm.toml / .tm.toml in the working directory

  Storage Configuration:
    TM_STORAGE_BACKEND                     sqlite, file or memory (default: sqlite)
    TM_DATA_DIR                            Data directory (default: ~/.tm)
    TM_DB_FILENAME                         SQLite filename (default: tm.db)
    TM_STORAGE_KEY                         Key the collection is stored under (default: professionalTasks)
    TM_DB_QUERY_TIMEOUT                    Read timeout (default: 10s)
    TM_DB_WRITE_TIMEOUT                    Write timeout (default: 5s)
    TM_DATA_DIR_PERMISSIONS                Data directory mode, octal (default: 0755)

  Validation Configuration:
    TM_VALIDATION_TASK_NAME_MAX            Max task name length (default: 0, unbounded)

  Display Configuration:
    TM_DISPLAY_DATE_FORMAT                 Deadline format (default: Jan 2, 2006)
    TM_DISPLAY_DEFAULT_FILTER              Filter applied on start (default: All)

  Application Configuration:
    TM_APP_TIMEOUT                         Command timeout (default: 60s)
    TM_APP_VERBOSE                         Enable verbose output (default: false)
    TM_LOG_LEVEL                           debug, info, warn or error (default: info)

DEADLINES:
  YYYY-MM-DD, today, tomorrow, +Nd, +Nw, or none to clear

GETTING HELP:
  tm [command] --help                      # Get help for any specific command
  tm completion bash                       # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command and releases storage afterwards
func (r *RootCommand) Execute() error {
	defer r.close()
	return r.cmd.Execute()
}

// SetArgs overrides the arguments cobra parses
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetOutput redirects command output and diagnostics
func (r *RootCommand) SetOutput(out, errOut io.Writer) {
	r.out = out
	r.errOut = errOut
	r.cmd.SetOut(out)
	r.cmd.SetErr(errOut)
}

// Config returns the effective configuration once a command has run
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (overrides TM_CONFIG)")

	// Storage configuration
	flags.String("backend", "", "Storage backend: sqlite, file or memory (overrides TM_STORAGE_BACKEND)")
	flags.String("data-dir", "", "Data directory (overrides TM_DATA_DIR)")
	flags.String("db-filename", "", "SQLite filename (overrides TM_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Storage read timeout (overrides TM_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Storage write timeout (overrides TM_DB_WRITE_TIMEOUT)")
	flags.String("storage-key", "", "Key the collection is stored under (overrides TM_STORAGE_KEY)")

	// Validation configuration
	flags.Int("task-name-max-length", 0, "Maximum task name length (overrides TM_VALIDATION_TASK_NAME_MAX)")

	// Display configuration
	flags.String("date-format", "", "Deadline display format (overrides TM_DISPLAY_DATE_FORMAT)")

	// Application configuration
	flags.Duration("timeout", 0, "Command timeout (overrides TM_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable verbose output (overrides TM_APP_VERBOSE)")
	flags.String("log-level", "", "Log level: debug, info, warn or error (overrides TM_LOG_LEVEL)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// Add command
	addOpts := &AddOptions{}
	addCmd := &cobra.Command{
		Use:   "add [task name]",
		Short: "Add a new task",
		Long: `Add a new task. Priority defaults to Medium and status to Not Started.

Examples:
  tm add "Write report"
  tm add "Prepare slides" --priority high --deadline tomorrow
  tm add "Renew licence" --deadline 2024-06-30 --notes "ask finance first"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewAddCommand(r.app, *addOpts).Execute(ctx, args)
		},
	}
	addCmd.Flags().StringVarP(&addOpts.Description, "description", "d", "", "Task description")
	addCmd.Flags().StringVar(&addOpts.Deadline, "deadline", "", "Deadline: YYYY-MM-DD, today, tomorrow, +Nd or +Nw")
	addCmd.Flags().StringVarP(&addOpts.Priority, "priority", "p", "", "Priority: High, Medium or Low (default Medium)")
	addCmd.Flags().StringVarP(&addOpts.Status, "status", "s", "", "Status: Not Started, In Progress, Completed or On Hold")
	addCmd.Flags().StringVarP(&addOpts.Notes, "notes", "n", "", "Free-form notes")

	// List command
	listOpts := &ListOptions{}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks through the active filter, followed by the summary counters.

Filters: All, High, Medium, Low, Completed
Sort orders: insertion, deadline, priority, name

Examples:
  tm list
  tm list --filter Completed
  tm list --search "quarterly" --sort deadline
  tm list --overdue`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewListCommand(r.app, *listOpts).Execute(ctx, args)
		},
	}
	listCmd.Flags().StringVarP(&listOpts.Filter, "filter", "f", "", "Filter: All, High, Medium, Low or Completed (default from TM_DISPLAY_DEFAULT_FILTER)")
	listCmd.Flags().StringVar(&listOpts.Search, "search", "", "Only tasks whose name, description or notes contain this text")
	listCmd.Flags().StringVar(&listOpts.Sort, "sort", "", "Sort order: insertion, deadline, priority or name")
	listCmd.Flags().BoolVar(&listOpts.Overdue, "overdue", false, "Only unfinished tasks past their deadline")

	// Set command
	setCmd := &cobra.Command{
		Use:   "set [id] [field] [value]",
		Short: "Change one field of a task",
		Long: `Change one field of a task.

Fields: name, description, deadline, priority, status, notes
An omitted value clears description, deadline or notes.

Examples:
  tm set 1710495000000 status "In Progress"
  tm set 1710495000000 priority low
  tm set 1710495000000 deadline +1w
  tm set 1710495000000 notes`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewSetCommand(r.app).Execute(ctx, args)
		},
	}

	// Delete command
	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Long:  "Delete a task by its ID. This operation cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewDeleteCommand(r.app).Execute(ctx, args)
		},
	}

	// Summary command
	summaryOpts := &SummaryOptions{}
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show task counters",
		Long: `Show the total, in progress and completed counters over all tasks,
with a breakdown by priority and status.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewSummaryCommand(r.app, *summaryOpts).Execute(ctx, args)
		},
	}
	summaryCmd.Flags().StringVar(&summaryOpts.Format, "format", "text", "Output format: text, json or yaml")

	// Export command
	exportOpts := &ExportOptions{}
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export all tasks",
		Long: `Export every task in the stored record form.

Supported formats:
  json - JSON array (default)
  yaml - YAML sequence
  csv  - Comma-separated values with a header row

Example:
  tm export --format csv --output tasks.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewExportCommand(r.app, *exportOpts).Execute(ctx, args)
		},
	}
	exportCmd.Flags().StringVar(&exportOpts.Format, "format", FormatJSON, "Output format: json, yaml or csv")
	exportCmd.Flags().StringVarP(&exportOpts.Output, "output", "o", "", "Write to this file instead of stdout")

	// UI command
	uiCmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive task board",
		Long: `Open the interactive task board.

Keys: 0-4 filter, j/k move, a add, s cycle status, p cycle priority,
d delete, ? help, q quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The board runs until the user quits, so it is not bounded by the command timeout
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			return NewUICommand(r.app).Execute(ctx, args)
		},
	}

	r.cmd.AddCommand(
		addCmd,
		listCmd,
		setCmd,
		deleteCmd,
		summaryCmd,
		exportCmd,
		uiCmd,
	)
}

// setup loads configuration with flag overrides, opens storage and hydrates
// the task store before any subcommand runs
func (r *RootCommand) setup() error {
	cfg, err := config.NewLoader().LoadWithOverrides(r.overridesFromFlags())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	r.config = cfg

	logging.SetDefault(logging.New(r.errOut, logging.Options{
		Level:   cfg.Application.LogLevel,
		Verbose: cfg.Application.Verbose,
		Prefix:  "tm",
	}))

	apiInstance, closer, err := r.factory(cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	r.closer = closer

	ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
	defer cancel()

	result, err := apiInstance.Load(ctx)
	if err != nil {
		return NewErrorHandler().Handle("load tasks", err)
	}

	if criterion, err := domain.ParseCriterion(cfg.Display.DefaultFilter); err == nil {
		if err := apiInstance.SetFilter(criterion); err != nil {
			return NewErrorHandler().Handle("set filter", err)
		}
	}

	r.app = NewApp(apiInstance, cfg)
	r.app.SetOutput(r.out, r.errOut)
	r.app.runUI = r.runUI

	if result.Recovered() {
		r.app.warning = errors.GetUserMessage(result.Warning)
		r.app.warnf("Warning: %s", r.app.warning)
	}
	return nil
}

// close releases the storage opened by setup
func (r *RootCommand) close() {
	if r.closer == nil {
		return
	}
	if err := r.closer.Close(); err != nil {
		logging.Default().Warn("failed to close storage", "err", err)
	}
	r.closer = nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second // Default timeout
}

// overridesFromFlags collects the global flags the user actually set
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	durationFlag := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetDuration(name)
		return &v
	}

	overrides.ConfigFile = stringFlag("config")

	// Storage configuration
	overrides.Backend = stringFlag("backend")
	overrides.DataDir = stringFlag("data-dir")
	overrides.DBFilename = stringFlag("db-filename")
	overrides.DBQueryTimeout = durationFlag("db-query-timeout")
	overrides.DBWriteTimeout = durationFlag("db-write-timeout")
	overrides.StorageKey = stringFlag("storage-key")

	// Validation configuration
	if flags.Changed("task-name-max-length") {
		v, _ := flags.GetInt("task-name-max-length")
		overrides.TaskNameMaxLength = &v
	}

	// Display configuration
	overrides.DateFormat = stringFlag("date-format")

	// Application configuration
	overrides.Timeout = durationFlag("timeout")
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}
	overrides.LogLevel = stringFlag("log-level")

	return overrides
}
