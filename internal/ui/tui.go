// Package ui provides the interactive terminal board.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"task-manager/internal/api"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/services"
)

// Options configures the board.
type Options struct {
	// DateFormat is the layout used to render deadlines.
	DateFormat string
	// Timeout bounds each store operation raised from a key press.
	Timeout time.Duration
	// Warning is shown above the list until the first successful action.
	Warning string
}

// Run starts the board on the terminal and blocks until the user quits.
func Run(ctx context.Context, a api.API, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("ui requires a TTY")
	}
	program := tea.NewProgram(NewModel(ctx, a, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeHelp
)

// Model is the bubbletea model for the board. All task state lives behind
// the API; the model only tracks the cursor and input mode.
type Model struct {
	ctx     context.Context
	api     api.API
	opts    Options
	mode    mode
	cursor  int
	input   []rune
	message string
	err     error
	warning string
}

// actionMsg reports the outcome of a store operation.
type actionMsg struct {
	message string
	err     error
}

// NewModel builds a board over a loaded API.
func NewModel(ctx context.Context, a api.API, opts Options) *Model {
	if opts.DateFormat == "" {
		opts.DateFormat = "Jan 2, 2006"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	return &Model{
		ctx:     ctx,
		api:     a,
		opts:    opts,
		warning: opts.Warning,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeHelp:
			return m.updateHelp(msg)
		}
		return m.updateList(msg)
	case actionMsg:
		m.message = msg.message
		m.err = msg.err
		if msg.err == nil {
			m.warning = ""
		}
		m.clampCursor()
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.mode = modeHelp
	case "0", "1", "2", "3", "4":
		criteria := domain.Criteria()
		m.cursor = 0
		m.message = ""
		m.err = m.api.SetFilter(criteria[key[0]-'0'])
	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "k", "up":
		m.cursor--
		m.clampCursor()
	case "a":
		m.mode = modeAdd
		m.input = m.input[:0]
	case "s":
		if task, ok := m.selected(); ok {
			return m, m.setStatus(task, nextStatus(task.Status))
		}
	case "p":
		if task, ok := m.selected(); ok {
			return m, m.setPriority(task, nextPriority(task.Priority))
		}
	case "d":
		if task, ok := m.selected(); ok {
			return m, m.deleteTask(task)
		}
	}
	return m, nil
}

func (m *Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.mode = modeList
		m.input = m.input[:0]
	case tea.KeyEnter:
		name := string(m.input)
		m.mode = modeList
		m.input = m.input[:0]
		return m, m.addTask(name)
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	return m, nil
}

func (m *Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}
	m.mode = modeList
	return m, nil
}

func (m *Model) selected() (domain.Task, bool) {
	tasks := m.api.View().Tasks
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return domain.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.api.View().Tasks)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// run executes op off the update loop with the per-action timeout.
func (m *Model) run(op func(ctx context.Context) (string, error)) tea.Cmd {
	parent, timeout := m.ctx, m.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		message, err := op(ctx)
		return actionMsg{message: message, err: err}
	}
}

func (m *Model) addTask(name string) tea.Cmd {
	return m.run(func(ctx context.Context) (string, error) {
		task, created, err := m.api.CreateTask(ctx, domain.NewDraft(name))
		if err != nil {
			return "", err
		}
		if !created {
			return "Task name cannot be empty", nil
		}
		return fmt.Sprintf("Added %q", task.Name), nil
	})
}

func (m *Model) deleteTask(task domain.Task) tea.Cmd {
	return m.run(func(ctx context.Context) (string, error) {
		deleted, err := m.api.DeleteTask(ctx, task.ID)
		if err != nil {
			return "", err
		}
		if !deleted {
			return fmt.Sprintf("Task %d not found", task.ID), nil
		}
		return fmt.Sprintf("Deleted %q", task.Name), nil
	})
}

func (m *Model) setStatus(task domain.Task, status domain.Status) tea.Cmd {
	return m.run(func(ctx context.Context) (string, error) {
		update, err := domain.SetStatus(status)
		if err != nil {
			return "", err
		}
		return m.apply(ctx, task, update)
	})
}

func (m *Model) setPriority(task domain.Task, priority domain.Priority) tea.Cmd {
	return m.run(func(ctx context.Context) (string, error) {
		update, err := domain.SetPriority(priority)
		if err != nil {
			return "", err
		}
		return m.apply(ctx, task, update)
	})
}

func (m *Model) apply(ctx context.Context, task domain.Task, update domain.FieldUpdate) (string, error) {
	_, updated, err := m.api.UpdateTask(ctx, task.ID, update)
	if err != nil {
		return "", err
	}
	if !updated {
		return fmt.Sprintf("Task %d not found", task.ID), nil
	}
	return fmt.Sprintf("%s: %s = %s", task.Name, update.Field(), update.Value()), nil
}

func nextStatus(s domain.Status) domain.Status {
	all := domain.Statuses()
	for i, candidate := range all {
		if candidate == s {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func nextPriority(p domain.Priority) domain.Priority {
	all := domain.Priorities()
	for i, candidate := range all {
		if candidate == p {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func (m *Model) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.mode == modeHelp {
		writeHelp(&b)
		return b.String()
	}

	view := m.api.View()
	writeFilterBar(&b, view.Criterion)

	if m.warning != "" {
		b.WriteString(warningStyle.Render("Warning: "+m.warning) + "\n\n")
	}

	if view.IsEmpty() {
		b.WriteString("  " + titleStyle.Render(view.EmptyTitle) + "\n")
		b.WriteString("  " + faintStyle.Render(view.EmptyMessage) + "\n\n")
	} else {
		for i, task := range view.Tasks {
			b.WriteString(m.formatTask(task, i == m.cursor) + "\n")
		}
		b.WriteString("\n")
	}

	writeSummary(&b, view.Summary)

	switch {
	case m.mode == modeAdd:
		b.WriteString(fmt.Sprintf("New task name: %s_\n", string(m.input)))
		b.WriteString(faintStyle.Render("enter to save | esc to cancel") + "\n")
		return b.String()
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: "+errors.GetUserMessage(m.err)) + "\n")
	case m.message != "":
		b.WriteString(m.message + "\n")
	}

	writeFooter(&b)
	return b.String()
}

func (m *Model) formatTask(task domain.Task, selected bool) string {
	marker := " "
	if selected {
		marker = ">"
	}

	deadline := services.FormatDeadline(task, m.opts.DateFormat)
	if m.api.IsOverdue(task) {
		deadline = OverdueStyle().Render(deadline + " (overdue)")
	}

	name := task.Name
	if selected {
		name = selectedStyle.Render(name)
	}

	return fmt.Sprintf("%s %s  %s  %s  %s",
		marker,
		name,
		PriorityStyle(task.Priority).Render(task.Priority.String()),
		StatusStyle(task.Status).Render(task.Status.String()),
		deadline,
	)
}

func writeTitle(b *strings.Builder) {
	title := "Task Manager"
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeFilterBar(b *strings.Builder, active domain.Criterion) {
	parts := make([]string, 0, len(domain.Criteria()))
	for i, c := range domain.Criteria() {
		label := fmt.Sprintf("[%d] %s", i, c)
		if c == active {
			label = activeStyle.Render(label)
		}
		parts = append(parts, label)
	}
	b.WriteString(strings.Join(parts, "  ") + "\n\n")
}

func writeSummary(b *strings.Builder, s domain.Summary) {
	b.WriteString(fmt.Sprintf("Total: %d  In Progress: %d  Completed: %d\n\n", s.Total, s.InProgress, s.Completed))
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  ?            Toggle this help screen\n")
	b.WriteString("  0            Show all tasks\n")
	b.WriteString("  1            Filter by High priority\n")
	b.WriteString("  2            Filter by Medium priority\n")
	b.WriteString("  3            Filter by Low priority\n")
	b.WriteString("  4            Show completed tasks\n")
	b.WriteString("  j, k         Move the selection\n")
	b.WriteString("  a            Add a task\n")
	b.WriteString("  s            Cycle status of the selected task\n")
	b.WriteString("  p            Cycle priority of the selected task\n")
	b.WriteString("  d            Delete the selected task\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString(faintStyle.Render("a add | s status | p priority | d delete | ? help | q quit") + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
