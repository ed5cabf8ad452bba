package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/repository/memory"
)

func TestSetCommand_Execute(t *testing.T) {
	base := domain.TaskRecord{
		Name:        "Write report",
		Description: "for the board",
		Deadline:    "2024-03-20",
		Priority:    "High",
		Status:      "Not Started",
		Notes:       "draft in drive",
	}

	tests := []struct {
		name           string
		args           []string
		mutate         func(r *domain.TaskRecord)
		want           string
		errorAssertion assert.ErrorAssertionFunc
		errContains    string
	}{
		{
			name:           "status with spaces",
			args:           []string{"set", firstID, "status", "In", "Progress"},
			mutate:         func(r *domain.TaskRecord) { r.Status = "In Progress" },
			want:           `Updated task ` + firstID + `: status = "In Progress"` + "\n",
			errorAssertion: assert.NoError,
		},
		{
			name:           "priority is case-insensitive",
			args:           []string{"set", firstID, "priority", "low"},
			mutate:         func(r *domain.TaskRecord) { r.Priority = "Low" },
			want:           `Updated task ` + firstID + `: priority = "Low"` + "\n",
			errorAssertion: assert.NoError,
		},
		{
			name:           "deadline shorthand",
			args:           []string{"set", firstID, "deadline", "+1w"},
			mutate:         func(r *domain.TaskRecord) { r.Deadline = "2024-03-22" },
			want:           `Updated task ` + firstID + `: deadline = "2024-03-22"` + "\n",
			errorAssertion: assert.NoError,
		},
		{
			name:           "omitted value clears notes",
			args:           []string{"set", firstID, "notes"},
			mutate:         func(r *domain.TaskRecord) { r.Notes = "" },
			want:           `Updated task ` + firstID + `: notes = ""` + "\n",
			errorAssertion: assert.NoError,
		},
		{
			name:           "rename",
			args:           []string{"set", firstID, "name", "Write", "final", "report"},
			mutate:         func(r *domain.TaskRecord) { r.Name = "Write final report" },
			want:           `Updated task ` + firstID + `: name = "Write final report"` + "\n",
			errorAssertion: assert.NoError,
		},
		{
			name:           "blank name is rejected",
			args:           []string{"set", firstID, "name", " "},
			errorAssertion: assert.Error,
			errContains:    "failed to update task",
		},
		{
			name:           "unknown field",
			args:           []string{"set", firstID, "colour", "blue"},
			errorAssertion: assert.Error,
			errContains:    "invalid input for field: must be one of name, description, deadline, priority, status, notes",
		},
		{
			name:           "unknown status",
			args:           []string{"set", firstID, "status", "Abandoned"},
			errorAssertion: assert.Error,
			errContains:    "invalid input for status",
		},
		{
			name:           "missing task",
			args:           []string{"set", "42", "status", "Completed"},
			errorAssertion: assert.Error,
			errContains:    "failed to update task: task not found: 42",
		},
		{
			name:           "missing field",
			args:           []string{"set", firstID},
			errorAssertion: assert.Error,
			errContains:    "requires at least 2 arg(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.New()
			mustRun(t, repo, "add", base.Name,
				"--description", base.Description,
				"--deadline", base.Deadline,
				"--priority", base.Priority,
				"--notes", base.Notes,
			)

			res := runCLI(t, repo, tt.args...)
			tt.errorAssertion(t, res.err)

			want := base
			if res.err != nil {
				assert.Contains(t, res.err.Error(), tt.errContains)
			} else {
				assert.Equal(t, tt.want, res.out)
				tt.mutate(&want)
			}

			records := storedRecords(t, repo)
			require.Len(t, records, 1)
			want.ID = records[0].ID
			assert.Equal(t, want, records[0])
		})
	}
}

func TestSetCommand_UsageError(t *testing.T) {
	repo := memory.New()
	a, closer, err := memoryFactory(repo)(config.NewConfig())
	require.NoError(t, err)
	defer closer.Close()

	err = NewSetCommand(NewApp(a, config.NewConfig())).Execute(context.Background(), []string{firstID})

	require.Error(t, err)
	assert.Equal(t, "failed to update task: invalid input for command: usage: tm set ID FIELD [VALUE]", err.Error())
}
