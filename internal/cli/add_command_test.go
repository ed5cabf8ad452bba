package cli

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/repository/memory"
)

// storedRecords decodes what the CLI persisted under the default key
func storedRecords(t *testing.T, repo *memory.Repository) []domain.TaskRecord {
	t.Helper()
	data, found, err := repo.Get(context.Background(), config.DefaultStorageKey)
	require.NoError(t, err)
	if !found {
		return nil
	}
	var records []domain.TaskRecord
	require.NoError(t, json.Unmarshal(data, &records))
	return records
}

func TestAddCommand_Execute(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		want           domain.TaskRecord
		errorAssertion assert.ErrorAssertionFunc
		errContains    string
	}{
		{
			name: "defaults to Medium and Not Started",
			args: []string{"add", "Write report"},
			want: domain.TaskRecord{
				Name:     "Write report",
				Priority: "Medium",
				Status:   "Not Started",
			},
			errorAssertion: assert.NoError,
		},
		{
			name: "all flags",
			args: []string{"add", "Prepare slides",
				"--description", "Q2 review",
				"--priority", "high",
				"--status", "in-progress",
				"--deadline", "tomorrow",
				"--notes", "ask Sam for numbers",
			},
			want: domain.TaskRecord{
				Name:        "Prepare slides",
				Description: "Q2 review",
				Deadline:    "2024-03-16",
				Priority:    "High",
				Status:      "In Progress",
				Notes:       "ask Sam for numbers",
			},
			errorAssertion: assert.NoError,
		},
		{
			name: "name is trimmed",
			args: []string{"add", "  Call the bank  ", "--deadline", "2024-04-01"},
			want: domain.TaskRecord{
				Name:     "Call the bank",
				Deadline: "2024-04-01",
				Priority: "Medium",
				Status:   "Not Started",
			},
			errorAssertion: assert.NoError,
		},
		{
			name:           "blank name",
			args:           []string{"add", "   "},
			errorAssertion: assert.Error,
			errContains:    "failed to add task: name is required",
		},
		{
			name:           "unknown priority",
			args:           []string{"add", "Write report", "--priority", "urgent"},
			errorAssertion: assert.Error,
			errContains:    "failed to add task: invalid input for priority",
		},
		{
			name:           "unknown status",
			args:           []string{"add", "Write report", "--status", "done-ish"},
			errorAssertion: assert.Error,
			errContains:    "failed to add task: invalid input for status",
		},
		{
			name:           "unparseable deadline",
			args:           []string{"add", "Write report", "--deadline", "next week"},
			errorAssertion: assert.Error,
			errContains:    "failed to add task: invalid input for deadline",
		},
		{
			name:           "name over the configured limit",
			args:           []string{"--task-name-max-length", "5", "add", "Write report"},
			errorAssertion: assert.Error,
			errContains:    "failed to add task: name must be at most 5 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.New()
			res := runCLI(t, repo, tt.args...)

			tt.errorAssertion(t, res.err)
			if res.err != nil {
				assert.Contains(t, res.err.Error(), tt.errContains)
				assert.Empty(t, storedRecords(t, repo))
				return
			}

			records := storedRecords(t, repo)
			require.Len(t, records, 1)
			tt.want.ID = records[0].ID
			assert.Equal(t, tt.want, records[0])
			assert.Equal(t, "Added task "+firstID+": "+tt.want.Name+"\n", res.out)
		})
	}
}

func TestAddCommand_IDsIncrease(t *testing.T) {
	repo := memory.New()
	mustRun(t, repo, "add", "One")
	out := mustRun(t, repo, "add", "Two")

	assert.Equal(t, "Added task "+secondID+": Two\n", out)
	records := storedRecords(t, repo)
	require.Len(t, records, 2)
	assert.Less(t, records[0].ID, records[1].ID)
}

func TestAddCommand_StorageFailure(t *testing.T) {
	repo := memory.New()
	repo.FailWrites(errors.New("disk full"))

	res := runCLI(t, repo, "add", "Write report")

	require.Error(t, res.err)
	assert.Equal(t, "failed to add task: A storage error occurred. Please try again.", res.err.Error())
	assert.Contains(t, res.errOut, "command failed")
}
