package cli

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"task-manager/internal/domain"
	"task-manager/internal/repository/memory"
)

func TestExportCommand_Formats(t *testing.T) {
	repo := seedTasks(t)
	want := storedRecords(t, repo)
	require.Len(t, want, 3)

	t.Run("json by default", func(t *testing.T) {
		out := mustRun(t, repo, "export")
		var got []domain.TaskRecord
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, want, got)
	})

	t.Run("yaml", func(t *testing.T) {
		out := mustRun(t, repo, "export", "--format", "yaml")
		var got []domain.TaskRecord
		require.NoError(t, yaml.Unmarshal([]byte(out), &got))
		assert.Equal(t, want, got)
		assert.Contains(t, out, "status: In Progress")
	})

	t.Run("csv", func(t *testing.T) {
		out := mustRun(t, repo, "export", "--format", "csv")
		rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 4)
		assert.Equal(t, []string{"id", "name", "description", "deadline", "priority", "status", "notes"}, rows[0])
		assert.Equal(t, []string{firstID, "Write report", "", "2024-03-10", "High", "Not Started", ""}, rows[1])
		assert.Equal(t, "quarterly numbers", rows[2][6])
	})
}

func TestExportCommand_EmptyStore(t *testing.T) {
	repo := memory.New()

	assert.Equal(t, "[]\n", mustRun(t, repo, "export"))
	assert.Equal(t, "id,name,description,deadline,priority,status,notes\n", mustRun(t, repo, "export", "--format", "csv"))
}

func TestExportCommand_ToFile(t *testing.T) {
	repo := seedTasks(t)
	path := filepath.Join(t.TempDir(), "tasks.json")

	out := mustRun(t, repo, "export", "--output", path)

	assert.Equal(t, "Exported 3 tasks to "+path+"\n", out)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []domain.TaskRecord
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Len(t, got, 3)
}

func TestExportCommand_InvalidInput(t *testing.T) {
	repo := memory.New()

	t.Run("unknown format", func(t *testing.T) {
		res := runCLI(t, repo, "export", "--format", "xml")
		require.Error(t, res.err)
		assert.Equal(t, "failed to export tasks: invalid input for format: unsupported format", res.err.Error())
	})

	t.Run("unwritable output", func(t *testing.T) {
		res := runCLI(t, repo, "export", "--output", filepath.Join(t.TempDir(), "missing", "tasks.json"))
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), "failed to export tasks")
	})
}
