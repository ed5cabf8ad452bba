package sqlite

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScanner implements the Scanner interface for testing
type TestScanner struct {
	data []interface{}
	err  error
}

func (ts *TestScanner) Scan(dest ...interface{}) error {
	if ts.err != nil {
		return ts.err
	}

	if len(dest) != len(ts.data) {
		return errors.New("mismatch in number of destinations")
	}

	for i, d := range dest {
		switch v := d.(type) {
		case *string:
			*v = ts.data[i].(string)
		case *[]byte:
			*v = ts.data[i].([]byte)
		}
	}

	return nil
}

func TestScanEntry(t *testing.T) {
	tests := []struct {
		name        string
		scanner     *TestScanner
		expected    *Entry
		expectError bool
	}{
		{
			name: "Valid entry",
			scanner: &TestScanner{
				data: []interface{}{"professionalTasks", []byte(`[]`), "2026-10-15T09:00:00Z"},
			},
			expected: &Entry{
				Key:       "professionalTasks",
				Value:     []byte(`[]`),
				UpdatedAt: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "Invalid updated_at",
			scanner: &TestScanner{
				data: []interface{}{"k", []byte(`[]`), "yesterday"},
			},
			expectError: true,
		},
		{
			name:        "Scanner error",
			scanner:     &TestScanner{err: sql.ErrNoRows},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanEntry(tt.scanner)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected.Key, result.Key)
			assert.Equal(t, tt.expected.Value, result.Value)
			assert.True(t, tt.expected.UpdatedAt.Equal(result.UpdatedAt))
		})
	}
}
