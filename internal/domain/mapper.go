package domain

import (
	"fmt"
)

// TaskRecord is the persisted shape of a task. Field names and enumerated
// spellings are part of the storage format.
type TaskRecord struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Deadline    string `json:"deadline" yaml:"deadline"`
	Priority    string `json:"priority" yaml:"priority"`
	Status      string `json:"status" yaml:"status"`
	Notes       string `json:"notes" yaml:"notes"`
}

// TaskMapper handles conversion between domain tasks and persisted records.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToRecord converts a domain Task to its persisted record.
func (m *TaskMapper) ToRecord(task Task) TaskRecord {
	return TaskRecord{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Deadline:    task.Deadline,
		Priority:    task.Priority.String(),
		Status:      task.Status.String(),
		Notes:       task.Notes,
	}
}

// FromRecord converts a persisted record to a domain Task. Records with
// unknown enumerated values are rejected.
func (m *TaskMapper) FromRecord(record TaskRecord) (Task, error) {
	priority, err := ParsePriority(record.Priority)
	if err != nil {
		return Task{}, fmt.Errorf("task %d: %w", record.ID, err)
	}
	status, err := ParseStatus(record.Status)
	if err != nil {
		return Task{}, fmt.Errorf("task %d: %w", record.ID, err)
	}
	return Task{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		Deadline:    record.Deadline,
		Priority:    priority,
		Status:      status,
		Notes:       record.Notes,
	}, nil
}

// ToRecordSlice converts a slice of domain Tasks to records.
func (m *TaskMapper) ToRecordSlice(tasks []Task) []TaskRecord {
	records := make([]TaskRecord, len(tasks))
	for i, task := range tasks {
		records[i] = m.ToRecord(task)
	}
	return records
}

// FromRecordSlice converts a slice of records to domain Tasks.
func (m *TaskMapper) FromRecordSlice(records []TaskRecord) ([]Task, error) {
	tasks := make([]Task, len(records))
	for i, record := range records {
		task, err := m.FromRecord(record)
		if err != nil {
			return nil, err
		}
		tasks[i] = task
	}
	return tasks, nil
}
