package domain

import (
	"strings"

	"task-manager/internal/errors"
)

// Field names accepted by ParseFieldUpdate.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldDeadline    = "deadline"
	FieldPriority    = "priority"
	FieldStatus      = "status"
	FieldNotes       = "notes"
)

// Fields lists the editable task fields.
func Fields() []string {
	return []string{FieldName, FieldDescription, FieldDeadline, FieldPriority, FieldStatus, FieldNotes}
}

// FieldUpdate replaces exactly one field of a task. The set of implementations
// is closed; each carries a value already constrained to its field's domain.
type FieldUpdate interface {
	Field() string
	Value() string
	apply(t *Task)
}

// Apply returns a copy of t with the update applied.
func Apply(t Task, u FieldUpdate) Task {
	u.apply(&t)
	return t
}

type setName struct{ name string }

// SetName renames a task. Whitespace-only names are rejected; others are
// kept as entered.
func SetName(name string) (FieldUpdate, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.NewInvalidInputError(FieldName, name, "name cannot be empty")
	}
	return setName{name: name}, nil
}

func (u setName) Field() string { return FieldName }
func (u setName) Value() string { return u.name }
func (u setName) apply(t *Task) { t.Name = u.name }

type setDescription struct{ description string }

// SetDescription replaces the description. Any text is allowed.
func SetDescription(description string) FieldUpdate {
	return setDescription{description: description}
}

func (u setDescription) Field() string { return FieldDescription }
func (u setDescription) Value() string { return u.description }
func (u setDescription) apply(t *Task) { t.Description = u.description }

type setDeadline struct{ deadline string }

// SetDeadline sets or clears (empty string) the deadline.
func SetDeadline(deadline string) (FieldUpdate, error) {
	parsed, err := ParseDeadline(deadline)
	if err != nil {
		return nil, err
	}
	return setDeadline{deadline: parsed}, nil
}

func (u setDeadline) Field() string { return FieldDeadline }
func (u setDeadline) Value() string { return u.deadline }
func (u setDeadline) apply(t *Task) { t.Deadline = u.deadline }

type setPriority struct{ priority Priority }

// SetPriority changes the priority tier.
func SetPriority(p Priority) (FieldUpdate, error) {
	if !p.Valid() {
		return nil, errors.NewInvalidInputError(FieldPriority, int(p), "not an enumerated priority")
	}
	return setPriority{priority: p}, nil
}

func (u setPriority) Field() string { return FieldPriority }
func (u setPriority) Value() string { return u.priority.String() }
func (u setPriority) apply(t *Task) { t.Priority = u.priority }

type setStatus struct{ status Status }

// SetStatus changes the status. Transitions are unconstrained.
func SetStatus(s Status) (FieldUpdate, error) {
	if !s.Valid() {
		return nil, errors.NewInvalidInputError(FieldStatus, int(s), "not an enumerated status")
	}
	return setStatus{status: s}, nil
}

func (u setStatus) Field() string { return FieldStatus }
func (u setStatus) Value() string { return u.status.String() }
func (u setStatus) apply(t *Task) { t.Status = u.status }

type setNotes struct{ notes string }

// SetNotes replaces the notes. Any text is allowed.
func SetNotes(notes string) FieldUpdate {
	return setNotes{notes: notes}
}

func (u setNotes) Field() string { return FieldNotes }
func (u setNotes) Value() string { return u.notes }
func (u setNotes) apply(t *Task) { t.Notes = u.notes }

// ParseFieldUpdate builds a typed update from a field name and its textual
// value, as entered on the command line.
func ParseFieldUpdate(field, value string) (FieldUpdate, error) {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case FieldName:
		return SetName(value)
	case FieldDescription:
		return SetDescription(value), nil
	case FieldDeadline:
		return SetDeadline(value)
	case FieldPriority:
		p, err := ParsePriority(value)
		if err != nil {
			return nil, err
		}
		return SetPriority(p)
	case FieldStatus:
		s, err := ParseStatus(value)
		if err != nil {
			return nil, err
		}
		return SetStatus(s)
	case FieldNotes:
		return SetNotes(value), nil
	default:
		return nil, errors.NewInvalidInputError("field", field, "must be one of "+strings.Join(Fields(), ", "))
	}
}
