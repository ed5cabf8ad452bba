package validation

import (
	"task-manager/internal/config"
	"task-manager/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator honouring configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateTaskName validates a task name for creation or update
func (tv *TaskValidator) ValidateTaskName(name string) error {
	validationError := NewValidationError()
	tv.checkName(validationError, name)
	return validationError.ErrOrNil()
}

func (tv *TaskValidator) checkName(ve *ValidationError, name string) {
	trimmedName := tv.validator.TrimAndValidateString(name)

	if !tv.validator.IsNonEmptyString(trimmedName) {
		ve.AddRequiredError(domain.FieldName)
		return
	}

	if !tv.validator.IsValidTaskNameLength(trimmedName) {
		ve.AddInvalidLengthError(domain.FieldName, trimmedName, tv.validator.TaskNameMaxLength())
	}
}

// ValidateDraft validates a task draft before it is added to the store
func (tv *TaskValidator) ValidateDraft(draft domain.Draft) error {
	validationError := NewValidationError()

	tv.checkName(validationError, draft.Name)

	if !tv.validator.IsValidDate(draft.Deadline) {
		validationError.AddInvalidFormatError(domain.FieldDeadline, draft.Deadline, domain.DeadlineLayout)
	}
	if !draft.Priority.Valid() {
		validationError.AddInvalidValueError(domain.FieldPriority, draft.Priority, "unknown priority")
	}
	if !draft.Status.Valid() {
		validationError.AddInvalidValueError(domain.FieldStatus, draft.Status, "unknown status")
	}

	return validationError.ErrOrNil()
}

// ValidateUpdate validates a field update against the configured limits.
// The update constructors already reject malformed values.
func (tv *TaskValidator) ValidateUpdate(update domain.FieldUpdate) error {
	if update.Field() != domain.FieldName {
		return nil
	}
	return tv.ValidateTaskName(update.Value())
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidTaskID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// ValidateCollection checks a loaded collection: ids are unique and every
// task satisfies the domain invariants.
func (tv *TaskValidator) ValidateCollection(tasks []domain.Task) error {
	validationError := NewValidationError()
	seen := make(map[int64]struct{}, len(tasks))

	for _, task := range tasks {
		if _, dup := seen[task.ID]; dup {
			validationError.AddDuplicateError("id", task.ID)
			continue
		}
		seen[task.ID] = struct{}{}

		if !task.IsValid() {
			validationError.AddInvalidValueError("task", task.ID, "violates task invariants")
		}
	}

	return validationError.ErrOrNil()
}
