package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"task-manager/internal/config"
	"task-manager/internal/domain"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidTaskNameLength checks the trimmed name against the configured
// maximum. A maximum of 0 means names are unbounded.
func (v *Validator) IsValidTaskNameLength(name string) bool {
	limit := v.TaskNameMaxLength()
	return limit == 0 || utf8.RuneCountInString(strings.TrimSpace(name)) <= limit
}

// IsValidDate checks that s is empty or an ISO calendar date
func (v *Validator) IsValidDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse(domain.DeadlineLayout, s)
	return err == nil
}

// IsValidTaskID checks if a task ID is valid (positive)
func (v *Validator) IsValidTaskID(id int64) bool {
	return id > 0
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// TaskNameMaxLength returns the configured maximum task name length, 0 when unbounded
func (v *Validator) TaskNameMaxLength() int {
	if v.config != nil && v.config.Validation.TaskNameMaxLength > 0 {
		return v.config.Validation.TaskNameMaxLength
	}
	return 0
}
