package usecase

import (
	"fmt"
	"strings"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}
	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	}
	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	}

	return errors
}

func ValidateUpdateLeadInput(input UpdateLeadInput) []ValidationError {
	var errors []ValidationError

	if input.Status == nil && input.Notes == nil {
		errors = append(errors, ValidationError{"body", "no fields to update"})
		return errors
	}
	if input.Status != nil && !entity.IsValidStatus(*input.Status) {
		errors = append(errors, ValidationError{"status", "must be one of the pipeline statuses"})
	}

	return errors
}

// validationFailure reports summary to the caller and keeps the per-field
// errors in Details.
func validationFailure(summary string, errs []ValidationError) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: summary,
		Details: errs,
	}
}
