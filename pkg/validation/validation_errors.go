package validation

import (
	"errors"
	"fmt"
	"strings"

	"job-catalog-api/internal/domain"

	"github.com/go-playground/validator/v10"
)

// EnumOptions lists accepted labels per custom enum tag, for messages only.
var EnumOptions = map[string][]string{
	"work_mode":     labels(domain.WorkModes),
	"contract_type": labels(domain.ContractTypes),
}

func labels[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	field := e.Field()
	param := e.Param()

	switch e.Tag() {
	case "required", "required_time":
		return fmt.Sprintf("%s: is required", field)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s: must be at least %s", field, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s: must be at most %s", field, param)

	case "gte":
		return fmt.Sprintf("%s: must be greater than or equal to %s", field, param)

	case "lte":
		return fmt.Sprintf("%s: must be less than or equal to %s", field, param)

	case "work_mode", "contract_type":
		return fmt.Sprintf("%s: must be one of: %s", field, strings.Join(EnumOptions[e.Tag()], ", "))

	default:
		return fmt.Sprintf("%s: failed validation (%s)", field, e.Tag())
	}
}
