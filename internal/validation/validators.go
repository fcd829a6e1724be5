package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/taskdeck/taskdeck/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validator for the priority enum
	// This should never fail in normal operation
	if err := Validate.RegisterValidation("priority", validatePriority); err != nil {
		panic(fmt.Sprintf("failed to register priority validator: %v", err))
	}
}

// validatePriority validates that a string is a valid Priority enum value
func validatePriority(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	switch models.Priority(value) {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return true
	default:
		return false
	}
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	// Trim whitespace
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidatePriority validates a Priority string value
func ValidatePriority(value string) error {
	switch models.Priority(value) {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return nil
	default:
		return fmt.Errorf("invalid priority: %s (must be 'low', 'medium', or 'high')", value)
	}
}

// ValidateTags checks tag length limits and case-insensitive uniqueness
// within a single task.
func ValidateTags(tags []string) error {
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			return fmt.Errorf("tags cannot be blank")
		}
		if len(trimmed) > models.MaxTagLength {
			return fmt.Errorf("tag %q exceeds maximum length of %d characters", trimmed, models.MaxTagLength)
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			return fmt.Errorf("duplicate tag %q (tags are case-insensitive)", trimmed)
		}
		seen[key] = true
	}
	return nil
}

// ValidateInput validates a create request before it is sent to the backend
func ValidateInput(input *models.TaskInput) error {
	input.Title = SanitizeText(input.Title)
	if input.Title == "" {
		return fmt.Errorf("title is required and cannot be empty after sanitization")
	}
	if len(input.Title) > models.MaxTitleLength {
		return fmt.Errorf("title exceeds maximum length of %d characters", models.MaxTitleLength)
	}
	if err := Validate.Struct(input); err != nil {
		return err
	}
	return ValidateTags(input.Tags)
}

// ValidatePatch validates a partial update before it is sent to the backend
func ValidatePatch(patch *models.TaskPatch) error {
	if patch.Title != nil {
		sanitized := SanitizeText(*patch.Title)
		if sanitized == "" {
			return fmt.Errorf("title cannot be empty after sanitization")
		}
		if len(sanitized) > models.MaxTitleLength {
			return fmt.Errorf("title exceeds maximum length of %d characters", models.MaxTitleLength)
		}
		patch.Title = &sanitized
	}
	if err := Validate.Struct(patch); err != nil {
		return err
	}
	return ValidateTags(patch.Tags)
}
