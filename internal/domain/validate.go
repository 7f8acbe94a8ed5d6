package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError identifies the rejected field so callers can attach the
// message to the right input instead of matching on strings.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	rwandanIntl  = regexp.MustCompile(`^\+?250\d{9}$`)
	rwandanLocal = regexp.MustCompile(`^0\d{9}$`)
)

// NormalizePhone strips separators and rewrites local 07x numbers to the
// international +250 form.
func NormalizePhone(phone string) string {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(phone)
	if strings.HasPrefix(cleaned, "07") {
		cleaned = "+250" + cleaned[1:]
	}
	return cleaned
}

// ValidatePhone accepts Rwandan numbers in international or local form.
func ValidatePhone(phone string) *ValidationError {
	if phone == "" {
		return &ValidationError{Field: "phone", Message: "phone number is required"}
	}
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(phone)
	if !rwandanIntl.MatchString(cleaned) && !rwandanLocal.MatchString(cleaned) {
		return &ValidationError{Field: "phone", Message: "enter a valid Rwandan number (e.g. +250781234567)"}
	}
	return nil
}

// ValidateFullName requires at least a first and last name.
func ValidateFullName(name string) *ValidationError {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 3 {
		return &ValidationError{Field: "full_name", Message: "full name is required (min 3 characters)"}
	}
	if len(strings.Fields(trimmed)) < 2 {
		return &ValidationError{Field: "full_name", Message: "enter first and last name"}
	}
	return nil
}

// ValidateExpenseDraft checks the fields that have no defaults.
func ValidateExpenseDraft(amount int64, category string) *ValidationError {
	if amount <= 0 {
		return &ValidationError{Field: "amount", Message: "amount must be positive"}
	}
	if category == "" {
		return &ValidationError{Field: "category", Message: "category is required"}
	}
	for _, c := range ExpenseCategories {
		if c == category {
			return nil
		}
	}
	return &ValidationError{Field: "category", Message: "unknown category " + category}
}
