package validation

import (
	"sort"
	"strings"

	apperrors "orus-accounts/internal/errors"

	"github.com/shopspring/decimal"
)

// Validator collects field errors
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records the first error for a field
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// RequiredString checks that a string is present and not blank
func (v *Validator) RequiredString(field string, value *string) {
	if value == nil {
		v.AddError(field, "must not be null")
		return
	}
	v.Check(strings.TrimSpace(*value) != "", field, "must not be empty")
}

// RequiredDecimal checks that a decimal is present
func (v *Validator) RequiredDecimal(field string, value *decimal.Decimal) {
	v.Check(value != nil, field, "must not be null")
}

// Err converts the collected errors into a single domain error, or nil.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}

	fields := make([]string, 0, len(v.Errors))
	for field := range v.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+v.Errors[field])
	}
	return apperrors.ErrValidation.WithMessage("%s", strings.Join(parts, "; "))
}
