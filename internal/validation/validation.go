package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	apperrors "github.com/spec-kit/adoption-service/pkg/util"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validator accumulates per-field violations for one request payload.
// Helpers are no-ops once a field already failed its required check, so a
// missing field reports a single message instead of cascading ones.
type Validator struct {
	fields map[string][]string
}

// New returns an empty validator.
func New() *Validator {
	return &Validator{fields: make(map[string][]string)}
}

// Add records a violation message for a field.
func (v *Validator) Add(field, message string) {
	v.fields[field] = append(v.fields[field], message)
}

// Require checks that a trimmed string value is present.
func (v *Validator) Require(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, fmt.Sprintf("The %s field is required.", field))
	}
}

// MaxLen checks the value does not exceed max characters.
func (v *Validator) MaxLen(field, value string, max int) {
	if v.failed(field) {
		return
	}
	if utf8.RuneCountInString(value) > max {
		v.Add(field, fmt.Sprintf("The %s field must not be greater than %d characters.", field, max))
	}
}

// MinLen checks the value has at least min characters.
func (v *Validator) MinLen(field, value string, min int) {
	if v.failed(field) {
		return
	}
	if utf8.RuneCountInString(value) < min {
		v.Add(field, fmt.Sprintf("The %s field must be at least %d characters.", field, min))
	}
}

// Email checks basic email address structure.
func (v *Validator) Email(field, value string) {
	if v.failed(field) {
		return
	}
	if !emailPattern.MatchString(value) {
		v.Add(field, fmt.Sprintf("The %s field must be a valid email address.", field))
	}
}

// Enum checks membership in a closed value set.
func (v *Validator) Enum(field, value string, valid func(string) bool) {
	if v.failed(field) {
		return
	}
	if !valid(value) {
		v.Add(field, fmt.Sprintf("The selected %s is invalid.", field))
	}
}

// Valid reports whether no violations were recorded.
func (v *Validator) Valid() bool {
	return len(v.fields) == 0
}

// Fields exposes the accumulated violations.
func (v *Validator) Fields() map[string][]string {
	return v.fields
}

// Err returns a validation error carrying all violations, or nil.
// No partial application happens on failure; callers short-circuit.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return apperrors.NewValidationError(v.fields)
}

func (v *Validator) failed(field string) bool {
	return len(v.fields[field]) > 0
}
