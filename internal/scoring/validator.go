// internal/scoring/validator.go
package scoring

import (
	"strings"

	"enrollment-workers/internal/common/clock"
	"enrollment-workers/internal/models"
)

// Wizard steps and the fields each one gates.
var stepFields = [][]string{
	{models.FieldFirstName, models.FieldLastName, models.FieldEmail, models.FieldPhone},
	{models.FieldAddress, models.FieldCity, models.FieldState, models.FieldZipCode, models.FieldDateOfBirth, models.FieldSSN},
	{},
}

// Validator performs per-field syntactic checks. A failing field never stops
// typing; it only keeps the wizard from advancing past the step it belongs to.
type Validator struct {
	clock  clock.Clock
	states map[string]struct{}
}

func NewValidator(c clock.Clock, tables Tables) *Validator {
	states := make(map[string]struct{}, len(tables.USStates))
	for _, s := range tables.USStates {
		states[s] = struct{}{}
	}
	return &Validator{clock: c, states: states}
}

// ValidateField returns the first error message for value, or "" if it is
// acceptable. Unknown field names are always acceptable.
func (v *Validator) ValidateField(field, value string) string {
	switch field {
	case models.FieldFirstName, models.FieldLastName:
		if runeLen(strings.TrimSpace(value)) < 2 {
			return "Must be at least 2 characters"
		}
		if !namePattern.MatchString(value) {
			return "Only letters, spaces, hyphens, and apostrophes allowed"
		}

	case models.FieldEmail:
		if value == "" {
			return "Email is required"
		}
		if !emailPattern.MatchString(value) {
			return "Invalid email format"
		}

	case models.FieldPhone:
		if value == "" {
			return "Phone is required"
		}
		if len(models.DigitsOnly(value)) != 10 {
			return "Must be 10 digits"
		}

	case models.FieldAddress:
		if runeLen(strings.TrimSpace(value)) < 5 {
			return "Please enter a complete street address"
		}

	case models.FieldCity:
		if runeLen(strings.TrimSpace(value)) < 2 {
			return "City is required"
		}
		if !namePattern.MatchString(value) {
			return "Invalid city name"
		}

	case models.FieldState:
		if value == "" {
			return "State is required"
		}
		if _, ok := v.states[value]; !ok {
			return "Invalid state"
		}

	case models.FieldZipCode:
		if value == "" {
			return "ZIP code is required"
		}
		if !zipPattern.MatchString(value) {
			return "Invalid ZIP code (use 5 digits)"
		}

	case models.FieldDateOfBirth:
		if value == "" {
			return "Date of birth is required"
		}
		age, ok := ageAt(value, v.clock.Now())
		if !ok {
			return "Please enter a valid date"
		}
		if age < 18 {
			return "Must be 18 or older"
		}
		if age > 120 {
			return "Please enter a valid date"
		}

	case models.FieldSSN:
		if value == "" {
			return "SSN is required"
		}
		if len(models.DigitsOnly(value)) != 9 {
			return "Must be 9 digits"
		}
	}
	return ""
}

// ValidateRecord validates every identity field and returns only the failures.
func (v *Validator) ValidateRecord(rec models.ApplicantRecord) map[string]string {
	return v.validateFields(rec, models.IdentityFields)
}

// ValidateStep validates the fields of one wizard step. Out-of-range steps
// have no fields.
func (v *Validator) ValidateStep(rec models.ApplicantRecord, step int) map[string]string {
	return v.validateFields(rec, StepFields(step))
}

// CanAdvance reports whether every field of step passes.
func (v *Validator) CanAdvance(rec models.ApplicantRecord, step int) bool {
	return len(v.ValidateStep(rec, step)) == 0
}

func (v *Validator) validateFields(rec models.ApplicantRecord, fields []string) map[string]string {
	errs := make(map[string]string)
	for _, f := range fields {
		if msg := v.ValidateField(f, rec.Field(f)); msg != "" {
			errs[f] = msg
		}
	}
	return errs
}

// StepFields returns the fields gated by a wizard step.
func StepFields(step int) []string {
	if step < 0 || step >= len(stepFields) {
		return nil
	}
	return stepFields[step]
}

// StepCount is the number of wizard steps, including the review step.
func StepCount() int { return len(stepFields) }
