// internal/workers/enrollment/validate-applicant-fields/models.go
package validateapplicantfields

import (
	"enrollment-workers/internal/common/validation"
	"enrollment-workers/internal/models"
)

// Step selects one wizard step; nil validates every identity field.
type Input struct {
	Applicant models.ApplicantRecord `json:"applicant"`
	Step      *int                   `json:"step,omitempty"`
}

// IsValid covers the whole record; CanAdvance only the checked step.
type Output struct {
	IsValid     bool              `json:"isValid"`
	FieldErrors map[string]string `json:"fieldErrors"`
	CanAdvance  bool              `json:"canAdvance"`
	CheckedStep int               `json:"checkedStep"`
}

var inputSchema = validation.MustCompile(validation.ApplicantPayload(
	`"step": {"type": "integer", "minimum": 0, "maximum": 2}`,
))
