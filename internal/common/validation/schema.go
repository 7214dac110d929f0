// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Summary joins the errors into one line for job error messages.
func (r *ValidationResult) Summary() string {
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = e.Field + ": " + e.Message
	}
	return strings.Join(parts, "; ")
}

// Schema is a compiled JSON schema for a job payload.
type Schema struct {
	schema *gojsonschema.Schema
}

func Compile(source string) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{schema: s}, nil
}

// MustCompile panics on an invalid schema. Use it for package-level schemas.
func MustCompile(source string) *Schema {
	s, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks a raw JSON document. A document that is not JSON at all
// yields a single error on the root field.
func (s *Schema) Validate(document string) *ValidationResult {
	result, err := s.schema.Validate(gojsonschema.NewStringLoader(document))
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{
			Field:   "(root)",
			Message: err.Error(),
			Code:    "INVALID_JSON",
		}}}
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   re.Field(),
			Message: re.Description(),
			Code:    strings.ToUpper(re.Type()),
		})
	}
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })

	return &ValidationResult{Valid: result.Valid(), Errors: errs}
}

// applicantProperties is shared by every payload that carries an applicant.
// Field content is checked by the scoring rules; the schema only pins types.
const applicantProperties = `{
	"type": "object",
	"properties": {
		"firstName":   {"type": "string"},
		"lastName":    {"type": "string"},
		"email":       {"type": "string"},
		"phone":       {"type": "string"},
		"address":     {"type": "string"},
		"city":        {"type": "string"},
		"state":       {"type": "string"},
		"zipCode":     {"type": "string"},
		"dateOfBirth": {"type": "string"},
		"ssn":         {"type": "string"},
		"startTime":   {"type": "integer", "minimum": 0},
		"referrer":    {"type": "string"},
		"userAgent":   {"type": "string"}
	}
}`

// ApplicantPayload builds a schema that requires an "applicant" object plus
// the extra properties given as a JSON object body (without braces).
func ApplicantPayload(extraProperties string, required ...string) string {
	props := `"applicant": ` + applicantProperties
	if extraProperties != "" {
		props += ", " + extraProperties
	}
	req := append([]string{"applicant"}, required...)
	return fmt.Sprintf(`{"type": "object", "properties": {%s}, "required": ["%s"]}`,
		props, strings.Join(req, `", "`))
}
