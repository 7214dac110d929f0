// internal/workers/enrollment/create-enrollment-record/models.go
package createenrollmentrecord

import (
	"enrollment-workers/internal/common/validation"
	"enrollment-workers/internal/models"
)

// Input carries the applicant together with the score-applicant outputs.
type Input struct {
	Applicant         models.ApplicantRecord `json:"applicant"`
	DataQuality       models.QualityReport   `json:"dataQuality"`
	LeadScore         models.LeadReport      `json:"leadScore"`
	FraudWarnings     []models.FraudWarning  `json:"fraudWarnings"`
	SubmissionBlocked bool                   `json:"submissionBlocked"`
	Priority          string                 `json:"priority"`
}

type Output struct {
	EnrollmentID     string `json:"enrollmentId"`
	EnrollmentStatus string `json:"enrollmentStatus"`
	CreatedAt        string `json:"createdAt"` // ISO 8601
	Indexed          bool   `json:"indexed"`
}

var inputSchema = validation.MustCompile(validation.ApplicantPayload(`
	"dataQuality": {
		"type": "object",
		"properties": {"score": {"type": "integer"}, "grade": {"type": "string"}},
		"required": ["score", "grade"]
	},
	"leadScore": {
		"type": "object",
		"properties": {"score": {"type": "integer"}, "grade": {"type": "string"}},
		"required": ["score", "grade"]
	},
	"fraudWarnings": {
		"type": "array",
		"items": {
			"type": "object",
			"properties": {
				"severity": {"enum": ["warning", "error"]},
				"field":    {"type": "string"},
				"message":  {"type": "string"}
			},
			"required": ["severity", "field"]
		}
	},
	"submissionBlocked": {"type": "boolean"},
	"priority": {"enum": ["hot", "warm", "cold"]}`,
	"dataQuality", "leadScore", "priority",
))
