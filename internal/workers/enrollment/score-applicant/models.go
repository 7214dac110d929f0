// internal/workers/enrollment/score-applicant/models.go
package scoreapplicant

import (
	"enrollment-workers/internal/common/validation"
	"enrollment-workers/internal/models"
)

type Input struct {
	Applicant models.ApplicantRecord `json:"applicant"`
}

type Output struct {
	DataQuality       models.QualityReport  `json:"dataQuality"`
	LeadScore         models.LeadReport     `json:"leadScore"`
	FraudWarnings     []models.FraudWarning `json:"fraudWarnings"`
	SubmissionBlocked bool                  `json:"submissionBlocked"`
	Priority          string                `json:"priority"`
}

var inputSchema = validation.MustCompile(validation.ApplicantPayload(""))
