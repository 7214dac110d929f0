// internal/models/enrollment.go
package models

// Enrollment statuses.
const (
	EnrollmentStatusSubmitted = "submitted"
	EnrollmentStatusReview    = "needs_review"
)

// Lead priorities derived from the lead grade.
const (
	PriorityHot  = "hot"
	PriorityWarm = "warm"
	PriorityCold = "cold"
)

// Enrollment is the persisted form of a submitted applicant record.
type Enrollment struct {
	ID               string          `json:"id"`
	Applicant        ApplicantRecord `json:"applicant"`
	DataQualityScore int             `json:"dataQualityScore"`
	DataQualityGrade string          `json:"dataQualityGrade"`
	LeadScore        int             `json:"leadScore"`
	LeadGrade        string          `json:"leadGrade"`
	Priority         string          `json:"priority"`
	FraudWarnings    []FraudWarning  `json:"fraudWarnings"`
	Status           string          `json:"status"`
	CreatedAt        string          `json:"createdAt"`
}

// LeadDocument is the search-index projection of an enrollment. It carries no
// SSN or date of birth.
type LeadDocument struct {
	EnrollmentID     string `json:"enrollmentId"`
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	City             string `json:"city"`
	State            string `json:"state"`
	ZipCode          string `json:"zipCode"`
	LeadScore        int    `json:"leadScore"`
	LeadGrade        string `json:"leadGrade"`
	DataQualityScore int    `json:"dataQualityScore"`
	Priority         string `json:"priority"`
	Referrer         string `json:"referrer,omitempty"`
	CreatedAt        string `json:"createdAt"`
}
