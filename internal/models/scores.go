// internal/models/scores.go
package models

// Severity of a fraud warning. Only SeverityError blocks submission.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// FraudWarning is one finding of the fraud rules.
type FraudWarning struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Field    string   `json:"field"`
}

// QualityReport is the data-quality grade of an applicant record.
type QualityReport struct {
	Score            int      `json:"score"`
	Grade            string   `json:"grade"`
	Completeness     int      `json:"completeness"`
	Issues           []string `json:"issues"`
	Suggestions      []string `json:"suggestions"`
	MissingFields    []string `json:"missingFields"`
	SuspiciousFields []string `json:"suspiciousFields"`
}

// Factor is a single weighted contribution to a lead score.
type Factor struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Max    int    `json:"max"`
	Status string `json:"status"`
}

// LeadReport is the lead score with its factor breakdown.
type LeadReport struct {
	Score          int      `json:"score"`
	Grade          string   `json:"grade"`
	Factors        []Factor `json:"factors"`
	Recommendation string   `json:"recommendation"`
}

// Assessment bundles every scoring pass over one record snapshot.
type Assessment struct {
	DataQuality       QualityReport  `json:"dataQuality"`
	Lead              LeadReport     `json:"leadScore"`
	FraudWarnings     []FraudWarning `json:"fraudWarnings"`
	SubmissionBlocked bool           `json:"submissionBlocked"`
}
