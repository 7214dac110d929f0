// internal/scoring/engine.go
package scoring

import (
	"enrollment-workers/internal/common/clock"
	"enrollment-workers/internal/models"
)

// Engine runs every applicant check against one record snapshot.
type Engine struct {
	Validator *Validator
	Quality   *QualityScorer
	Lead      *LeadScorer
	Fraud     *FraudDetector
}

// NewEngine wires all scorers to the same clock and tables.
func NewEngine(c clock.Clock, tables Tables) *Engine {
	return &Engine{
		Validator: NewValidator(c, tables),
		Quality:   NewQualityScorer(c, tables),
		Lead:      NewLeadScorer(c, tables),
		Fraud:     NewFraudDetector(c, tables),
	}
}

// Evaluate scores rec. The lead score consumes the data-quality report, so
// quality always runs first.
func (e *Engine) Evaluate(rec models.ApplicantRecord) models.Assessment {
	quality := e.Quality.Score(rec)
	warnings := e.Fraud.Detect(rec)
	return models.Assessment{
		DataQuality:       quality,
		Lead:              e.Lead.Score(rec, quality),
		FraudWarnings:     warnings,
		SubmissionBlocked: Blocked(warnings),
	}
}
