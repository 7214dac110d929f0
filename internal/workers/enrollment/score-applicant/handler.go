// internal/workers/enrollment/score-applicant/handler.go
package scoreapplicant

import (
	"context"
	"encoding/json"
	"fmt"

	"enrollment-workers/internal/common/camunda"
	"enrollment-workers/internal/common/errors"
	"enrollment-workers/internal/common/logger"
	"enrollment-workers/internal/common/metrics"
	"enrollment-workers/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "score-applicant"
)

type Handler struct {
	config *Config
	engine *scoring.Engine
	jobs   *camunda.JobReporter
	logger logger.Logger
}

func NewHandler(config *Config, engine *scoring.Engine, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		engine: engine,
		jobs:   camunda.NewJobReporter(TaskType, log),
		logger: log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	if result := inputSchema.Validate(job.Variables); !result.Valid {
		h.jobs.Fail(client, job, errors.NewApplicantValidationFailedError(result.Summary()))
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.jobs.Fail(client, job, errors.NewApplicantValidationFailedError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.jobs.Fail(client, job, err)
		return
	}

	h.jobs.Complete(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewTimeoutError(TaskType, err)
	}

	assessment := h.engine.Evaluate(input.Applicant)
	priority := scoring.LeadPriority(assessment.Lead.Grade)

	metrics.EnrollmentScores.WithLabelValues("quality", assessment.DataQuality.Grade).Inc()
	metrics.EnrollmentScores.WithLabelValues("lead", assessment.Lead.Grade).Inc()
	for _, w := range assessment.FraudWarnings {
		metrics.FraudWarnings.WithLabelValues(w.Field, string(w.Severity)).Inc()
	}

	h.logger.Info("applicant scored", map[string]interface{}{
		"qualityScore":      assessment.DataQuality.Score,
		"qualityGrade":      assessment.DataQuality.Grade,
		"leadScore":         assessment.Lead.Score,
		"leadGrade":         assessment.Lead.Grade,
		"fraudWarnings":     len(assessment.FraudWarnings),
		"submissionBlocked": assessment.SubmissionBlocked,
		"priority":          priority,
	})

	return &Output{
		DataQuality:       assessment.DataQuality,
		LeadScore:         assessment.Lead,
		FraudWarnings:     assessment.FraudWarnings,
		SubmissionBlocked: assessment.SubmissionBlocked,
		Priority:          priority,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
