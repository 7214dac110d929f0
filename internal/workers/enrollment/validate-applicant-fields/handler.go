// internal/workers/enrollment/validate-applicant-fields/handler.go
package validateapplicantfields

import (
	"context"
	"encoding/json"
	"fmt"

	"enrollment-workers/internal/common/camunda"
	"enrollment-workers/internal/common/errors"
	"enrollment-workers/internal/common/logger"
	"enrollment-workers/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "validate-applicant-fields"

	// allFields is reported as CheckedStep when no step was requested.
	allFields = -1
)

type Handler struct {
	config    *Config
	validator *scoring.Validator
	jobs      *camunda.JobReporter
	logger    logger.Logger
}

func NewHandler(config *Config, validator *scoring.Validator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		validator: validator,
		jobs:      camunda.NewJobReporter(TaskType, log),
		logger:    log,
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

	recordErrors := h.validator.ValidateRecord(input.Applicant)
	fieldErrors := recordErrors
	step := allFields
	if input.Step != nil {
		step = *input.Step
		fieldErrors = h.validator.ValidateStep(input.Applicant, step)
	}

	h.logger.Debug("applicant validated", map[string]interface{}{
		"step":        step,
		"fieldErrors": len(fieldErrors),
	})

	return &Output{
		IsValid:     len(recordErrors) == 0,
		FieldErrors: fieldErrors,
		CanAdvance:  len(fieldErrors) == 0,
		CheckedStep: step,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
