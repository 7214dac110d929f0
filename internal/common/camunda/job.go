// internal/common/camunda/job.go
package camunda

import (
	"context"

	"enrollment-workers/internal/common/errors"
	"enrollment-workers/internal/common/logger"
	"enrollment-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// JobReporter completes or fails jobs on behalf of a handler.
type JobReporter struct {
	taskType string
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewJobReporter(taskType string, log logger.Logger) *JobReporter {
	return &JobReporter{
		taskType: taskType,
		errors:   errors.NewErrorHandler(log),
		logger:   log,
	}
}

func (r *JobReporter) Complete(client worker.JobClient, job entities.Job, output interface{}) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		r.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		r.Fail(client, job, errors.NewBusinessRuleError("output not serializable", err.Error()))
		return
	}

	if _, err := cmd.Send(context.Background()); err != nil {
		r.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(r.taskType).Inc()
	r.logger.Info("job completed successfully", map[string]interface{}{
		"jobKey": job.Key,
	})
}

// Fail hands err to the ErrorHandler, which retries or throws according to
// the error code.
func (r *JobReporter) Fail(client worker.JobClient, job entities.Job, err error) {
	stdErr := errors.Normalize(err)
	metrics.WorkerJobsFailed.WithLabelValues(r.taskType, string(stdErr.Code)).Inc()
	r.errors.HandleJobError(context.Background(), client, job, stdErr)
}
