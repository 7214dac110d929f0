// internal/workers/assistant/reset-chat-session/handler.go
package resetchatsession

import (
	"context"
	"encoding/json"

	"enrollment-workers/internal/assistant"
	"enrollment-workers/internal/assistant/sessionstore"
	"enrollment-workers/internal/common/camunda"
	"enrollment-workers/internal/common/errors"
	"enrollment-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "reset-chat-session"
)

type Handler struct {
	config    *Config
	assistant *assistant.Assistant
	sessions  *sessionstore.Store
	jobs      *camunda.JobReporter
	logger    logger.Logger
}

func NewHandler(config *Config, a *assistant.Assistant, sessions *sessionstore.Store, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		assistant: a,
		sessions:  sessions,
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
		h.jobs.Fail(client, job, errors.NewBusinessRuleError("invalid reset payload", result.Summary()))
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.jobs.Fail(client, job, errors.NewBusinessRuleError("invalid reset payload", err.Error()))
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

// execute drops the stored conversation and seeds a fresh one holding only
// the welcome message, so the next chat turn does not greet twice.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewTimeoutError(TaskType, err)
	}

	existed, err := h.sessions.Delete(ctx, input.SessionID)
	if err != nil {
		return nil, errors.NewSessionStoreFailedError(err)
	}

	sess, welcome := h.assistant.Start(input.SessionID, input.UserID, input.Step)
	if err := h.sessions.Save(ctx, sess); err != nil {
		return nil, errors.NewSessionStoreFailedError(err)
	}

	h.logger.Info("chat session reset", map[string]interface{}{
		"sessionId": input.SessionID,
		"cleared":   existed,
	})

	return &Output{
		SessionID: input.SessionID,
		Cleared:   existed,
		Welcome:   welcome,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
