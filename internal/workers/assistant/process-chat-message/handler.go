// internal/workers/assistant/process-chat-message/handler.go
package processchatmessage

import (
	"context"
	"encoding/json"
	"strings"

	"enrollment-workers/internal/assistant"
	"enrollment-workers/internal/assistant/sessionstore"
	"enrollment-workers/internal/common/camunda"
	"enrollment-workers/internal/common/errors"
	"enrollment-workers/internal/common/logger"
	"enrollment-workers/internal/common/metrics"
	"enrollment-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "process-chat-message"
)

// ChatLogger records per-turn analytics. It is satisfied by
// *database.ChatLogStore.
type ChatLogger interface {
	Append(ctx context.Context, entry models.ChatLog) (string, error)
}

type Handler struct {
	config    *Config
	assistant *assistant.Assistant
	sessions  *sessionstore.Store
	chatLogs  ChatLogger
	jobs      *camunda.JobReporter
	logger    logger.Logger
}

// NewHandler accepts a nil chatLogs; turns are then not logged.
func NewHandler(config *Config, a *assistant.Assistant, sessions *sessionstore.Store, chatLogs ChatLogger, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		assistant: a,
		sessions:  sessions,
		chatLogs:  chatLogs,
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
		h.jobs.Fail(client, job, errors.NewBusinessRuleError("invalid chat payload", result.Summary()))
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.jobs.Fail(client, job, errors.NewBusinessRuleError("invalid chat payload", err.Error()))
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

	sess, found, err := h.sessions.Load(ctx, input.SessionID)
	if err != nil {
		return nil, errors.NewSessionStoreFailedError(err)
	}

	output := &Output{SessionID: input.SessionID, NewSession: !found}

	var welcome models.ChatMessage
	if !found {
		sess, welcome = h.assistant.Start(input.SessionID, input.UserID, 0)
		output.Welcome = &welcome
	}
	if input.Step != nil {
		sess.Step = *input.Step
	}
	if sess.UserID == "" {
		sess.UserID = input.UserID
	}

	if strings.TrimSpace(input.Message) == "" {
		return h.idle(ctx, sess, welcome, output)
	}

	started := h.assistant.Now()
	result, err := h.assistant.Respond(sess, input.Message)
	if err != nil {
		return nil, errors.NewEmptyChatMessageError(input.SessionID)
	}

	if err := h.sessions.Save(ctx, result.Session); err != nil {
		return nil, errors.NewSessionStoreFailedError(err)
	}

	metrics.ChatIntents.WithLabelValues(result.Intent.Type).Inc()
	if result.Escalation != nil {
		metrics.ChatEscalations.Inc()
		output.Escalated = true
		output.EscalationReason = result.EscalationReason
		output.EscalationMessage = result.Escalation
	}

	output.Reply = result.Bot
	output.Quality = result.Quality
	output.Intent = result.Intent.Type
	output.Sentiment = result.Sentiment.Sentiment
	output.TypingDelayMs = result.TypingDelay.Milliseconds()
	output.ChatLogID = h.logTurn(ctx, input, sess, result, h.assistant.Now().Sub(started).Milliseconds())

	h.logger.Info("chat message processed", map[string]interface{}{
		"sessionId": input.SessionID,
		"intent":    output.Intent,
		"sentiment": output.Sentiment,
		"quality":   output.Quality,
		"escalated": output.Escalated,
	})
	return output, nil
}

// idle handles a turn without user text: a fresh session gets its welcome,
// a quiet one may get a nudge, anything else is rejected.
func (h *Handler) idle(ctx context.Context, sess assistant.Session, welcome models.ChatMessage, output *Output) (*Output, error) {
	reply := welcome
	if output.NewSession {
		output.Welcome = nil
	} else {
		next, nudge, ok := h.assistant.Nudge(sess)
		if !ok {
			return nil, errors.NewEmptyChatMessageError(sess.ID)
		}
		sess, reply = next, nudge
	}

	if err := h.sessions.Save(ctx, sess); err != nil {
		return nil, errors.NewSessionStoreFailedError(err)
	}

	output.Reply = reply
	output.Quality = assistant.ConversationQuality(sess)
	output.TypingDelayMs = h.assistant.TypingDelay(reply.Text).Milliseconds()
	return output, nil
}

// logTurn is best effort and returns the chat log id, or "" if nothing was
// written. Anonymous sessions are not logged. The mood scores are the ones
// the user brought into the turn, before this message was applied.
func (h *Handler) logTurn(ctx context.Context, input *Input, before assistant.Session, result assistant.Result, elapsedMs int64) string {
	if h.chatLogs == nil || before.UserID == "" {
		return ""
	}
	s := result.Session
	id, err := h.chatLogs.Append(ctx, models.ChatLog{
		UserID:            s.UserID,
		SessionID:         s.ID,
		CurrentStep:       s.Step,
		UserMessage:       input.Message,
		UserIntent:        result.Intent.Type,
		UserSentiment:     result.Sentiment.Sentiment,
		UserEmotion:       result.Sentiment.Emotion,
		BotResponse:       result.Bot.Text,
		FrustrationLevel:  before.Frustration,
		UrgencyScore:      before.Urgency,
		SatisfactionScore: before.Satisfaction,
		ResponseTimeMs:    elapsedMs,
	})
	if err != nil {
		h.logger.Warn("chat log append failed", map[string]interface{}{
			"error":     err,
			"sessionId": s.ID,
		})
		return ""
	}
	return id
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
