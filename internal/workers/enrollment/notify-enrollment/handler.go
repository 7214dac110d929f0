// internal/workers/enrollment/notify-enrollment/handler.go
package notifyenrollment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"enrollment-workers/internal/common/aws"
	"enrollment-workers/internal/common/camunda"
	"enrollment-workers/internal/common/clock"
	"enrollment-workers/internal/common/errors"
	"enrollment-workers/internal/common/logger"
	"enrollment-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "notify-enrollment"
)

// EmailSender is satisfied by *aws.SESClient.
type EmailSender interface {
	SendEmail(ctx context.Context, email aws.Email) (string, error)
}

// SMSSender is satisfied by *aws.SNSClient.
type SMSSender interface {
	SendSMS(ctx context.Context, phoneNumber, message string) (string, error)
}

type Handler struct {
	config *Config
	email  EmailSender
	sms    SMSSender
	clock  clock.Clock
	jobs   *camunda.JobReporter
	logger logger.Logger
}

// NewHandler accepts nil senders; the matching channel is then treated as
// disabled.
func NewHandler(config *Config, email EmailSender, sms SMSSender, c clock.Clock, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		email:  email,
		sms:    sms,
		clock:  c,
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

// delivery is one planned message.
type delivery struct {
	kind string
	send func(ctx context.Context, data map[string]interface{}) error
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	output := &Output{
		NotificationID: uuid.NewString(),
		Channels:       []string{},
		SentAt:         h.clock.Now().UTC().Format(time.RFC3339),
	}

	planned := h.plan(input)
	if len(planned) == 0 {
		output.Status = StatusDisabled
		h.logger.Info("no notifications to send", map[string]interface{}{
			"enrollmentId": input.EnrollmentID,
			"priority":     input.Priority,
		})
		return output, nil
	}

	data := templateData(input)
	var lastErr error
	failed := ""
	for _, d := range planned {
		if err := d.send(ctx, data); err != nil {
			h.logger.Error("notification send failed", map[string]interface{}{
				"error":        err,
				"type":         d.kind,
				"enrollmentId": input.EnrollmentID,
			})
			lastErr = err
			failed = d.kind
			continue
		}
		output.Channels = append(output.Channels, d.kind)
	}

	switch {
	case len(output.Channels) == 0:
		// Nothing went out, so a retry cannot duplicate a message.
		return nil, errors.NewNotificationSendFailedError(failed, lastErr)
	case lastErr != nil:
		output.Status = StatusFailed
	default:
		output.Status = StatusSent
	}

	h.logger.Info("notifications processed", map[string]interface{}{
		"enrollmentId": input.EnrollmentID,
		"status":       output.Status,
		"channels":     output.Channels,
	})
	return output, nil
}

// plan picks the messages this job should send, in delivery order.
func (h *Handler) plan(input *Input) []delivery {
	var out []delivery

	emailOn := h.config.EmailEnabled && h.email != nil
	smsOn := h.config.SMSEnabled && h.sms != nil && h.config.OnCallNumber != ""

	if emailOn && input.Priority == models.PriorityHot && h.config.SalesInbox != "" {
		out = append(out, delivery{kind: TypeHotLead, send: h.emailTo(TypeHotLead, h.config.SalesInbox)})
	}
	if emailOn && input.EnrollmentID != "" && input.Applicant.Email != "" {
		out = append(out, delivery{kind: TypeConfirmation, send: h.emailTo(TypeConfirmation, input.Applicant.Email)})
	}
	if smsOn && input.Escalated {
		out = append(out, delivery{kind: TypeChatEscalation, send: h.page(TypeChatEscalation)})
	} else if smsOn && input.EnrollmentID != "" && h.isPriorityGrade(input.LeadScore.Grade) {
		out = append(out, delivery{kind: TypeOnCallPage, send: h.page(TypeOnCallPage)})
	}
	return out
}

func (h *Handler) emailTo(kind, to string) func(context.Context, map[string]interface{}) error {
	return func(ctx context.Context, data map[string]interface{}) error {
		tmpl := templates[kind]
		_, err := h.email.SendEmail(ctx, aws.Email{
			From:    h.config.FromEmail,
			To:      []string{to},
			Subject: renderTemplate(tmpl.subject, data),
			Body:    renderTemplate(tmpl.body, data),
		})
		return err
	}
}

func (h *Handler) page(kind string) func(context.Context, map[string]interface{}) error {
	return func(ctx context.Context, data map[string]interface{}) error {
		_, err := h.sms.SendSMS(ctx, h.config.OnCallNumber, renderTemplate(templates[kind].body, data))
		return err
	}
}

func (h *Handler) isPriorityGrade(grade string) bool {
	for _, g := range h.config.PriorityGrades {
		if g == grade {
			return true
		}
	}
	return false
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
