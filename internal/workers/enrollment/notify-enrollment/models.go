// internal/workers/enrollment/notify-enrollment/models.go
package notifyenrollment

import (
	"enrollment-workers/internal/common/validation"
	"enrollment-workers/internal/models"
)

type Input struct {
	EnrollmentID     string                 `json:"enrollmentId,omitempty"`
	Applicant        models.ApplicantRecord `json:"applicant"`
	LeadScore        models.LeadReport      `json:"leadScore"`
	Priority         string                 `json:"priority,omitempty"`
	SessionID        string                 `json:"sessionId,omitempty"`
	Escalated        bool                   `json:"escalated,omitempty"`
	EscalationReason string                 `json:"escalationReason,omitempty"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"` // "sent", "failed", "disabled"
	Channels       []string `json:"channels"`
	SentAt         string   `json:"sentAt"` // ISO 8601
}

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// Notification types. Delivered ones are listed in Output.Channels.
const (
	TypeHotLead        = "hot_lead"
	TypeConfirmation   = "enrollment_confirmation"
	TypeOnCallPage     = "on_call_page"
	TypeChatEscalation = "chat_escalation"
)

var inputSchema = validation.MustCompile(validation.ApplicantPayload(`
	"enrollmentId": {"type": "string"},
	"leadScore": {
		"type": "object",
		"properties": {"score": {"type": "integer"}, "grade": {"type": "string"}}
	},
	"priority": {"enum": ["hot", "warm", "cold", ""]},
	"sessionId": {"type": "string"},
	"escalated": {"type": "boolean"},
	"escalationReason": {"type": "string"}`,
))
