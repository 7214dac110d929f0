// internal/workers/enrollment/notify-enrollment/handler_test.go
package notifyenrollment

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"enrollment-workers/internal/common/aws"
	"enrollment-workers/internal/common/clock"
	"enrollment-workers/internal/common/config"
	"enrollment-workers/internal/common/errors"
	"enrollment-workers/internal/common/logger"
	"enrollment-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

type fakeEmail struct {
	sent    []aws.Email
	sendErr func(aws.Email) error
}

func (f *fakeEmail) SendEmail(_ context.Context, email aws.Email) (string, error) {
	if f.sendErr != nil {
		if err := f.sendErr(email); err != nil {
			return "", err
		}
	}
	f.sent = append(f.sent, email)
	return "ses-1", nil
}

type fakeSMS struct {
	phones   []string
	messages []string
	err      error
}

func (f *fakeSMS) SendSMS(_ context.Context, phone, message string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.phones = append(f.phones, phone)
	f.messages = append(f.messages, message)
	return "sns-1", nil
}

func testConfig() *Config {
	cfg := LoadConfig()
	cfg.EmailEnabled = true
	cfg.SMSEnabled = true
	cfg.FromEmail = "enrollments@example.com"
	cfg.SalesInbox = "sales@example.com"
	cfg.OnCallNumber = "+13125550100"
	return cfg
}

func hotInput() *Input {
	return &Input{
		EnrollmentID: "enr-0001",
		Applicant: models.ApplicantRecord{
			FirstName: "John",
			LastName:  "Smith",
			Email:     "john.smith@gmail.com",
			Phone:     "(312) 555-0147",
			City:      "Chicago",
			State:     "IL",
		},
		LeadScore: models.LeadReport{Score: 100, Grade: "A+"},
		Priority:  models.PriorityHot,
	}
}

func TestHandler_Execute_Plans(t *testing.T) {
	tests := []struct {
		name         string
		config       func() *Config
		input        func() *Input
		wantStatus   string
		wantChannels []string
		wantEmailsTo []string
		wantSMS      int
	}{
		{
			name:         "hot A+ lead",
			config:       testConfig,
			input:        hotInput,
			wantStatus:   StatusSent,
			wantChannels: []string{TypeHotLead, TypeConfirmation, TypeOnCallPage},
			wantEmailsTo: []string{"sales@example.com", "john.smith@gmail.com"},
			wantSMS:      1,
		},
		{
			name:   "warm lead only gets confirmation",
			config: testConfig,
			input: func() *Input {
				in := hotInput()
				in.Priority = models.PriorityWarm
				in.LeadScore = models.LeadReport{Score: 72, Grade: "B"}
				return in
			},
			wantStatus:   StatusSent,
			wantChannels: []string{TypeConfirmation},
			wantEmailsTo: []string{"john.smith@gmail.com"},
		},
		{
			name:   "chat escalation pages on-call",
			config: testConfig,
			input: func() *Input {
				return &Input{
					SessionID:        "sess-1",
					Escalated:        true,
					EscalationReason: "requested a human",
				}
			},
			wantStatus:   StatusSent,
			wantChannels: []string{TypeChatEscalation},
			wantSMS:      1,
		},
		{
			name: "everything disabled",
			config: func() *Config {
				cfg := testConfig()
				cfg.EmailEnabled = false
				cfg.SMSEnabled = false
				return cfg
			},
			input:        hotInput,
			wantStatus:   StatusDisabled,
			wantChannels: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := &fakeEmail{}
			sms := &fakeSMS{}
			h := NewHandler(tt.config(), email, sms, clock.Fixed(testNow), logger.NewTestLogger(t))

			output, err := h.Execute(context.Background(), tt.input())

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, output.Status)
			assert.Equal(t, tt.wantChannels, output.Channels)
			assert.Equal(t, "2025-06-15T12:00:00Z", output.SentAt)
			assert.NotEmpty(t, output.NotificationID)

			var to []string
			for _, e := range email.sent {
				to = append(to, e.To...)
				assert.Equal(t, "enrollments@example.com", e.From)
			}
			assert.Equal(t, tt.wantEmailsTo, to)
			assert.Len(t, sms.messages, tt.wantSMS)
		})
	}
}

func TestHandler_Execute_RendersTemplates(t *testing.T) {
	email := &fakeEmail{}
	sms := &fakeSMS{}
	h := NewHandler(testConfig(), email, sms, clock.Fixed(testNow), logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), hotInput())
	require.NoError(t, err)

	require.Len(t, email.sent, 2)
	assert.Equal(t, "Hot lead: John Smith (A+)", email.sent[0].Subject)
	assert.Contains(t, email.sent[0].Body, "Lead score: 100 (A+)")
	assert.Contains(t, email.sent[1].Body, "Hi John,")
	assert.Contains(t, email.sent[1].Body, "enr-0001")
	assert.NotContains(t, email.sent[1].Body, "{{")

	require.Len(t, sms.messages, 1)
	assert.Equal(t, "+13125550100", sms.phones[0])
	assert.Equal(t, "A+ lead John Smith (312) 555-0147 (IL), enrollment enr-0001", sms.messages[0])
}

func TestHandler_Execute_PartialFailure(t *testing.T) {
	email := &fakeEmail{sendErr: func(e aws.Email) error {
		if e.To[0] == "sales@example.com" {
			return stderrors.New("throttled")
		}
		return nil
	}}
	h := NewHandler(testConfig(), email, &fakeSMS{}, clock.Fixed(testNow), logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), hotInput())

	require.NoError(t, err)
	assert.Equal(t, StatusFailed, output.Status)
	assert.Equal(t, []string{TypeConfirmation, TypeOnCallPage}, output.Channels)
}

func TestHandler_Execute_AllFailed(t *testing.T) {
	email := &fakeEmail{sendErr: func(aws.Email) error { return stderrors.New("ses down") }}
	sms := &fakeSMS{err: stderrors.New("sns down")}
	h := NewHandler(testConfig(), email, sms, clock.Fixed(testNow), logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), hotInput())

	require.Error(t, err)
	assert.Nil(t, output)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeNotificationSendFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestHandler_NilSendersDisableChannels(t *testing.T) {
	h := NewHandler(testConfig(), nil, nil, clock.Fixed(testNow), logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), hotInput())

	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.Status)
}

func TestRenderTemplate(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		data map[string]interface{}
		want string
	}{
		{"replaces known keys", "Hi {{name}}, score {{score}}", map[string]interface{}{"name": "Ann", "score": 91}, "Hi Ann, score 91"},
		{"drops unknown keys", "Hi {{name}}{{missing}}!", map[string]interface{}{"name": "Ann"}, "Hi Ann!"},
		{"unterminated placeholder kept", "Hi {{name", nil, "Hi {{name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderTemplate(tt.tmpl, tt.data))
		})
	}
}

func TestConfigFrom(t *testing.T) {
	var n config.NotificationConfig
	n.Email.Enabled = true
	n.Email.FromEmail = "enrollments@example.com"
	n.Email.SalesInbox = "sales@example.com"
	n.SMS.Enabled = true
	n.SMS.OnCall = "+13125550100"

	cfg := ConfigFrom(n, 0)
	assert.True(t, cfg.EmailEnabled)
	assert.Equal(t, "sales@example.com", cfg.SalesInbox)
	assert.Equal(t, "+13125550100", cfg.OnCallNumber)
	assert.Equal(t, []string{"A+"}, cfg.PriorityGrades)
	assert.Equal(t, 30*time.Second, cfg.Timeout)

	n.SMS.PriorityGrades = []string{"A+", "A"}
	cfg = ConfigFrom(n, 5*time.Second)
	assert.Equal(t, []string{"A+", "A"}, cfg.PriorityGrades)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}
