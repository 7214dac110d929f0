// internal/workers/enrollment/notify-enrollment/config.go
package notifyenrollment

import (
	"time"

	"enrollment-workers/internal/common/config"
)

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	SalesInbox   string
	OnCallNumber string
	// Lead grades that page the on-call number.
	PriorityGrades []string
	Timeout        time.Duration
}

func LoadConfig() *Config {
	return &Config{
		PriorityGrades: []string{"A+"},
		Timeout:        30 * time.Second,
	}
}

// ConfigFrom maps the notifications section onto a worker config.
func ConfigFrom(n config.NotificationConfig, timeout time.Duration) *Config {
	cfg := LoadConfig()
	cfg.EmailEnabled = n.Email.Enabled
	cfg.FromEmail = n.Email.FromEmail
	cfg.SalesInbox = n.Email.SalesInbox
	cfg.SMSEnabled = n.SMS.Enabled
	cfg.OnCallNumber = n.SMS.OnCall
	if len(n.SMS.PriorityGrades) > 0 {
		cfg.PriorityGrades = n.SMS.PriorityGrades
	}
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	return cfg
}
