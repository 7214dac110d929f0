// internal/workers/assistant/process-chat-message/models.go
package processchatmessage

import (
	"enrollment-workers/internal/common/validation"
	"enrollment-workers/internal/models"
)

type Input struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId,omitempty"`
	Message   string `json:"message"`
	// Step is the enrollment form step the user is on, when known.
	Step *int `json:"step,omitempty"`
}

type Output struct {
	SessionID         string              `json:"sessionId"`
	NewSession        bool                `json:"newSession"`
	Welcome           *models.ChatMessage `json:"welcome,omitempty"` // set when a new session also got a message
	Reply             models.ChatMessage  `json:"reply"`
	Escalated         bool                `json:"escalated"`
	EscalationReason  string              `json:"escalationReason,omitempty"`
	EscalationMessage *models.ChatMessage `json:"escalationMessage,omitempty"`
	Quality           int                 `json:"quality"`
	Intent            string              `json:"intent,omitempty"`
	Sentiment         string              `json:"sentiment,omitempty"`
	TypingDelayMs     int64               `json:"typingDelayMs"`
	ChatLogID         string              `json:"chatLogId,omitempty"`
}

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"sessionId": {"type": "string", "minLength": 1},
		"userId":    {"type": "string"},
		"message":   {"type": "string"},
		"step":      {"type": "integer", "minimum": 0, "maximum": 2}
	},
	"required": ["sessionId", "message"]
}`)
