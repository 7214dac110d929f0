// internal/workers/assistant/reset-chat-session/models.go
package resetchatsession

import (
	"enrollment-workers/internal/common/validation"
	"enrollment-workers/internal/models"
)

type Input struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId,omitempty"`
	Step      int    `json:"step,omitempty"`
}

type Output struct {
	SessionID string             `json:"sessionId"`
	Cleared   bool               `json:"cleared"` // a previous session existed
	Welcome   models.ChatMessage `json:"welcome"`
}

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"sessionId": {"type": "string", "minLength": 1},
		"userId":    {"type": "string"},
		"step":      {"type": "integer", "minimum": 0, "maximum": 2}
	},
	"required": ["sessionId"]
}`)
