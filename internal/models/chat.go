// internal/models/chat.go
package models

import "time"

type MessageType string

const (
	MessageTypeUser MessageType = "user"
	MessageTypeBot  MessageType = "bot"
)

// Intent is a classified chat intent with its rule confidence.
type Intent struct {
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// Emotion is one activated sentiment bucket.
type Emotion struct {
	Type      string  `json:"type"`
	Count     int     `json:"count"`
	Intensity float64 `json:"intensity"`
}

// Sentiment is the keyword-bucket analysis of one message.
type Sentiment struct {
	Sentiment  string    `json:"sentiment"`
	Score      float64   `json:"score"`
	Emotion    string    `json:"emotion"`
	Emotions   []Emotion `json:"emotions"`
	Confidence float64   `json:"confidence"`
}

// HasEmotion reports whether the named bucket activated.
func (s Sentiment) HasEmotion(kind string) bool {
	for _, e := range s.Emotions {
		if e.Type == kind {
			return true
		}
	}
	return false
}

// Entities holds values pulled out of free text. Empty fields were not found.
type Entities struct {
	Phones      []string `json:"phones,omitempty"`
	Emails      []string `json:"emails,omitempty"`
	Amounts     []string `json:"amounts,omitempty"`
	Dates       []string `json:"dates,omitempty"`
	AccountType string   `json:"accountType,omitempty"`
	Timeframe   string   `json:"timeframe,omitempty"`
}

// Merge returns e overlaid with every non-empty entity of next.
func (e Entities) Merge(next Entities) Entities {
	out := e
	if len(next.Phones) > 0 {
		out.Phones = next.Phones
	}
	if len(next.Emails) > 0 {
		out.Emails = next.Emails
	}
	if len(next.Amounts) > 0 {
		out.Amounts = next.Amounts
	}
	if len(next.Dates) > 0 {
		out.Dates = next.Dates
	}
	if next.AccountType != "" {
		out.AccountType = next.AccountType
	}
	if next.Timeframe != "" {
		out.Timeframe = next.Timeframe
	}
	return out
}

// IsEmpty reports whether nothing was extracted.
func (e Entities) IsEmpty() bool {
	return len(e.Phones) == 0 && len(e.Emails) == 0 && len(e.Amounts) == 0 &&
		len(e.Dates) == 0 && e.AccountType == "" && e.Timeframe == ""
}

// RichCard is a structured block rendered under a bot message.
type RichCard struct {
	Type  string   `json:"type"`
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// ChatMessage is one entry in a chat transcript. Messages are never edited
// after creation.
type ChatMessage struct {
	ID           string      `json:"id"`
	SessionID    string      `json:"sessionId"`
	Type         MessageType `json:"type"`
	Text         string      `json:"text"`
	Timestamp    time.Time   `json:"timestamp"`
	Intent       string      `json:"intent,omitempty"`
	Sentiment    string      `json:"sentiment,omitempty"`
	QuickReplies []string    `json:"quickReplies,omitempty"`
	RichCards    []RichCard  `json:"richCards,omitempty"`
	IsEscalation bool        `json:"isEscalation,omitempty"`
	IsProactive  bool        `json:"isProactive,omitempty"`
}

// ConversationContext accumulates what the assistant has learned in a session.
type ConversationContext struct {
	Intents    []Intent `json:"intents"`
	Entities   Entities `json:"entities"`
	Topics     []string `json:"topics"`
	LastIntent *Intent  `json:"lastIntent,omitempty"`
	FlowState  string   `json:"flowState"`
}

// ChatLog is the per-turn analytics row written to the chat log store.
type ChatLog struct {
	UserID            string `firestore:"userId" json:"userId"`
	SessionID         string `firestore:"sessionId" json:"sessionId"`
	CurrentStep       int    `firestore:"currentStep" json:"currentStep"`
	UserMessage       string `firestore:"userMessage" json:"userMessage"`
	UserIntent        string `firestore:"userIntent" json:"userIntent"`
	UserSentiment     string `firestore:"userSentiment" json:"userSentiment"`
	UserEmotion       string `firestore:"userEmotion" json:"userEmotion"`
	BotResponse       string `firestore:"botResponse" json:"botResponse"`
	FrustrationLevel  int    `firestore:"frustrationLevel" json:"frustrationLevel"`
	UrgencyScore      int    `firestore:"urgencyScore" json:"urgencyScore"`
	SatisfactionScore int    `firestore:"satisfactionScore" json:"satisfactionScore"`
	ResponseTimeMs    int64  `firestore:"responseTime" json:"responseTime"`
}
