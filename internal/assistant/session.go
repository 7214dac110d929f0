// internal/assistant/session.go
package assistant

import (
	"strings"
	"time"

	"enrollment-workers/internal/models"
)

// Flow states of a conversation.
const (
	FlowInitial   = "initial"
	FlowActive    = "active"
	FlowEscalated = "escalated"
)

const (
	initialSatisfaction = 50
	maxFrustration      = 5
	maxUrgency          = 10
	maxSatisfaction     = 100
	sentimentWindow     = 10
)

// Session is the conversation state carried between turns. It is treated as
// a value: Apply never mutates its receiver.
type Session struct {
	ID               string                     `json:"id"`
	UserID           string                     `json:"userId,omitempty"`
	Step             int                        `json:"step"`
	Satisfaction     int                        `json:"satisfaction"`
	Frustration      int                        `json:"frustration"`
	Urgency          int                        `json:"urgency"`
	MessageCount     int                        `json:"messageCount"`
	QuestionsAsked   int                        `json:"questionsAsked"`
	ProblemsSolved   int                        `json:"problemsSolved"`
	HelpfulResponses int                        `json:"helpfulResponses"`
	TopicsExplored   []string                   `json:"topicsExplored"`
	Emotion          string                     `json:"emotion"`
	SentimentHistory []models.Sentiment         `json:"sentimentHistory"`
	Context          models.ConversationContext `json:"context"`
	History          []models.ChatMessage       `json:"history"`
	Escalated        bool                       `json:"escalated"`
	StartedAt        time.Time                  `json:"startedAt"`
	LastUserMessage  time.Time                  `json:"lastUserMessage"`
}

// NewSession starts an empty conversation.
func NewSession(id string, now time.Time) Session {
	return Session{
		ID:               id,
		Satisfaction:     initialSatisfaction,
		Emotion:          EmotionNeutral,
		TopicsExplored:   []string{},
		SentimentHistory: []models.Sentiment{},
		History:          []models.ChatMessage{},
		Context: models.ConversationContext{
			Intents:   []models.Intent{},
			Topics:    []string{},
			FlowState: FlowInitial,
		},
		StartedAt:       now,
		LastUserMessage: now,
	}
}

// Analysis is the classifier output for one user message.
type Analysis struct {
	Intent    models.Intent
	Entities  models.Entities
	Sentiment models.Sentiment
}

// Turn is one user message, its analysis and the bot reply.
type Turn struct {
	Analysis
	User models.ChatMessage
	Bot  models.ChatMessage
}

// withContext returns the conversation context once a is merged in.
func (s Session) withContext(a Analysis) models.ConversationContext {
	ctx := s.Context
	ctx.Intents = append(append([]models.Intent(nil), ctx.Intents...), a.Intent)
	ctx.Entities = ctx.Entities.Merge(a.Entities)
	ctx.Topics = addTopic(ctx.Topics, a.Intent.Type)
	last := a.Intent
	ctx.LastIntent = &last
	if ctx.FlowState == FlowInitial || ctx.FlowState == "" {
		ctx.FlowState = FlowActive
	}
	return ctx
}

// Apply returns the session after t. maxHistory bounds the stored transcript;
// zero keeps everything.
func (s Session) Apply(t Turn, maxHistory int) Session {
	next := s
	next.Context = s.withContext(t.Analysis)

	next.SentimentHistory = append(append([]models.Sentiment(nil), s.SentimentHistory...), t.Sentiment)
	if len(next.SentimentHistory) > sentimentWindow {
		next.SentimentHistory = next.SentimentHistory[len(next.SentimentHistory)-sentimentWindow:]
	}
	next.Emotion = t.Sentiment.Emotion

	switch t.Sentiment.Emotion {
	case EmotionFrustrated:
		next.Frustration = min(next.Frustration+1, maxFrustration)
	case EmotionHappy:
		next.Frustration = max(next.Frustration-1, 0)
	}
	if t.Sentiment.HasEmotion(EmotionUrgent) {
		next.Urgency = min(next.Urgency+2, maxUrgency)
	}

	if strings.Contains(t.Intent.Type, IntentQuestion) {
		next.QuestionsAsked++
	}
	next.TopicsExplored = addTopic(s.TopicsExplored, t.Intent.Type)

	switch t.Intent.Type {
	case IntentComplaint:
		next.Frustration = min(next.Frustration+1, maxFrustration)
	case IntentPositiveFeedback:
		next.Satisfaction = min(next.Satisfaction+15, maxSatisfaction)
		next.HelpfulResponses++
		next.ProblemsSolved++
	}

	next.History = appendHistory(s.History, maxHistory, t.User, t.Bot)
	next.MessageCount += 2
	next.LastUserMessage = t.User.Timestamp
	return next
}

// Escalation reasons.
const (
	EscalationFrustration         = "frustration"
	EscalationUnresolvedQuestions = "unresolved_questions"
	EscalationLowSatisfaction     = "low_satisfaction"
	EscalationUrgentComplex       = "urgent_complex"
)

// EscalationReason returns why the conversation needs a human, or "" if it
// does not. The first matching trigger wins.
func (s Session) EscalationReason(threshold int) string {
	switch {
	case s.Frustration >= threshold:
		return EscalationFrustration
	case s.Context.LastIntent != nil && s.Context.LastIntent.Type == IntentRequestHuman:
		return EscalationUserRequested
	case s.QuestionsAsked > 5 && s.ProblemsSolved == 0:
		return EscalationUnresolvedQuestions
	case s.Satisfaction < 30 && s.MessageCount > 5:
		return EscalationLowSatisfaction
	case s.Urgency > 7 && len(s.Context.Topics) > 3:
		return EscalationUrgentComplex
	}
	return ""
}

// ShouldEscalate reports whether the conversation needs a human.
func (s Session) ShouldEscalate(threshold int) bool {
	return s.EscalationReason(threshold) != ""
}

// Idle reports whether the user has been silent for at least after while the
// conversation has started.
func (s Session) Idle(now time.Time, after time.Duration) bool {
	return (s.MessageCount > 0 || len(s.History) > 0) && now.Sub(s.LastUserMessage) > after
}

// withBotMessage records an unsolicited bot message.
func (s Session) withBotMessage(m models.ChatMessage, maxHistory int) Session {
	next := s
	next.History = appendHistory(s.History, maxHistory, m)
	next.MessageCount++
	return next
}

func addTopic(topics []string, topic string) []string {
	for _, t := range topics {
		if t == topic {
			return topics
		}
	}
	return append(append([]string(nil), topics...), topic)
}

func appendHistory(history []models.ChatMessage, limit int, msgs ...models.ChatMessage) []models.ChatMessage {
	out := append(append([]models.ChatMessage(nil), history...), msgs...)
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}
