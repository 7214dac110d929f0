// Package assistant implements the enrollment chat assistant: rule-based
// intent, entity and sentiment analysis, canned responses backed by a small
// knowledge base, and the per-session conversation state.
package assistant

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"enrollment-workers/internal/common/clock"
	"enrollment-workers/internal/common/config"
	"enrollment-workers/internal/models"
)

var ErrEmptyMessage = errors.New("EMPTY_MESSAGE")

const (
	maxTypingDelay     = 3 * time.Second
	typingDelayPerChar = 20 * time.Millisecond
)

// Config holds the assistant persona and conversation limits.
type Config struct {
	AssistantName       string
	CompanyName         string
	CompanyPhone        string
	CompanyEmail        string
	EscalationThreshold int
	MaxHistoryMessages  int
	TypingDelay         time.Duration
	ProactiveHelp       bool
	IdleAfter           time.Duration
}

func DefaultConfig() Config {
	return Config{
		AssistantName:       "SpeedyCRM Assistant",
		CompanyName:         "Speedy Credit Repair",
		CompanyPhone:        "1-888-724-7344",
		CompanyEmail:        "chris@speedycreditrepair.com",
		EscalationThreshold: 3,
		MaxHistoryMessages:  50,
		TypingDelay:         1200 * time.Millisecond,
		ProactiveHelp:       true,
		IdleAfter:           30 * time.Second,
	}
}

// ConfigFrom overlays the non-zero settings of cfg on the defaults.
func ConfigFrom(cfg config.AssistantConfig) Config {
	c := DefaultConfig()
	if cfg.AssistantName != "" {
		c.AssistantName = cfg.AssistantName
	}
	if cfg.CompanyName != "" {
		c.CompanyName = cfg.CompanyName
	}
	if cfg.CompanyPhone != "" {
		c.CompanyPhone = cfg.CompanyPhone
	}
	if cfg.CompanyEmail != "" {
		c.CompanyEmail = cfg.CompanyEmail
	}
	if cfg.EscalationThreshold > 0 {
		c.EscalationThreshold = cfg.EscalationThreshold
	}
	if cfg.MaxHistoryMessages > 0 {
		c.MaxHistoryMessages = cfg.MaxHistoryMessages
	}
	if cfg.TypingDelay > 0 {
		c.TypingDelay = time.Duration(cfg.TypingDelay) * time.Millisecond
	}
	if cfg.IdleAfter > 0 {
		c.IdleAfter = time.Duration(cfg.IdleAfter) * time.Millisecond
	}
	c.ProactiveHelp = !cfg.DisableProactiveHelp
	return c
}

// Assistant runs one conversation turn at a time. It holds no per-session
// state and is safe for concurrent use.
type Assistant struct {
	cfg       Config
	clock     clock.Clock
	responder *Responder
	newID     func() string
}

func New(cfg Config, c clock.Clock, kb *KnowledgeBase) *Assistant {
	return &Assistant{
		cfg:       cfg,
		clock:     c,
		responder: NewResponder(cfg.AssistantName, kb),
		newID:     uuid.NewString,
	}
}

func (a *Assistant) Config() Config { return a.cfg }

// Now reads the assistant's clock.
func (a *Assistant) Now() time.Time { return a.clock.Now() }

// Result is the outcome of one user message.
type Result struct {
	Analysis
	Session Session
	User    models.ChatMessage
	Bot     models.ChatMessage
	Related []Match
	// Escalation is set when the conversation should be handed to a person.
	Escalation       *models.ChatMessage
	EscalationReason string
	Quality          int
	TypingDelay      time.Duration
}

// Respond processes text as the next user message of s.
func (a *Assistant) Respond(s Session, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyMessage
	}
	now := a.clock.Now()

	analysis := Analysis{
		Intent:    ClassifyIntent(text),
		Entities:  ExtractEntities(text),
		Sentiment: AnalyzeSentiment(text),
	}

	resp := a.responder.Generate(Request{
		Text:        text,
		Intent:      analysis.Intent,
		Entities:    analysis.Entities,
		Sentiment:   analysis.Sentiment,
		Context:     s.withContext(analysis),
		Frustration: s.Frustration,
		Step:        s.Step,
	})

	user := models.ChatMessage{
		ID:        a.newID(),
		SessionID: s.ID,
		Type:      models.MessageTypeUser,
		Text:      text,
		Timestamp: now,
	}
	bot := models.ChatMessage{
		ID:           a.newID(),
		SessionID:    s.ID,
		Type:         models.MessageTypeBot,
		Text:         resp.Text,
		Timestamp:    now,
		Intent:       analysis.Intent.Type,
		Sentiment:    analysis.Sentiment.Sentiment,
		QuickReplies: resp.QuickReplies,
		RichCards:    resp.RichCards,
	}

	next := s.Apply(Turn{Analysis: analysis, User: user, Bot: bot}, a.cfg.MaxHistoryMessages)

	res := Result{
		Analysis:    analysis,
		User:        user,
		Bot:         bot,
		Related:     resp.Related,
		TypingDelay: a.TypingDelay(text),
	}

	if reason := next.EscalationReason(a.cfg.EscalationThreshold); reason != "" {
		msg := a.botMessage(s.ID, escalationText, escalationReplies)
		msg.IsEscalation = true
		next = next.withBotMessage(msg, a.cfg.MaxHistoryMessages)
		next.Escalated = true
		next.Context.FlowState = FlowEscalated
		res.Escalation = &msg
		res.EscalationReason = reason
	}

	res.Session = next
	res.Quality = ConversationQuality(next)
	return res, nil
}

// Start opens a new session with the welcome message already sent.
func (a *Assistant) Start(sessionID, userID string, step int) (Session, models.ChatMessage) {
	if sessionID == "" {
		sessionID = a.newID()
	}
	s := NewSession(sessionID, a.clock.Now())
	s.UserID = userID
	s.Step = step

	msg := a.botMessage(sessionID, welcomeText(a.cfg.AssistantName), welcomeReplies)
	return s.withBotMessage(msg, a.cfg.MaxHistoryMessages), msg
}

// Nudge returns the idle prompt when the user has gone quiet. ok is false if
// no nudge is due or proactive help is disabled.
func (a *Assistant) Nudge(s Session) (next Session, msg models.ChatMessage, ok bool) {
	if !a.cfg.ProactiveHelp || !s.Idle(a.clock.Now(), a.cfg.IdleAfter) {
		return s, models.ChatMessage{}, false
	}
	msg = a.botMessage(s.ID, proactiveText, proactiveReplies)
	msg.IsProactive = true
	next = s.withBotMessage(msg, a.cfg.MaxHistoryMessages)
	// Restart the idle window so the prompt is not repeated on every check.
	next.LastUserMessage = msg.Timestamp
	return next, msg, true
}

// TypingDelay is how long a client should show the typing indicator before
// revealing the reply to text.
func (a *Assistant) TypingDelay(text string) time.Duration {
	d := a.cfg.TypingDelay + time.Duration(utf8.RuneCountInString(text))*typingDelayPerChar
	return min(d, maxTypingDelay)
}

func (a *Assistant) botMessage(sessionID, text string, replies []string) models.ChatMessage {
	return models.ChatMessage{
		ID:           a.newID(),
		SessionID:    sessionID,
		Type:         models.MessageTypeBot,
		Text:         text,
		Timestamp:    a.clock.Now(),
		QuickReplies: append([]string(nil), replies...),
	}
}
