// internal/assistant/assistant_test.go
package assistant

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enrollment-workers/internal/common/config"
	"enrollment-workers/internal/models"
)

var t0 = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

// manualClock is advanced explicitly by tests.
type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestAssistant(t *testing.T) (*Assistant, *manualClock) {
	t.Helper()
	clk := &manualClock{now: t0}
	a := New(DefaultConfig(), clk, DefaultKnowledgeBase())
	n := 0
	a.newID = func() string {
		n++
		return fmt.Sprintf("msg-%d", n)
	}
	return a, clk
}

func TestAssistant_Start(t *testing.T) {
	a, _ := newTestAssistant(t)

	s, welcome := a.Start("session-1", "user-1", 0)

	assert.Equal(t, "session-1", s.ID)
	assert.Equal(t, "user-1", s.UserID)
	assert.Equal(t, 1, s.MessageCount)
	assert.Equal(t, 50, s.Satisfaction)
	assert.Equal(t, FlowInitial, s.Context.FlowState)
	require.Len(t, s.History, 1)
	assert.Equal(t, welcome, s.History[0])
	assert.True(t, strings.HasPrefix(welcome.Text, "👋 Hi! I'm the SpeedyCRM Assistant."))
	assert.Contains(t, welcome.Text, "100% FREE")
	assert.Equal(t, []string{"How does this work?", "Is this secure?", "Will this affect my credit?", "How long does it take?"}, welcome.QuickReplies)
}

func TestAssistant_Respond(t *testing.T) {
	t.Run("empty message", func(t *testing.T) {
		a, _ := newTestAssistant(t)
		s, _ := a.Start("s", "", 0)

		_, err := a.Respond(s, "   ")
		assert.ErrorIs(t, err, ErrEmptyMessage)
	})

	t.Run("greeting", func(t *testing.T) {
		a, _ := newTestAssistant(t)
		s, _ := a.Start("s", "", 0)

		res, err := a.Respond(s, "hi there")
		require.NoError(t, err)

		assert.Equal(t, IntentGreeting, res.Intent.Type)
		assert.Equal(t, models.MessageTypeUser, res.User.Type)
		assert.Equal(t, models.MessageTypeBot, res.Bot.Type)
		assert.Equal(t, IntentGreeting, res.Bot.Intent)
		assert.Contains(t, res.Bot.Text, "SpeedyCRM Assistant")
		assert.Nil(t, res.Escalation)
		assert.Equal(t, 3, res.Session.MessageCount)
		assert.Equal(t, FlowActive, res.Session.Context.FlowState)
		assert.Equal(t, []string{IntentGreeting}, res.Session.Context.Topics)
		// original session is untouched
		assert.Equal(t, 1, s.MessageCount)
		assert.Empty(t, s.Context.Topics)
	})

	t.Run("request for a person escalates", func(t *testing.T) {
		a, _ := newTestAssistant(t)
		s, _ := a.Start("s", "", 0)

		res, err := a.Respond(s, "Can I talk to a real person?")
		require.NoError(t, err)

		assert.Equal(t, IntentRequestHuman, res.Intent.Type)
		require.NotNil(t, res.Escalation)
		assert.True(t, res.Escalation.IsEscalation)
		assert.Equal(t, []string{"Yes, connect me", "No, I'm okay", "Call me instead"}, res.Escalation.QuickReplies)
		assert.Equal(t, EscalationUserRequested, res.EscalationReason)
		assert.True(t, res.Session.Escalated)
		assert.Equal(t, FlowEscalated, res.Session.Context.FlowState)
		assert.Equal(t, 4, res.Session.MessageCount)
		assert.Len(t, res.Session.History, 4)
	})

	t.Run("repeated complaints build frustration", func(t *testing.T) {
		a, _ := newTestAssistant(t)
		s, _ := a.Start("s", "", 0)

		const suffix = "Would you prefer to speak with someone directly?"

		res, err := a.Respond(s, "This is terrible")
		require.NoError(t, err)
		assert.Equal(t, IntentComplaint, res.Intent.Type)
		assert.Equal(t, 1, res.Session.Frustration)
		assert.NotContains(t, res.Bot.Text, suffix)
		assert.Nil(t, res.Escalation)

		res, err = a.Respond(res.Session, "This is terrible")
		require.NoError(t, err)
		assert.Equal(t, 2, res.Session.Frustration)
		assert.NotContains(t, res.Bot.Text, suffix)
		assert.Nil(t, res.Escalation)

		res, err = a.Respond(res.Session, "This is terrible")
		require.NoError(t, err)
		assert.Equal(t, 3, res.Session.Frustration)
		assert.Contains(t, res.Bot.Text, suffix)
		require.NotNil(t, res.Escalation)
		assert.Equal(t, EscalationFrustration, res.EscalationReason)
	})

	t.Run("positive feedback", func(t *testing.T) {
		a, _ := newTestAssistant(t)
		s, _ := a.Start("s", "", 0)

		res, err := a.Respond(s, "thank you so much, this is great")
		require.NoError(t, err)

		assert.Equal(t, IntentPositiveFeedback, res.Intent.Type)
		assert.Equal(t, 65, res.Session.Satisfaction)
		assert.Equal(t, 1, res.Session.ProblemsSolved)
		assert.Equal(t, 1, res.Session.HelpfulResponses)
		assert.Equal(t, EmotionHappy, res.Session.Emotion)
		// engagement 7.5 + satisfaction 19.5 + resolution 5 + calm 20
		assert.Equal(t, 52, res.Quality)
	})

	t.Run("knowledge base fallback with follow ups", func(t *testing.T) {
		a, _ := newTestAssistant(t)
		s, _ := a.Start("s", "", 1)

		res, err := a.Respond(s, "can I save my progress")
		require.NoError(t, err)

		assert.Equal(t, IntentGeneralInquiry, res.Intent.Type)
		assert.True(t, strings.HasPrefix(res.Bot.Text, "I think this might help: Yes! Your progress is automatically saved."))
		assert.Equal(t, []string{"Why do you need my SSN?", "Will this hurt my credit?", "Talk to a person", "Start over"}, res.Bot.QuickReplies)
	})
}

func TestAssistant_TypingDelay(t *testing.T) {
	a, _ := newTestAssistant(t)

	assert.Equal(t, 1400*time.Millisecond, a.TypingDelay("0123456789"))
	assert.Equal(t, 1200*time.Millisecond, a.TypingDelay(""))
	assert.Equal(t, 3*time.Second, a.TypingDelay(strings.Repeat("x", 200)))
}

func TestAssistant_Nudge(t *testing.T) {
	a, clk := newTestAssistant(t)
	s, _ := a.Start("s", "", 0)

	_, _, ok := a.Nudge(s)
	assert.False(t, ok)

	clk.Advance(31 * time.Second)
	next, msg, ok := a.Nudge(s)
	require.True(t, ok)
	assert.True(t, msg.IsProactive)
	assert.Equal(t, "Still there? 😊 Let me know if you have any questions! I'm here to help.", msg.Text)
	assert.Equal(t, 2, next.MessageCount)

	_, _, ok = a.Nudge(next)
	assert.False(t, ok, "nudge repeats immediately")

	cfg := DefaultConfig()
	cfg.ProactiveHelp = false
	quiet := New(cfg, clk, DefaultKnowledgeBase())
	_, _, ok = quiet.Nudge(s)
	assert.False(t, ok)
}

func TestConfigFrom(t *testing.T) {
	c := ConfigFrom(config.AssistantConfig{
		AssistantName:       "Helper",
		EscalationThreshold: 5,
		TypingDelay:         500,
	})

	assert.Equal(t, "Helper", c.AssistantName)
	assert.Equal(t, "Speedy Credit Repair", c.CompanyName)
	assert.Equal(t, 5, c.EscalationThreshold)
	assert.Equal(t, 500*time.Millisecond, c.TypingDelay)
	assert.Equal(t, 50, c.MaxHistoryMessages)
	assert.True(t, c.ProactiveHelp)
}
