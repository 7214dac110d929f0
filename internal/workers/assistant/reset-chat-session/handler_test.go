// internal/workers/assistant/reset-chat-session/handler_test.go
package resetchatsession

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"enrollment-workers/internal/assistant"
	"enrollment-workers/internal/assistant/sessionstore"
	"enrollment-workers/internal/common/clock"
	"enrollment-workers/internal/common/errors"
	"enrollment-workers/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func newAssistant() *assistant.Assistant {
	return assistant.New(assistant.DefaultConfig(), clock.Fixed(testNow), assistant.DefaultKnowledgeBase())
}

func TestHandler_Execute(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx := context.Background()
	a := newAssistant()
	store := sessionstore.New(rdb, time.Hour)

	old, _ := a.Start("sess-1", "user-1", 1)
	res, err := a.Respond(old, "I'm so frustrated, this is terrible")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, res.Session))

	h := NewHandler(LoadConfig(), a, store, logger.NewTestLogger(t))

	output, err := h.Execute(ctx, &Input{SessionID: "sess-1", UserID: "user-1", Step: 1})

	require.NoError(t, err)
	assert.Equal(t, "sess-1", output.SessionID)
	assert.True(t, output.Cleared)
	assert.Contains(t, output.Welcome.Text, "SpeedyCRM Assistant")

	sess, found, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 0, sess.Frustration)
	assert.Equal(t, 1, sess.MessageCount)
	assert.Equal(t, 1, sess.Step)
	assert.Equal(t, assistant.FlowInitial, sess.Context.FlowState)
	assert.Equal(t, time.Hour, mr.TTL(sessionstore.Key("sess-1")))

	t.Run("unknown session", func(t *testing.T) {
		output, err := h.Execute(ctx, &Input{SessionID: "never-seen"})

		require.NoError(t, err)
		assert.False(t, output.Cleared)
		assert.NotEmpty(t, output.Welcome.Text)
	})
}

func TestHandler_Execute_StoreError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel(sessionstore.Key("sess-2")).SetErr(stderrors.New("connection refused"))

	h := NewHandler(LoadConfig(), newAssistant(), sessionstore.New(rdb, time.Hour), logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{SessionID: "sess-2"})

	require.Error(t, err)
	assert.Nil(t, output)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeSessionStoreFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInputSchema(t *testing.T) {
	assert.True(t, inputSchema.Validate(`{"sessionId": "s"}`).Valid)
	assert.False(t, inputSchema.Validate(`{"sessionId": ""}`).Valid)
	assert.False(t, inputSchema.Validate(`{}`).Valid)
}
