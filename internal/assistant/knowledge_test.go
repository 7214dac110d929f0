// internal/assistant/knowledge_test.go
package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeBase_Search(t *testing.T) {
	kb := DefaultKnowledgeBase()
	require.Equal(t, 12, kb.Len())

	t.Run("keyword and title", func(t *testing.T) {
		got := kb.Search("What is IDIQ")
		require.Len(t, got, 2)
		assert.Equal(t, "kb003", got[0].ID)
		assert.InDelta(t, 29.4, got[0].Relevance, 1e-9)
		assert.Equal(t, "kb401", got[1].ID)
		assert.InDelta(t, 14, got[1].Relevance, 1e-9)
	})

	t.Run("title substring", func(t *testing.T) {
		got := kb.Search("how long")
		require.Len(t, got, 1)
		assert.Equal(t, "kb001", got[0].ID)
		assert.InDelta(t, 19.75, got[0].Relevance, 1e-9)
	})

	t.Run("content substring only", func(t *testing.T) {
		got := kb.Search("equifax")
		require.Len(t, got, 1)
		assert.Equal(t, "kb003", got[0].ID)
		assert.InDelta(t, 4.4, got[0].Relevance, 1e-9)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, kb.Search("zzz"))
	})

	t.Run("capped and ranked", func(t *testing.T) {
		got := kb.Search("what is the cost, is it secure, why need my ssn, what happens after I submit")
		assert.Len(t, got, 5)
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i-1].Relevance, got[i].Relevance)
		}
	})

	t.Run("lookup by id", func(t *testing.T) {
		a, ok := kb.Article("kb101")
		require.True(t, ok)
		assert.Equal(t, "security", a.Category)

		_, ok = kb.Article("kb999")
		assert.False(t, ok)
	})
}
