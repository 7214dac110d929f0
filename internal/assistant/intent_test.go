// internal/assistant/intent_test.go
package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enrollment-workers/internal/models"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		text       string
		want       string
		confidence float64
	}{
		{"hi there", IntentGreeting, 0.95},
		{"Good morning!", IntentGreeting, 0.95},
		{"how much does this cost", IntentQuestionPricing, 0.9},
		{"How long does this take?", IntentQuestionDuration, 0.9},
		{"Is this secure?", IntentSecurityConcern, 0.9},
		{"Why do you need my SSN?", IntentSensitiveDataConcern, 0.95},
		{"Will this hurt my credit score?", IntentCreditImpactConcern, 0.9},
		{"I'm stuck on this page", IntentRequestHelp, 0.85},
		{"Can I talk to a real person?", IntentRequestHuman, 0.95},
		{"please call me tomorrow", IntentScheduleCallback, 0.9},
		{"forget it", IntentCancel, 0.85},
		{"the page shows an error", IntentTechnicalIssue, 0.85},
		{"I want to dispute a late payment", IntentDisputeInquiry, 0.8},
		{"what's the outcome", IntentResultsInquiry, 0.8},
		{"asdfgh", IntentGeneralInquiry, 0.5},
		{"", IntentGeneralInquiry, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ClassifyIntent(tt.text)
			assert.Equal(t, tt.want, got.Type)
			assert.Equal(t, tt.confidence, got.Confidence)
		})
	}
}

func TestClassifyAll(t *testing.T) {
	t.Run("sub intent ranks ahead of its parent", func(t *testing.T) {
		got := ClassifyAll("how much does this cost")
		require.Len(t, got, 2)
		assert.Equal(t, []models.Intent{
			{Type: IntentQuestionPricing, Confidence: 0.9},
			{Type: IntentQuestion, Confidence: 0.9},
		}, got)
	})

	t.Run("equal confidence keeps declaration order", func(t *testing.T) {
		got := ClassifyAll("terrible but thanks")
		require.Len(t, got, 2)
		assert.Equal(t, IntentComplaint, got[0].Type)
		assert.Equal(t, IntentPositiveFeedback, got[1].Type)
	})

	t.Run("higher confidence wins over declaration order", func(t *testing.T) {
		got := ClassifyAll("what is idiq")
		require.NotEmpty(t, got)
		assert.Equal(t, IntentQuestion, got[0].Type)
		assert.Equal(t, IntentQuestionDefinition, got[len(got)-1].Type)
	})

	t.Run("sub intents need the parent", func(t *testing.T) {
		for _, in := range ClassifyAll("the fee seems high") {
			assert.NotEqual(t, IntentQuestionPricing, in.Type)
		}
	})
}
