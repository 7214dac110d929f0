// internal/assistant/sentiment_test.go
package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantSentiment string
		wantEmotion   string
		wantScore     float64
		wantEmotions  int
	}{
		{"grateful", "thank you so much, this is great", SentimentPositive, EmotionHappy, 0.6, 1},
		{"frustrated", "I'm frustrated and stuck, this is terrible", SentimentNegative, EmotionFrustrated, -0.6, 1},
		{"single frustration keyword is ignored", "this is terrible", SentimentNeutral, EmotionNeutral, 0, 0},
		{"mixed tie keeps declaration order", "I'm worried but thanks", SentimentMixed, EmotionAnxious, 0.15, 2},
		{"urgent carries no score", "I need this now", SentimentNeutral, EmotionUrgent, 0, 1},
		{"plain", "ok", SentimentNeutral, EmotionNeutral, 0, 0},
		{
			"clamped",
			"frustrated annoying difficult complicated confusing terrible awful worst hate angry",
			SentimentNegative, EmotionFrustrated, -1, 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeSentiment(tt.text)
			assert.Equal(t, tt.wantSentiment, got.Sentiment)
			assert.Equal(t, tt.wantEmotion, got.Emotion)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
			assert.InDelta(t, abs(tt.wantScore), got.Confidence, 1e-9)
			assert.Len(t, got.Emotions, tt.wantEmotions)
		})
	}
}

func TestAnalyzeSentiment_Intensity(t *testing.T) {
	got := AnalyzeSentiment("I'm curious, tell me more")
	if assert.Len(t, got.Emotions, 1) {
		assert.Equal(t, EmotionCurious, got.Emotions[0].Type)
		assert.Equal(t, 2, got.Emotions[0].Count)
		assert.Equal(t, 1.0, got.Emotions[0].Intensity)
	}
	assert.InDelta(t, 0.2, got.Score, 1e-9)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
