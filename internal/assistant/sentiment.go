// internal/assistant/sentiment.go
package assistant

import (
	"math"
	"sort"
	"strings"

	"enrollment-workers/internal/models"
)

// Emotion buckets.
const (
	EmotionFrustrated = "frustrated"
	EmotionAnxious    = "anxious"
	EmotionHappy      = "happy"
	EmotionConfused   = "confused"
	EmotionUrgent     = "urgent"
	EmotionCurious    = "curious"
	EmotionNeutral    = "neutral"
)

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentMixed    = "mixed"
)

type emotionBucket struct {
	emotion   string
	keywords  []string
	threshold int
	divisor   float64
	delta     float64 // score change per matched keyword
}

var emotionBuckets = []emotionBucket{
	{
		emotion: EmotionFrustrated,
		keywords: []string{"frustrated", "annoying", "difficult", "complicated", "confused",
			"stuck", "help", "unclear", "confusing", "problem", "issue",
			"terrible", "awful", "worst", "hate", "angry"},
		threshold: 2, divisor: 3, delta: -0.2,
	},
	{
		emotion: EmotionAnxious,
		keywords: []string{"worried", "concern", "scared", "afraid", "nervous", "anxious",
			"unsure", "doubt", "risk", "dangerous", "unsafe"},
		threshold: 1, divisor: 2, delta: -0.15,
	},
	{
		emotion: EmotionHappy,
		keywords: []string{"thanks", "thank you", "great", "awesome", "perfect", "excellent",
			"helpful", "good", "nice", "appreciate", "love", "amazing", "wonderful"},
		threshold: 1, divisor: 2, delta: 0.3,
	},
	{
		emotion: EmotionConfused,
		keywords: []string{"what", "how", "why", "confused", "understand", "mean",
			"explain", "clarify", "unclear", "don't get", "dont get"},
		threshold: 2, divisor: 3, delta: -0.1,
	},
	{
		emotion:   EmotionUrgent,
		keywords:  []string{"urgent", "asap", "now", "immediately", "quickly", "hurry", "rush", "emergency"},
		threshold: 1, divisor: 1,
	},
	{
		emotion:   EmotionCurious,
		keywords:  []string{"interesting", "curious", "wonder", "tell me more", "learn", "know"},
		threshold: 1, divisor: 2, delta: 0.1,
	},
}

// AnalyzeSentiment scores text with substring keyword buckets. Keywords match
// anywhere, so "know" also counts inside "knowledge".
func AnalyzeSentiment(text string) models.Sentiment {
	lower := strings.ToLower(text)

	var score float64
	emotions := []models.Emotion{}
	for _, b := range emotionBuckets {
		n := 0
		for _, kw := range b.keywords {
			if strings.Contains(lower, kw) {
				n++
			}
		}
		if n < b.threshold {
			continue
		}
		emotions = append(emotions, models.Emotion{
			Type:      b.emotion,
			Count:     n,
			Intensity: math.Min(float64(n)/b.divisor, 1),
		})
		score += float64(n) * b.delta
	}

	score = math.Max(-1, math.Min(1, score))

	label := SentimentNeutral
	switch {
	case score > 0.3:
		label = SentimentPositive
	case score < -0.3:
		label = SentimentNegative
	case len(emotions) > 1:
		label = SentimentMixed
	}

	primary := EmotionNeutral
	if len(emotions) > 0 {
		ranked := append([]models.Emotion(nil), emotions...)
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Intensity > ranked[j].Intensity })
		primary = ranked[0].Type
	}

	return models.Sentiment{
		Sentiment:  label,
		Score:      score,
		Emotion:    primary,
		Emotions:   emotions,
		Confidence: math.Abs(score),
	}
}
