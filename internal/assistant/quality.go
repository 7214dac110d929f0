// internal/assistant/quality.go
package assistant

import "math"

// ConversationQuality rates a session from 0 to 100. Engagement, satisfaction,
// resolution and a low-frustration bonus are capped independently.
func ConversationQuality(s Session) int {
	engagement := math.Min(float64(s.MessageCount)/10*25, 25)
	satisfaction := float64(s.Satisfaction) / 100 * 30
	resolution := math.Min(float64(s.ProblemsSolved)*5, 25)
	calm := math.Max(20-float64(s.Frustration)*4, 0)
	return int(math.Floor(engagement + satisfaction + resolution + calm + 0.5))
}
