// internal/assistant/intent.go
package assistant

import (
	"regexp"
	"sort"
	"strings"

	"enrollment-workers/internal/models"
)

// Intent types recognised by the classifier.
const (
	IntentGreeting             = "greeting"
	IntentQuestion             = "question"
	IntentQuestionDuration     = "question_duration"
	IntentQuestionPricing      = "question_pricing"
	IntentQuestionDefinition   = "question_definition"
	IntentSecurityConcern      = "security_concern"
	IntentSensitiveDataConcern = "sensitive_data_concern"
	IntentCreditImpactConcern  = "credit_impact_concern"
	IntentRequestHelp          = "request_help"
	IntentComplaint            = "complaint"
	IntentPositiveFeedback     = "positive_feedback"
	IntentRequestHuman         = "request_human"
	IntentScheduleCallback     = "schedule_callback"
	IntentCancel               = "cancel"
	IntentTechnicalIssue       = "technical_issue"
	IntentDisputeInquiry       = "dispute_inquiry"
	IntentResultsInquiry       = "results_inquiry"
	IntentGeneralInquiry       = "general_inquiry"
)

type intentRule struct {
	intent     string
	pattern    *regexp.Regexp
	confidence float64
	// sub rules are only tried when pattern matched
	sub []intentRule
}

func rule(intent, pattern string, confidence float64, sub ...intentRule) intentRule {
	return intentRule{intent: intent, pattern: regexp.MustCompile(pattern), confidence: confidence, sub: sub}
}

// Patterns run against the lower-cased message, in declaration order.
var intentRules = []intentRule{
	rule(IntentGreeting, `^(hi|hello|hey|good morning|good afternoon|good evening)`, 0.95),
	rule(IntentQuestion, `(how (long|much)|what (is|are)|when|where|why)`, 0.9,
		rule(IntentQuestionDuration, `how (long|much time)`, 0.9),
		rule(IntentQuestionPricing, `how much|cost|price|fee|charge`, 0.9),
		rule(IntentQuestionDefinition, `what (is|are).*(idiq|credit bureau|report)`, 0.85),
	),
	rule(IntentSecurityConcern, `(secure|safe|privacy|protect|steal|scam|legit|trust)`, 0.9),
	rule(IntentSensitiveDataConcern, `(ssn|social security|sensitive|personal info)`, 0.95),
	rule(IntentCreditImpactConcern, `(affect|hurt|damage|impact).*(credit|score)`, 0.9),
	rule(IntentRequestHelp, `(help|assist|support|stuck|confused|don't understand)`, 0.85),
	rule(IntentComplaint, `(frustrated|annoying|difficult|complicated|terrible|awful|worst)`, 0.9),
	rule(IntentPositiveFeedback, `(thank|thanks|appreciate|great|awesome|excellent|perfect|love)`, 0.9),
	rule(IntentRequestHuman, `(talk to|speak with|real person|human|agent|representative)`, 0.95),
	rule(IntentScheduleCallback, `(call me|call back|schedule|appointment)`, 0.9),
	rule(IntentCancel, `(cancel|quit|stop|nevermind|never mind|forget it)`, 0.85),
	rule(IntentTechnicalIssue, `(error|broken|not working|bug|problem|issue)`, 0.85),
	rule(IntentDisputeInquiry, `(dispute|remove|delete|fix|repair|challenge)`, 0.8),
	rule(IntentResultsInquiry, `(result|outcome|happen|after|next|then)`, 0.8),
}

// ClassifyAll returns every matching intent ranked by confidence. Equal
// confidences keep declaration order, except that sub-intents precede the
// rule they refine. A message that matches nothing yields a
// single general_inquiry candidate.
func ClassifyAll(text string) []models.Intent {
	lower := strings.ToLower(text)

	var out []models.Intent
	var walk func(rules []intentRule)
	walk = func(rules []intentRule) {
		for _, r := range rules {
			if !r.pattern.MatchString(lower) {
				continue
			}
			// A matching sub-intent is more specific than its parent and
			// ranks ahead of it at equal confidence.
			walk(r.sub)
			out = append(out, models.Intent{Type: r.intent, Confidence: r.confidence})
		}
	}
	walk(intentRules)

	if len(out) == 0 {
		return []models.Intent{{Type: IntentGeneralInquiry, Confidence: 0.5}}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out
}

// ClassifyIntent returns the highest-confidence intent for text.
func ClassifyIntent(text string) models.Intent {
	return ClassifyAll(text)[0]
}
