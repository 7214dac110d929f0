// internal/assistant/responder.go
package assistant

import (
	"fmt"

	"enrollment-workers/internal/models"
)

// EscalationUserRequested is reported when the user asks for a person.
const EscalationUserRequested = "user_requested"

const maxFollowUps = 4

// Request is everything the responder may look at for one user message.
type Request struct {
	Text      string
	Intent    models.Intent
	Entities  models.Entities
	Sentiment models.Sentiment
	// Context after this message has been merged in.
	Context models.ConversationContext
	// Frustration level before this message was processed.
	Frustration int
	// Wizard step the user is on.
	Step int
}

// Response is the bot reply for one message.
type Response struct {
	Text             string
	QuickReplies     []string
	RichCards        []models.RichCard
	Related          []Match
	EscalationReason string
}

type responseFunc func(r *Responder, req Request) Response

// Responder turns a classified message into a canned reply.
type Responder struct {
	assistantName string
	kb            *KnowledgeBase
	handlers      map[string]responseFunc
}

func NewResponder(assistantName string, kb *KnowledgeBase) *Responder {
	return &Responder{
		assistantName: assistantName,
		kb:            kb,
		handlers: map[string]responseFunc{
			IntentGreeting:             greetingResponse,
			IntentQuestionDuration:     durationResponse,
			IntentSecurityConcern:      securityResponse,
			IntentSensitiveDataConcern: securityResponse,
			IntentCreditImpactConcern:  creditImpactResponse,
			IntentQuestionPricing:      pricingResponse,
			IntentRequestHelp:          helpResponse,
			IntentComplaint:            complaintResponse,
			IntentPositiveFeedback:     positiveFeedbackResponse,
			IntentRequestHuman:         requestHumanResponse,
			IntentScheduleCallback:     callbackResponse,
			IntentResultsInquiry:       resultsResponse,
			IntentQuestionDefinition:   definitionResponse,
		},
	}
}

// Generate builds the reply for req. Intents without a dedicated handler fall
// back to a knowledge-base search over the message text.
func (r *Responder) Generate(req Request) Response {
	h, ok := r.handlers[req.Intent.Type]
	if !ok {
		h = searchResponse
	}
	resp := h(r, req)

	if len(resp.QuickReplies) == 0 && len(req.Context.Topics) > 0 {
		resp.QuickReplies = FollowUpSuggestions(req.Step)
	}
	return resp
}

// FollowUpSuggestions returns the step-specific prompts offered when a reply
// has no quick replies of its own.
func FollowUpSuggestions(step int) []string {
	var s []string
	switch step {
	case 0:
		s = append(s, "How long does this take?", "Is this secure?")
	case 1:
		s = append(s, "Why do you need my SSN?", "Will this hurt my credit?")
	case 2:
		s = append(s, "What happens after I submit?", "How do I get my report?")
	}
	s = append(s, "Talk to a person", "Start over")
	if len(s) > maxFollowUps {
		s = s[:maxFollowUps]
	}
	return s
}

func greetingResponse(r *Responder, _ Request) Response {
	return Response{
		Text: fmt.Sprintf("Hi! 👋 I'm the %s. I'm here to help you through the credit report enrollment process. What questions can I answer for you?", r.assistantName),
		QuickReplies: []string{
			"How long does this take?",
			"Is this secure?",
			"What is IDIQ?",
			"Will this hurt my credit?",
		},
	}
}

func durationResponse(_ *Responder, _ Request) Response {
	return Response{
		Text: "The entire enrollment process takes just 3-5 minutes! Most people complete it in under 5 minutes. You can also save your progress and come back later if needed. Would you like me to walk you through what each step involves?",
		QuickReplies: []string{
			"Yes, explain each step",
			"No, I'm ready to start",
			"How do I save progress?",
		},
	}
}

// SecurityCard lists the data protections shown next to security answers.
var SecurityCard = models.RichCard{
	Type:  "security",
	Title: "🔒 Bank-Level Security",
	Items: []string{"256-bit Encryption", "SSL Secure Connection", "FCRA Compliant", "Zero Data Sharing"},
}

func securityResponse(r *Responder, _ Request) Response {
	article, _ := r.kb.Article("kb101")
	return Response{
		Text: article.Content + "\n\nYour data is protected by the same security banks use. We're also fully compliant with FCRA and GLBA federal regulations.",
		QuickReplies: []string{
			"What laws protect my data?",
			"Who can see my information?",
			"Can I delete my data later?",
		},
		RichCards: []models.RichCard{SecurityCard},
	}
}

func creditImpactResponse(_ *Responder, _ Request) Response {
	return Response{
		Text: "Great question! This will NOT affect your credit score at all. This is a \"soft pull\" which is like checking your own credit - completely harmless. Only \"hard inquiries\" (when you apply for new credit) can affect your score.\n\n" +
			"Soft pulls don't show up on your credit report to lenders and have zero impact. You could do this 100 times and your score wouldn't change!",
		QuickReplies: []string{
			"What's a soft pull?",
			"What's a hard inquiry?",
			"Will lenders see this?",
		},
	}
}

func pricingResponse(_ *Responder, _ Request) Response {
	return Response{
		Text: "This credit report is 100% FREE - no credit card required! 🎉\n\n" +
			"Seriously, there's no catch. We want you to see what's on your credit report so you can make informed decisions. If you later decide you want help with credit repair, that's a separate service. But this report? Totally free.",
		QuickReplies: []string{
			"Why is it free?",
			"What's the catch?",
			"What about credit repair costs?",
		},
	}
}

func helpResponse(_ *Responder, _ Request) Response {
	return Response{
		Text: "I'm here to help! What specifically are you having trouble with? You can ask me about:\n\n" +
			"• How the process works\n• Security and privacy\n• What information you need\n• What happens after you submit\n• Anything else!\n\n" +
			"What would be most helpful?",
		QuickReplies: []string{
			"Explain the process",
			"Why do you need my SSN?",
			"What happens after I submit?",
			"Talk to a person",
		},
	}
}

func complaintResponse(_ *Responder, req Request) Response {
	text := "I can tell you're frustrated, and I'm really sorry about that! 😟 Let me help you get through this as quickly as possible. What specific part is giving you trouble? I can walk you through it step by step, or I can connect you with a team member who can help over the phone."
	if req.Frustration >= 2 {
		text += "\n\n💡 Would you prefer to speak with someone directly? I can have our team call you right away."
	}
	return Response{
		Text: text,
		QuickReplies: []string{
			"Walk me through it",
			"Call me instead",
			"Start over",
			"Talk to a person",
		},
	}
}

func positiveFeedbackResponse(_ *Responder, _ Request) Response {
	return Response{
		Text: "I'm so glad I could help! 😊 Is there anything else you'd like to know before you continue?",
		QuickReplies: []string{
			"No, I'm ready to continue",
			"Yes, one more question",
			"Review everything",
		},
	}
}

func requestHumanResponse(_ *Responder, _ Request) Response {
	return Response{
		Text: "Of course! I'd be happy to connect you with a team member. Would you prefer:\n\n" +
			"📞 Phone call (immediate)\n📧 Email response (within 1 hour)\n💬 Live chat (2-3 minute wait)\n\n" +
			"What works best for you?",
		QuickReplies: []string{
			"📞 Call me now",
			"📧 Email me",
			"💬 Live chat",
		},
		EscalationReason: EscalationUserRequested,
	}
}

func callbackResponse(_ *Responder, _ Request) Response {
	return Response{
		Text: "I can schedule a callback for you! When would be the best time to reach you?\n\n" +
			"Our team is available:\n🕐 Monday-Friday: 9 AM - 6 PM EST\n🕐 Saturday: 10 AM - 4 PM EST",
		QuickReplies: []string{
			"Today",
			"Tomorrow",
			"This week",
			"Choose specific time",
		},
	}
}

func resultsResponse(r *Responder, _ Request) Response {
	article, _ := r.kb.Article("kb002")
	return Response{
		Text: article.Content,
		QuickReplies: []string{
			"How long to get report?",
			"What's in the report?",
			"What happens in consultation?",
		},
	}
}

func definitionResponse(r *Responder, req Request) Response {
	resp := Response{
		Text: "I want to make sure I give you the right information. Could you rephrase your question or be more specific about what you'd like to know?",
		QuickReplies: []string{
			"Yes, that helps!",
			"Tell me more",
			"I have another question",
		},
	}
	if results := r.kb.Search(req.Text); len(results) > 0 {
		resp.Text = results[0].Content + "\n\nDoes this answer your question?"
		resp.Related = results[1:min(len(results), 4)]
	}
	return resp
}

func searchResponse(r *Responder, req Request) Response {
	results := r.kb.Search(req.Text)
	if len(results) == 0 {
		return Response{
			Text: "I'm not entirely sure I understand. Could you rephrase that? Or pick from these common questions:",
			QuickReplies: []string{
				"How long does this take?",
				"Is my data secure?",
				"Will this affect my credit?",
				"Talk to a person",
			},
		}
	}
	return Response{
		Text:    "I think this might help: " + results[0].Content,
		Related: results[1:],
	}
}
