// internal/assistant/messages.go
package assistant

import "fmt"

// Canned bot messages that are not replies to a user message.

func welcomeText(assistantName string) string {
	return fmt.Sprintf("👋 Hi! I'm the %s. I'm here to help you through the credit report enrollment process.\n\n"+
		"The process takes just 3-5 minutes, and your credit report is 100%% FREE. I can answer any questions you have along the way!\n\n"+
		"What would you like to know?", assistantName)
}

var welcomeReplies = []string{
	"How does this work?",
	"Is this secure?",
	"Will this affect my credit?",
	"How long does it take?",
}

const escalationText = "I notice you might need additional help. Would you like me to connect you with a team member who can assist you directly? They can answer complex questions and provide personalized guidance."

var escalationReplies = []string{"Yes, connect me", "No, I'm okay", "Call me instead"}

const proactiveText = "Still there? 😊 Let me know if you have any questions! I'm here to help."

var proactiveReplies = []string{"I have a question", "I'm good, thanks", "Call me instead"}
