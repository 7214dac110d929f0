// internal/workers/enrollment/notify-enrollment/templates.go
package notifyenrollment

import (
	"fmt"
	"strings"
)

const defaultApplicantName = "there"

type template struct {
	subject string
	body    string
}

var templates = map[string]template{
	TypeHotLead: {
		subject: "Hot lead: {{name}} ({{grade}})",
		body: "New {{priority}} enrollment {{enrollmentId}}.\n" +
			"Name: {{name}}\nPhone: {{phone}}\nEmail: {{email}}\nLocation: {{city}}, {{state}}\n" +
			"Lead score: {{score}} ({{grade}}). Call within 5 minutes.",
	},
	TypeConfirmation: {
		subject: "Your enrollment is in",
		body: "Hi {{firstName}},\n\nThanks for enrolling. Your reference number is {{enrollmentId}}. " +
			"A credit specialist will reach out within one business day.",
	},
	TypeOnCallPage: {
		body: "{{grade}} lead {{name}} {{phone}} ({{state}}), enrollment {{enrollmentId}}",
	},
	TypeChatEscalation: {
		body: "Chat {{sessionId}} needs a human: {{reason}}. Contact {{name}} {{phone}}",
	},
}

// renderTemplate replaces {{key}} placeholders; unknown placeholders render empty.
func renderTemplate(tmpl string, data map[string]interface{}) string {
	result := tmpl
	for k, v := range data {
		value := ""
		if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		result = strings.ReplaceAll(result, "{{"+k+"}}", value)
	}

	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		result = result[:start] + result[start+end+2:]
	}
	return result
}

func templateData(input *Input) map[string]interface{} {
	a := input.Applicant
	name := strings.TrimSpace(a.FirstName + " " + a.LastName)
	firstName := a.FirstName
	if firstName == "" {
		firstName = defaultApplicantName
	}
	return map[string]interface{}{
		"enrollmentId": input.EnrollmentID,
		"name":         name,
		"firstName":    firstName,
		"phone":        a.Phone,
		"email":        a.Email,
		"city":         a.City,
		"state":        a.State,
		"score":        input.LeadScore.Score,
		"grade":        input.LeadScore.Grade,
		"priority":     input.Priority,
		"sessionId":    input.SessionID,
		"reason":       input.EscalationReason,
	}
}
