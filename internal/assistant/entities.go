// internal/assistant/entities.go
package assistant

import (
	"regexp"
	"strings"

	"enrollment-workers/internal/models"
)

var (
	phoneEntityRe  = regexp.MustCompile(`\d{3}[-.]?\d{3}[-.]?\d{4}`)
	emailEntityRe  = regexp.MustCompile(`[a-zA-Z0-9._-]+@[a-zA-Z0-9._-]+\.[a-zA-Z0-9_-]+`)
	amountEntityRe = regexp.MustCompile(`\$[0-9,]+`)
	dateEntityRe   = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}|\d{4}-\d{2}-\d{2}`)
	timeframeRe    = regexp.MustCompile(`(?i)today|tomorrow|this week|next week|asap`)

	amountStripper = strings.NewReplacer("$", "", ",", "")
)

// Checked in order; the last one present in the message wins.
var accountTypes = []string{"credit card", "loan", "mortgage", "collection", "charge-off", "inquiry"}

// ExtractEntities pulls contact details, amounts, dates and credit vocabulary
// out of a chat message.
func ExtractEntities(text string) models.Entities {
	var e models.Entities

	e.Phones = phoneEntityRe.FindAllString(text, -1)
	e.Emails = emailEntityRe.FindAllString(text, -1)
	for _, a := range amountEntityRe.FindAllString(text, -1) {
		e.Amounts = append(e.Amounts, amountStripper.Replace(a))
	}
	e.Dates = dateEntityRe.FindAllString(text, -1)

	lower := strings.ToLower(text)
	for _, t := range accountTypes {
		if strings.Contains(lower, t) {
			e.AccountType = t
		}
	}

	e.Timeframe = timeframeRe.FindString(text)
	return e
}
