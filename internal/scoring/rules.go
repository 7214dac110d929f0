// internal/scoring/rules.go
package scoring

import (
	"math"
	"regexp"
	"strings"
	"time"
)

var (
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	poBoxPattern = regexp.MustCompile(`(?i)p\.?o\.?\s*box`)
	digitPattern = regexp.MustCompile(`\d`)
	testNameRe   = regexp.MustCompile(`(?i)test|fake|asdf|qwerty`)
	mobileUARe   = regexp.MustCompile(`Mobile|Android|iPhone`)
)

const yearMillis = 365.25 * 24 * 60 * 60 * 1000

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"2006/01/02",
}

// parseDate accepts the date shapes browsers submit for date inputs.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ageAt returns whole years between dob and now using a 365.25-day year.
// ok is false when dob does not parse.
func ageAt(dob string, now time.Time) (age int, ok bool) {
	t, ok := parseDate(dob)
	if !ok {
		return 0, false
	}
	elapsed := float64(now.UnixMilli() - t.UnixMilli())
	return int(math.Floor(elapsed / yearMillis)), true
}

// repeatedDigits reports a run of two or more identical digits and nothing else.
func repeatedDigits(digits string) bool {
	if len(digits) < 2 {
		return false
	}
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

// round matches half-up rounding of displayed scores.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func runeLen(s string) int {
	return len([]rune(s))
}
