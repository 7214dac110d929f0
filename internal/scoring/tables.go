// Package scoring implements the rule-based applicant checks run during
// enrollment: field validation, data-quality grading, lead scoring and fraud
// detection. Every scorer is a pure function of the record and the clock.
package scoring

import (
	"strings"

	"enrollment-workers/internal/common/config"
)

// Tables holds the static lookup data the rules consult. The lists are small
// and deliberately incomplete, so they are configurable rather than coded
// into the rules.
type Tables struct {
	// Substrings that mark a throwaway mailbox for data-quality grading.
	QualityDisposableMarkers []string
	// Substrings that mark a throwaway mailbox for fraud detection.
	FraudDisposableMarkers []string
	// Digit strings the data-quality grader treats as fake SSNs.
	QualityInvalidSSNs []string
	// Digit strings the fraud detector rejects outright.
	FraudInvalidSSNs []string
	// SSN prefixes that are never issued.
	UnissuedSSNPrefixes []string

	FreeEmailProviders []string
	TollFreeAreaCodes  []string
	HighDemandStates   []string
	USStates           []string
}

// DefaultTables returns the built-in rule data.
func DefaultTables() Tables {
	return Tables{
		QualityDisposableMarkers: []string{"tempmail", "guerrillamail", "10minutemail", "throwaway"},
		FraudDisposableMarkers:   []string{"tempmail", "guerrillamail", "10minutemail", "throwaway", "mailinator"},
		QualityInvalidSSNs: []string{
			"000000000", "111111111", "222222222", "333333333", "444444444",
			"555555555", "666666666", "777777777", "888888888", "999999999",
			"123456789",
		},
		FraudInvalidSSNs:    []string{"000000000", "111111111", "222222222", "123456789", "987654321"},
		UnissuedSSNPrefixes: []string{"000", "666", "9"},
		FreeEmailProviders:  []string{"gmail.com", "yahoo.com", "outlook.com", "hotmail.com", "icloud.com"},
		TollFreeAreaCodes:   []string{"800", "888", "877", "866", "855", "844", "833"},
		HighDemandStates:    []string{"CA", "TX", "FL", "NY", "IL", "PA", "OH", "GA", "NC", "MI"},
		USStates: []string{
			"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
			"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
			"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
			"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
			"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
		},
	}
}

// TablesFromConfig starts from the defaults and replaces every list the
// configuration sets.
func TablesFromConfig(cfg config.ScoringConfig) Tables {
	t := DefaultTables()
	override(&t.QualityDisposableMarkers, cfg.DisposableEmailMarkers)
	override(&t.FraudDisposableMarkers, cfg.FraudDisposableEmailMarkers)
	override(&t.QualityInvalidSSNs, cfg.InvalidSSNs)
	override(&t.FraudInvalidSSNs, cfg.FraudInvalidSSNs)
	override(&t.FreeEmailProviders, cfg.FreeEmailProviders)
	override(&t.TollFreeAreaCodes, cfg.TollFreeAreaCodes)
	override(&t.HighDemandStates, cfg.HighDemandStates)
	return t
}

func override(dst *[]string, src []string) {
	if len(src) > 0 {
		*dst = append([]string(nil), src...)
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
