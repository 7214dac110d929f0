// internal/scoring/fraud.go
package scoring

import (
	"strings"

	"enrollment-workers/internal/common/clock"
	"enrollment-workers/internal/models"
)

// FieldTiming is the pseudo-field reported for submission-speed warnings.
const FieldTiming = "timing"

// minFillMillis is the fastest plausible human completion of the form.
const minFillMillis = 30_000

// FraudDetector flags records that look automated, fabricated or ineligible.
type FraudDetector struct {
	clock  clock.Clock
	tables Tables
}

func NewFraudDetector(c clock.Clock, tables Tables) *FraudDetector {
	return &FraudDetector{clock: c, tables: tables}
}

// Detect returns warnings in check order. An empty slice means nothing was found.
func (d *FraudDetector) Detect(rec models.ApplicantRecord) []models.FraudWarning {
	warnings := []models.FraudWarning{}
	warn := func(sev models.Severity, field, msg string) {
		warnings = append(warnings, models.FraudWarning{Severity: sev, Message: msg, Field: field})
	}

	if rec.StartTime > 0 && clock.NowMillis(d.clock)-rec.StartTime < minFillMillis {
		warn(models.SeverityWarning, FieldTiming, "Form completed very quickly. May indicate automated submission.")
	}

	if rec.FirstName != "" && rec.LastName != "" {
		if strings.EqualFold(rec.FirstName, rec.LastName) {
			warn(models.SeverityError, "name", "First and last name are identical. Please verify.")
		}
		if testNameRe.MatchString(rec.FirstName + rec.LastName) {
			warn(models.SeverityError, "name", "Name appears to be test data. Please use real information.")
		}
	}

	if rec.Email != "" && containsAny(strings.ToLower(rec.Email), d.tables.FraudDisposableMarkers) {
		warn(models.SeverityError, models.FieldEmail, "Temporary email detected. Please use a permanent email address.")
	}

	if rec.Phone != "" {
		digits := models.DigitsOnly(rec.Phone)
		if repeatedDigits(digits) {
			warn(models.SeverityError, models.FieldPhone, "Phone number contains repeated digits. Please verify.")
		}
		if strings.HasPrefix(digits, "555") {
			warn(models.SeverityWarning, models.FieldPhone, "Phone number may be fictional. Please provide a real number.")
		}
	}

	if rec.SSN != "" && contains(d.tables.FraudInvalidSSNs, models.DigitsOnly(rec.SSN)) {
		warn(models.SeverityError, models.FieldSSN, "SSN appears invalid. Please verify your Social Security Number.")
	}

	if rec.DateOfBirth != "" {
		if age, ok := ageAt(rec.DateOfBirth, d.clock.Now()); ok {
			switch {
			case age < 18:
				warn(models.SeverityError, models.FieldDateOfBirth, "Must be 18 or older to enroll.")
			case age > 100:
				warn(models.SeverityWarning, models.FieldDateOfBirth, "Please verify your date of birth.")
			}
		}
	}

	return warnings
}

// Blocked reports whether any warning must stop submission.
func Blocked(warnings []models.FraudWarning) bool {
	for _, w := range warnings {
		if w.Severity == models.SeverityError {
			return true
		}
	}
	return false
}
