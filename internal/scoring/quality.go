// internal/scoring/quality.go
package scoring

import (
	"strings"

	"enrollment-workers/internal/common/clock"
	"enrollment-workers/internal/models"
)

// Category budgets. They sum to 100.
const (
	nameBudget    = 20
	emailBudget   = 15
	phoneBudget   = 15
	addressBudget = 20
	dobBudget     = 15
	ssnBudget     = 15
)

// QualityScorer grades how complete and plausible an applicant record looks.
type QualityScorer struct {
	clock  clock.Clock
	tables Tables
}

func NewQualityScorer(c clock.Clock, tables Tables) *QualityScorer {
	return &QualityScorer{clock: c, tables: tables}
}

// qualityPass collects findings while the categories are scored.
type qualityPass struct {
	score      float64
	issues     []string
	suggest    []string
	missing    []string
	suspicious []string
}

func (p *qualityPass) issue(msg string)      { p.issues = append(p.issues, msg) }
func (p *qualityPass) suggestion(msg string) { p.suggest = append(p.suggest, msg) }
func (p *qualityPass) flag(field string)     { p.suspicious = append(p.suspicious, field) }

// Score grades rec. It never fails: absent fields are reported as missing.
func (s *QualityScorer) Score(rec models.ApplicantRecord) models.QualityReport {
	p := &qualityPass{}

	s.scoreName(p, rec)
	s.scoreEmail(p, rec)
	s.scorePhone(p, rec)
	s.scoreAddress(p, rec)
	s.scoreDateOfBirth(p, rec)
	s.scoreSSN(p, rec)

	if p.score < 0 {
		p.score = 0
	}

	return models.QualityReport{
		Score:            round(p.score),
		Grade:            QualityGrade(p.score),
		Completeness:     round(float64(rec.FilledFields()) / float64(len(models.IdentityFields)) * 100),
		Issues:           nonNil(p.issues),
		Suggestions:      nonNil(p.suggest),
		MissingFields:    nonNil(p.missing),
		SuspiciousFields: nonNil(p.suspicious),
	}
}

func (s *QualityScorer) scoreName(p *qualityPass, rec models.ApplicantRecord) {
	if rec.FirstName == "" || rec.LastName == "" {
		p.missing = append(p.missing, "Full name")
		p.suggestion("Complete your full legal name")
		return
	}

	first := strings.TrimSpace(rec.FirstName)
	last := strings.TrimSpace(rec.LastName)

	if runeLen(first) >= 2 && runeLen(last) >= 2 {
		p.score += nameBudget
	} else {
		p.issue("Name appears too short")
		p.suggestion("Please verify your full legal name")
		p.flag("name")
		p.score += nameBudget * 0.5
	}

	if strings.EqualFold(first, last) {
		p.flag("name")
		p.issue("First and last name are identical")
	}
	if digitPattern.MatchString(first) || digitPattern.MatchString(last) {
		p.flag("name")
		p.issue("Name contains numbers")
	}
}

func (s *QualityScorer) scoreEmail(p *qualityPass, rec models.ApplicantRecord) {
	if rec.Email == "" {
		p.missing = append(p.missing, "Email")
		p.suggestion("Provide a valid email address")
		return
	}

	if !emailPattern.MatchString(rec.Email) {
		p.issue("Email format is invalid")
		p.suggestion("Use a valid email address (e.g., name@example.com)")
		p.score += 7
		return
	}

	p.score += emailBudget
	if containsAny(strings.ToLower(rec.Email), s.tables.QualityDisposableMarkers) {
		p.flag("email")
		p.issue("Email appears to be temporary")
		p.score -= 5
	}
}

func (s *QualityScorer) scorePhone(p *qualityPass, rec models.ApplicantRecord) {
	if rec.Phone == "" {
		p.missing = append(p.missing, "Phone")
		p.suggestion("Provide a 10-digit phone number")
		return
	}

	digits := models.DigitsOnly(rec.Phone)
	if len(digits) != 10 {
		p.issue("Phone number must be 10 digits")
		p.suggestion("Enter a valid US phone number")
		p.score += 7
		return
	}

	p.score += phoneBudget
	if repeatedDigits(digits) {
		p.flag("phone")
		p.issue("Phone number appears invalid (repeated digits)")
		p.score -= 5
	}
	if strings.HasPrefix(digits, "555") {
		p.flag("phone")
		p.issue("Phone number may be fictional")
	}
}

func (s *QualityScorer) scoreAddress(p *qualityPass, rec models.ApplicantRecord) {
	if rec.Address == "" || rec.City == "" || rec.State == "" || rec.ZipCode == "" {
		p.missing = append(p.missing, "Complete address")
		p.suggestion("Fill in all address fields")
		return
	}

	if runeLen(rec.Address) < 5 || runeLen(rec.City) < 2 {
		p.issue("Address information appears incomplete")
		p.suggestion("Provide complete street address and city")
		p.score += addressBudget * 0.5
		return
	}

	p.score += addressBudget
	if !zipPattern.MatchString(rec.ZipCode) {
		p.issue("ZIP code format is incorrect")
		p.suggestion("Use 5-digit ZIP code (e.g., 90210)")
		p.score -= 5
	}
	if poBoxPattern.MatchString(rec.Address) {
		p.issue("Address appears to be a PO Box")
		p.suggestion("Some services require a physical address")
	}
}

func (s *QualityScorer) scoreDateOfBirth(p *qualityPass, rec models.ApplicantRecord) {
	if rec.DateOfBirth == "" {
		p.missing = append(p.missing, "Date of birth")
		p.suggestion("Provide your date of birth")
		return
	}

	age, ok := ageAt(rec.DateOfBirth, s.clock.Now())
	switch {
	case ok && age >= 18 && age <= 120:
		p.score += dobBudget
	case ok && age < 18:
		p.issue("Must be 18 years or older")
		p.suggestion("You must be at least 18 to apply")
		p.flag(models.FieldDateOfBirth)
	default:
		p.issue("Date of birth appears invalid")
		p.suggestion("Please check your date of birth")
		p.flag(models.FieldDateOfBirth)
	}
}

func (s *QualityScorer) scoreSSN(p *qualityPass, rec models.ApplicantRecord) {
	if rec.SSN == "" {
		p.missing = append(p.missing, "SSN")
		p.suggestion("SSN is required for credit report verification")
		return
	}

	digits := models.DigitsOnly(rec.SSN)
	if len(digits) != 9 {
		p.issue("SSN must be 9 digits")
		p.suggestion("Provide your 9-digit Social Security Number")
		p.score += 7
		return
	}

	p.score += ssnBudget
	if contains(s.tables.QualityInvalidSSNs, digits) {
		p.flag(models.FieldSSN)
		p.issue("SSN appears invalid")
		p.score -= 10
	}
	if hasAnyPrefix(digits, s.tables.UnissuedSSNPrefixes) {
		p.flag(models.FieldSSN)
		p.issue("SSN format may be incorrect")
	}
}

// QualityGrade maps a data-quality score to A through F.
func QualityGrade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
