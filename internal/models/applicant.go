// internal/models/applicant.go
package models

import "strings"

// Applicant field names as they appear on the enrollment form and in job variables.
const (
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldAddress     = "address"
	FieldCity        = "city"
	FieldState       = "state"
	FieldZipCode     = "zipCode"
	FieldDateOfBirth = "dateOfBirth"
	FieldSSN         = "ssn"
)

// IdentityFields lists the ten required enrollment fields in form order.
var IdentityFields = []string{
	FieldFirstName, FieldLastName, FieldEmail, FieldPhone,
	FieldAddress, FieldCity, FieldState, FieldZipCode,
	FieldDateOfBirth, FieldSSN,
}

// ApplicantRecord is one snapshot of the enrollment form plus the session
// metadata captured when the wizard was opened.
type ApplicantRecord struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	DateOfBirth string `json:"dateOfBirth"`
	SSN         string `json:"ssn"`

	StartTime int64  `json:"startTime,omitempty"` // epoch milliseconds
	Referrer  string `json:"referrer,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

// Field returns the raw value of a named identity field, or "" for unknown names.
func (r ApplicantRecord) Field(name string) string {
	switch name {
	case FieldFirstName:
		return r.FirstName
	case FieldLastName:
		return r.LastName
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	case FieldAddress:
		return r.Address
	case FieldCity:
		return r.City
	case FieldState:
		return r.State
	case FieldZipCode:
		return r.ZipCode
	case FieldDateOfBirth:
		return r.DateOfBirth
	case FieldSSN:
		return r.SSN
	}
	return ""
}

// FilledFields counts identity fields that are non-blank after trimming.
func (r ApplicantRecord) FilledFields() int {
	n := 0
	for _, f := range IdentityFields {
		if strings.TrimSpace(r.Field(f)) != "" {
			n++
		}
	}
	return n
}

// SSNLast4 returns the last four digits of the SSN, used for duplicate
// detection without storing the full number in lookups.
func (r ApplicantRecord) SSNLast4() string {
	digits := DigitsOnly(r.SSN)
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// DigitsOnly strips every non-digit rune.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
