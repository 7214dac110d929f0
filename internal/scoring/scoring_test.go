// internal/scoring/scoring_test.go
package scoring

import (
	"time"

	"enrollment-workers/internal/common/clock"
	"enrollment-workers/internal/models"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func testClock() clock.Clock { return clock.Fixed(testNow) }

func millisAgo(d time.Duration) int64 {
	return testNow.Add(-d).UnixMilli()
}

// goodRecord is a complete, plausible applicant.
func goodRecord() models.ApplicantRecord {
	return models.ApplicantRecord{
		FirstName:   "John",
		LastName:    "Smith",
		Email:       "john.smith@gmail.com",
		Phone:       "(312) 555-0147",
		Address:     "123 Main Street",
		City:        "Chicago",
		State:       "IL",
		ZipCode:     "60601",
		DateOfBirth: "1985-04-12",
		SSN:         "234-56-7890",
		StartTime:   millisAgo(5 * time.Minute),
		Referrer:    "https://www.google.com/search?q=credit+repair",
		UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
	}
}

// suspiciousRecord trips most of the data-quality and fraud rules at once.
func suspiciousRecord() models.ApplicantRecord {
	return models.ApplicantRecord{
		FirstName:   "A",
		LastName:    "A",
		Email:       "x@tempmail.com",
		Phone:       "5555551234",
		DateOfBirth: "2009-01-01",
		SSN:         "123456789",
	}
}

func factorByName(t interface{ Fatalf(string, ...any) }, r models.LeadReport, name string) models.Factor {
	for _, f := range r.Factors {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("factor %q not present", name)
	return models.Factor{}
}
