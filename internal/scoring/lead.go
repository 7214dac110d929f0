// internal/scoring/lead.go
package scoring

import (
	"math"
	"strings"

	"enrollment-workers/internal/common/clock"
	"enrollment-workers/internal/models"
)

// Factor names as shown on the lead dashboard.
const (
	FactorCompleteness   = "Data Completeness"
	FactorEmailQuality   = "Email Quality"
	FactorPhoneQuality   = "Phone Quality"
	FactorAgeDemographic = "Age Demographic"
	FactorLocation       = "Location Quality"
	FactorConsistency    = "Data Consistency"
	FactorCompletionTime = "Completion Time"
	FactorTrafficSource  = "Traffic Source"
	FactorDeviceType     = "Device Type"
	FactorOverallQuality = "Overall Data Quality"
)

type leadBand struct {
	min            float64
	grade          string
	recommendation string
}

// Bands are checked against the unrounded total.
var leadBands = []leadBand{
	{90, "A+", "Excellent lead! High priority for immediate follow-up. Strong conversion potential."},
	{85, "A", "High-quality lead. Follow up within 1 hour for best results."},
	{80, "B+", "Good lead quality. Follow up within 4 hours."},
	{75, "B", "Solid lead. Follow up within 24 hours."},
	{70, "C+", "Average lead. Follow up within 48 hours."},
	{65, "C", "Fair lead. May require nurturing before conversion."},
	{60, "D", "Below-average lead. Review data for quality issues."},
	{math.Inf(-1), "F", "Poor lead quality. Likely requires verification before follow-up."},
}

// LeadScorer rates how promising an applicant is for follow-up.
type LeadScorer struct {
	clock  clock.Clock
	tables Tables
}

func NewLeadScorer(c clock.Clock, tables Tables) *LeadScorer {
	return &LeadScorer{clock: c, tables: tables}
}

// Score sums the ten factors. quality is the data-quality report for the same
// record; it feeds the consistency and overall-quality factors.
func (s *LeadScorer) Score(rec models.ApplicantRecord, quality models.QualityReport) models.LeadReport {
	var (
		total   float64
		factors []models.Factor
	)
	add := func(name string, score float64, max int, status string) {
		total += score
		factors = append(factors, models.Factor{Name: name, Score: round(score), Max: max, Status: status})
	}

	completeness := float64(2 * rec.FilledFields())
	add(FactorCompleteness, completeness, 20, tier(completeness, 18, 14, "needs improvement"))

	if rec.Email != "" {
		v := float64(s.emailQuality(rec.Email))
		add(FactorEmailQuality, v, 10, tier(v, 9, 7, "fair"))
	}

	if rec.Phone != "" {
		v := float64(s.phoneQuality(rec.Phone))
		add(FactorPhoneQuality, v, 10, tier(v, 9, 6, "suspicious"))
	}

	if rec.DateOfBirth != "" {
		v := float64(s.ageDemographic(rec.DateOfBirth))
		add(FactorAgeDemographic, v, 10, tier(v, 9, 7, "fair"))
	}

	if rec.State != "" && rec.ZipCode != "" {
		v := 8.0
		if contains(s.tables.HighDemandStates, rec.State) {
			v = 10
		}
		add(FactorLocation, v, 10, "good")
	}

	consistency := math.Max(0, 10-3*float64(len(quality.SuspiciousFields)))
	add(FactorConsistency, consistency, 10, tier(consistency, 9, 6, "needs review"))

	timing := float64(s.completionTime(rec.StartTime))
	add(FactorCompletionTime, timing, 10, tier(timing, 9, 6, "unusual"))

	source := 3.0
	if rec.Referrer != "" {
		source = 4
		if strings.Contains(rec.Referrer, "google") {
			source = 5
		}
	}
	add(FactorTrafficSource, source, 5, "good")

	device := 5.0
	if mobileUARe.MatchString(rec.UserAgent) {
		device = 4
	}
	add(FactorDeviceType, device, 5, "good")

	overall := math.Min(10, float64(quality.Score)/10)
	add(FactorOverallQuality, overall, 10, tier(overall, 9, 7, "fair"))

	band := leadBandFor(total)
	return models.LeadReport{
		Score:          round(total),
		Grade:          band.grade,
		Factors:        factors,
		Recommendation: band.recommendation,
	}
}

func (s *LeadScorer) emailQuality(email string) int {
	parts := strings.Split(strings.ToLower(email), "@")
	domain := ""
	if len(parts) > 1 {
		domain = parts[1]
	}
	switch {
	case contains(s.tables.FreeEmailProviders, domain):
		return 10
	case strings.Contains(domain, "."):
		return 8
	default:
		return 5
	}
}

func (s *LeadScorer) phoneQuality(phone string) int {
	digits := models.DigitsOnly(phone)
	if len(digits) != 10 {
		return 5
	}
	area := digits[:3]
	switch {
	case contains(s.tables.TollFreeAreaCodes, area):
		return 3
	case area == "555":
		return 2
	default:
		return 10
	}
}

func (s *LeadScorer) ageDemographic(dob string) int {
	age, ok := ageAt(dob, s.clock.Now())
	switch {
	case ok && age >= 25 && age <= 65:
		return 10
	case ok && age >= 18 && age <= 75:
		return 8
	default:
		return 5
	}
}

// completionTime scores how long the form took. A missing start time is
// treated as unusual rather than as a bot.
func (s *LeadScorer) completionTime(startMillis int64) int {
	if startMillis <= 0 {
		return 5
	}
	minutes := float64(clock.NowMillis(s.clock)-startMillis) / 1000 / 60
	switch {
	case minutes < 1:
		return 3
	case minutes >= 2 && minutes <= 10:
		return 10
	case minutes <= 20:
		return 8
	default:
		return 5
	}
}

func tier(v, excellent, good float64, low string) string {
	switch {
	case v >= excellent:
		return "excellent"
	case v >= good:
		return "good"
	default:
		return low
	}
}

func leadBandFor(total float64) leadBand {
	for _, b := range leadBands {
		if total >= b.min {
			return b
		}
	}
	return leadBands[len(leadBands)-1]
}

// LeadPriority buckets a lead grade into the routing priority used by the
// notification and CRM workers.
func LeadPriority(grade string) string {
	switch grade {
	case "A+", "A":
		return models.PriorityHot
	case "B+", "B", "C+":
		return models.PriorityWarm
	default:
		return models.PriorityCold
	}
}
