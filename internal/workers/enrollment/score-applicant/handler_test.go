// internal/workers/enrollment/score-applicant/handler_test.go
package scoreapplicant

import (
	"context"
	"testing"
	"time"

	"enrollment-workers/internal/common/clock"
	"enrollment-workers/internal/common/logger"
	"enrollment-workers/internal/common/metrics"
	"enrollment-workers/internal/models"
	"enrollment-workers/internal/scoring"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) *Handler {
	engine := scoring.NewEngine(clock.Fixed(testNow), scoring.DefaultTables())
	return NewHandler(LoadConfig(), engine, logger.NewTestLogger(t))
}

func goodApplicant() models.ApplicantRecord {
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
		StartTime:   testNow.Add(-5 * time.Minute).UnixMilli(),
		Referrer:    "https://www.google.com/search?q=credit+repair",
		UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
	}
}

func TestHandler_Execute_HotLead(t *testing.T) {
	before := testutil.ToFloat64(metrics.EnrollmentScores.WithLabelValues("lead", "A+"))

	output, err := newTestHandler(t).Execute(context.Background(), &Input{Applicant: goodApplicant()})

	require.NoError(t, err)
	assert.Equal(t, 100, output.DataQuality.Score)
	assert.Equal(t, "A", output.DataQuality.Grade)
	assert.Equal(t, 100, output.LeadScore.Score)
	assert.Equal(t, "A+", output.LeadScore.Grade)
	assert.Empty(t, output.FraudWarnings)
	assert.False(t, output.SubmissionBlocked)
	assert.Equal(t, models.PriorityHot, output.Priority)

	after := testutil.ToFloat64(metrics.EnrollmentScores.WithLabelValues("lead", "A+"))
	assert.Equal(t, before+1, after)
}

func TestHandler_Execute_Suspicious(t *testing.T) {
	rec := models.ApplicantRecord{
		FirstName:   "A",
		LastName:    "A",
		Email:       "x@tempmail.com",
		Phone:       "5555551234",
		DateOfBirth: "2009-01-01",
		SSN:         "123456789",
	}

	output, err := newTestHandler(t).Execute(context.Background(), &Input{Applicant: rec})

	require.NoError(t, err)
	assert.Equal(t, 40, output.DataQuality.Score)
	assert.Equal(t, "F", output.DataQuality.Grade)
	assert.Equal(t, "F", output.LeadScore.Grade)
	assert.Len(t, output.FraudWarnings, 5)
	assert.True(t, output.SubmissionBlocked)
	assert.Equal(t, models.PriorityCold, output.Priority)
}

func TestHandler_Execute_EmptyRecord(t *testing.T) {
	output, err := newTestHandler(t).Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Equal(t, "F", output.DataQuality.Grade)
	assert.Equal(t, "F", output.LeadScore.Grade)
	assert.NotNil(t, output.FraudWarnings)
}

func TestInputSchema(t *testing.T) {
	assert.True(t, inputSchema.Validate(`{"applicant": {}}`).Valid)
	assert.False(t, inputSchema.Validate(`{"applicant": "John"}`).Valid)
}
