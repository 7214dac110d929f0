// internal/workers/enrollment/create-enrollment-record/handler_test.go
package createenrollmentrecord

import (
	"context"
	"database/sql"
	stderrors "errors"
	"testing"
	"time"

	"enrollment-workers/internal/common/clock"
	"enrollment-workers/internal/common/errors"
	"enrollment-workers/internal/common/logger"
	"enrollment-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

type fakeIndexer struct {
	docs []models.LeadDocument
	err  error
}

func (f *fakeIndexer) Index(_ context.Context, doc models.LeadDocument) error {
	if f.err != nil {
		return f.err
	}
	f.docs = append(f.docs, doc)
	return nil
}

func newTestHandler(t *testing.T, db *sql.DB, leads LeadIndexer) *Handler {
	h := NewHandler(LoadConfig(), db, leads, clock.Fixed(testNow), logger.NewTestLogger(t))
	h.newID = func() string { return "enr-0001" }
	return h
}

func hotInput() *Input {
	return &Input{
		Applicant: models.ApplicantRecord{
			FirstName:   "John",
			LastName:    "Smith",
			Email:       "John.Smith@Gmail.com",
			Phone:       "(312) 555-0147",
			Address:     "123 Main Street",
			City:        "Chicago",
			State:       "IL",
			ZipCode:     "60601",
			DateOfBirth: "1985-04-12",
			SSN:         "234-56-7890",
		},
		DataQuality: models.QualityReport{Score: 100, Grade: "A"},
		LeadScore:   models.LeadReport{Score: 100, Grade: "A+"},
		Priority:    models.PriorityHot,
	}
}

func expectDuplicateCheck(mock sqlmock.Sqlmock, exists bool) {
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("john.smith@gmail.com", "7890").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(exists))
}

func expectInsert(mock sqlmock.Sqlmock, status string) {
	mock.ExpectExec(`INSERT INTO enrollments`).
		WithArgs(
			"enr-0001", "john.smith@gmail.com", "7890", sqlmock.AnyArg(),
			100, "A", 100, "A+",
			models.PriorityHot, sqlmock.AnyArg(), status, "2025-06-15T12:00:00Z",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func codeOf(t *testing.T, err error) errors.ErrorCode {
	t.Helper()
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr), "expected StandardError, got %T", err)
	return stdErr.Code
}

func TestHandler_Execute_CreatesAndIndexes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectDuplicateCheck(mock, false)
	expectInsert(mock, models.EnrollmentStatusSubmitted)
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs("enrollment_created", "enrollment", "enr-0001", sqlmock.AnyArg(), "2025-06-15T12:00:00Z").
		WillReturnResult(sqlmock.NewResult(1, 1))

	leads := &fakeIndexer{}
	output, err := newTestHandler(t, db, leads).Execute(context.Background(), hotInput())

	require.NoError(t, err)
	assert.Equal(t, "enr-0001", output.EnrollmentID)
	assert.Equal(t, models.EnrollmentStatusSubmitted, output.EnrollmentStatus)
	assert.Equal(t, "2025-06-15T12:00:00Z", output.CreatedAt)
	assert.True(t, output.Indexed)

	require.Len(t, leads.docs, 1)
	assert.Equal(t, "enr-0001", leads.docs[0].EnrollmentID)
	assert.Equal(t, "John Smith", leads.docs[0].FullName)
	assert.Equal(t, "A+", leads.docs[0].LeadGrade)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_WarningsNeedReview(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	input := hotInput()
	input.FraudWarnings = []models.FraudWarning{{
		Severity: models.SeverityWarning,
		Field:    models.FieldEmail,
		Message:  "Temporary email address detected",
	}}

	expectDuplicateCheck(mock, false)
	expectInsert(mock, models.EnrollmentStatusReview)
	mock.ExpectExec(`INSERT INTO audit_log`).WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := newTestHandler(t, db, nil).Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusReview, output.EnrollmentStatus)
	assert.False(t, output.Indexed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_NonCriticalFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectDuplicateCheck(mock, false)
	expectInsert(mock, models.EnrollmentStatusSubmitted)
	mock.ExpectExec(`INSERT INTO audit_log`).WillReturnError(stderrors.New("audit table locked"))

	leads := &fakeIndexer{err: stderrors.New("index unavailable")}
	output, err := newTestHandler(t, db, leads).Execute(context.Background(), hotInput())

	require.NoError(t, err)
	assert.Equal(t, "enr-0001", output.EnrollmentID)
	assert.False(t, output.Indexed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    func() *Input
		setup    func(mock sqlmock.Sqlmock)
		wantCode errors.ErrorCode
	}{
		{
			name: "blocked submission",
			input: func() *Input {
				in := hotInput()
				in.SubmissionBlocked = true
				in.FraudWarnings = []models.FraudWarning{{Severity: models.SeverityError, Field: models.FieldSSN}}
				return in
			},
			setup:    func(sqlmock.Sqlmock) {},
			wantCode: errors.ErrCodeSubmissionBlocked,
		},
		{
			name: "error warning without blocked flag",
			input: func() *Input {
				in := hotInput()
				in.SubmissionBlocked = false
				in.FraudWarnings = []models.FraudWarning{{
					Severity: models.SeverityError,
					Field:    models.FieldSSN,
					Message:  "Invalid SSN pattern",
				}}
				return in
			},
			setup:    func(sqlmock.Sqlmock) {},
			wantCode: errors.ErrCodeSubmissionBlocked,
		},
		{
			name:  "duplicate enrollment",
			input: hotInput,
			setup: func(mock sqlmock.Sqlmock) {
				expectDuplicateCheck(mock, true)
			},
			wantCode: errors.ErrCodeDuplicateEnrollment,
		},
		{
			name:  "duplicate check fails",
			input: hotInput,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS`).WillReturnError(sql.ErrConnDone)
			},
			wantCode: errors.ErrCodeDatabaseInsertFailed,
		},
		{
			name:  "insert fails",
			input: hotInput,
			setup: func(mock sqlmock.Sqlmock) {
				expectDuplicateCheck(mock, false)
				mock.ExpectExec(`INSERT INTO enrollments`).WillReturnError(stderrors.New("unique violation"))
			},
			wantCode: errors.ErrCodeDatabaseInsertFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setup(mock)

			output, err := newTestHandler(t, db, nil).Execute(context.Background(), tt.input())

			require.Error(t, err)
			assert.Nil(t, output)
			assert.Equal(t, tt.wantCode, codeOf(t, err))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInputSchema(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		valid bool
	}{
		{
			name: "scored applicant",
			doc: `{"applicant": {"firstName": "John"},
				"dataQuality": {"score": 90, "grade": "A"},
				"leadScore": {"score": 85, "grade": "A"},
				"fraudWarnings": [],
				"priority": "hot"}`,
			valid: true,
		},
		{
			name:  "missing scores",
			doc:   `{"applicant": {}, "priority": "warm"}`,
			valid: false,
		},
		{
			name: "unknown priority",
			doc: `{"applicant": {},
				"dataQuality": {"score": 90, "grade": "A"},
				"leadScore": {"score": 85, "grade": "A"},
				"priority": "lukewarm"}`,
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, inputSchema.Validate(tt.doc).Valid)
		})
	}
}
