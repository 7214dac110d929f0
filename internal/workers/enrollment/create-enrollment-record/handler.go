// internal/workers/enrollment/create-enrollment-record/handler.go
package createenrollmentrecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"enrollment-workers/internal/common/camunda"
	"enrollment-workers/internal/common/clock"
	"enrollment-workers/internal/common/errors"
	"enrollment-workers/internal/common/logger"
	"enrollment-workers/internal/models"
	"enrollment-workers/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "create-enrollment-record"
)

// LeadIndexer receives the searchable projection of a new enrollment.
type LeadIndexer interface {
	Index(ctx context.Context, doc models.LeadDocument) error
}

type Handler struct {
	config *Config
	db     *sql.DB
	leads  LeadIndexer
	clock  clock.Clock
	newID  func() string
	jobs   *camunda.JobReporter
	logger logger.Logger
}

// NewHandler accepts a nil leads indexer; enrollments are then only stored.
func NewHandler(config *Config, db *sql.DB, leads LeadIndexer, c clock.Clock, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		db:     db,
		leads:  leads,
		clock:  c,
		newID:  uuid.NewString,
		jobs:   camunda.NewJobReporter(TaskType, log),
		logger: log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	if result := inputSchema.Validate(job.Variables); !result.Valid {
		h.jobs.Fail(client, job, errors.NewApplicantValidationFailedError(result.Summary()))
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.jobs.Fail(client, job, errors.NewApplicantValidationFailedError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.jobs.Fail(client, job, err)
		return
	}

	h.jobs.Complete(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	// The warnings decide, whatever flag the caller passed along.
	if input.SubmissionBlocked || scoring.Blocked(input.FraudWarnings) {
		return nil, errors.NewSubmissionBlockedError(blockingFields(input.FraudWarnings))
	}

	email := strings.ToLower(strings.TrimSpace(input.Applicant.Email))
	last4 := input.Applicant.SSNLast4()

	var exists bool
	err := h.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM enrollments
			WHERE lower(email) = $1 AND ssn_last4 = $2
		)`, email, last4).Scan(&exists)
	if err != nil {
		return nil, errors.NewDatabaseInsertFailedError(fmt.Errorf("duplicate check failed: %w", err))
	}
	if exists {
		return nil, errors.NewDuplicateEnrollmentError(fmt.Sprintf("enrollment already exists for %s", email))
	}

	status := models.EnrollmentStatusSubmitted
	if len(input.FraudWarnings) > 0 {
		status = models.EnrollmentStatusReview
	}

	enrollment := models.Enrollment{
		ID:               h.newID(),
		Applicant:        input.Applicant,
		DataQualityScore: input.DataQuality.Score,
		DataQualityGrade: input.DataQuality.Grade,
		LeadScore:        input.LeadScore.Score,
		LeadGrade:        input.LeadScore.Grade,
		Priority:         input.Priority,
		FraudWarnings:    input.FraudWarnings,
		Status:           status,
		CreatedAt:        h.clock.Now().UTC().Format(time.RFC3339),
	}
	if enrollment.FraudWarnings == nil {
		enrollment.FraudWarnings = []models.FraudWarning{}
	}

	applicantJSON, err := json.Marshal(enrollment.Applicant)
	if err != nil {
		return nil, errors.NewDatabaseInsertFailedError(fmt.Errorf("marshal applicant: %w", err))
	}
	warningsJSON, err := json.Marshal(enrollment.FraudWarnings)
	if err != nil {
		return nil, errors.NewDatabaseInsertFailedError(fmt.Errorf("marshal fraud warnings: %w", err))
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO enrollments (
			id, email, ssn_last4, applicant,
			data_quality_score, data_quality_grade, lead_score, lead_grade,
			priority, fraud_warnings, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)`,
		enrollment.ID,
		email,
		last4,
		applicantJSON,
		enrollment.DataQualityScore,
		enrollment.DataQualityGrade,
		enrollment.LeadScore,
		enrollment.LeadGrade,
		enrollment.Priority,
		warningsJSON,
		enrollment.Status,
		enrollment.CreatedAt,
	)
	if err != nil {
		return nil, errors.NewDatabaseInsertFailedError(fmt.Errorf("insert failed: %w", err))
	}

	h.writeAuditLog(ctx, enrollment)
	indexed := h.indexLead(ctx, enrollment)

	h.logger.Info("enrollment record created", map[string]interface{}{
		"enrollmentId": enrollment.ID,
		"leadGrade":    enrollment.LeadGrade,
		"priority":     enrollment.Priority,
		"status":       enrollment.Status,
		"indexed":      indexed,
	})

	return &Output{
		EnrollmentID:     enrollment.ID,
		EnrollmentStatus: enrollment.Status,
		CreatedAt:        enrollment.CreatedAt,
		Indexed:          indexed,
	}, nil
}

// writeAuditLog is best effort.
func (h *Handler) writeAuditLog(ctx context.Context, e models.Enrollment) {
	details, err := json.Marshal(map[string]interface{}{
		"leadScore":     e.LeadScore,
		"leadGrade":     e.LeadGrade,
		"priority":      e.Priority,
		"fraudWarnings": len(e.FraudWarnings),
	})
	if err != nil {
		details = []byte("{}")
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"enrollment_created",
		"enrollment",
		e.ID,
		details,
		e.CreatedAt,
	)
	if err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":        err,
			"enrollmentId": e.ID,
		})
	}
}

// indexLead is best effort; the enrollment row is the source of truth.
func (h *Handler) indexLead(ctx context.Context, e models.Enrollment) bool {
	if h.leads == nil {
		return false
	}
	a := e.Applicant
	doc := models.LeadDocument{
		EnrollmentID:     e.ID,
		FullName:         strings.TrimSpace(a.FirstName + " " + a.LastName),
		Email:            a.Email,
		Phone:            a.Phone,
		City:             a.City,
		State:            a.State,
		ZipCode:          a.ZipCode,
		LeadScore:        e.LeadScore,
		LeadGrade:        e.LeadGrade,
		DataQualityScore: e.DataQualityScore,
		Priority:         e.Priority,
		Referrer:         a.Referrer,
		CreatedAt:        e.CreatedAt,
	}
	if err := h.leads.Index(ctx, doc); err != nil {
		h.logger.Warn("lead index failed", map[string]interface{}{
			"error":        err,
			"enrollmentId": e.ID,
		})
		return false
	}
	return true
}

func blockingFields(warnings []models.FraudWarning) string {
	var fields []string
	for _, w := range warnings {
		if w.Severity == models.SeverityError {
			fields = append(fields, w.Field)
		}
	}
	return "blocking fields: " + strings.Join(fields, ", ")
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
