// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	// kind is "quality" or "lead".
	EnrollmentScores = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrollment_scores_total",
			Help: "Applicant scores by kind and grade",
		},
		[]string{"kind", "grade"},
	)

	FraudWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraud_warnings_total",
			Help: "Fraud warnings raised by field and severity",
		},
		[]string{"field", "severity"},
	)

	ChatIntents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_intents_total",
			Help: "Classified chat intents",
		},
		[]string{"intent"},
	)

	ChatEscalations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_escalations_total",
			Help: "Chat turns that offered escalation to a human agent",
		},
	)
)
