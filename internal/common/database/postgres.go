// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"enrollment-workers/internal/common/config"

	_ "github.com/lib/pq"
)

type PostgresClient struct {
	DB *sql.DB
}

func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

const enrollmentMigration = `
CREATE TABLE IF NOT EXISTS enrollments (
	id                 TEXT PRIMARY KEY,
	email              TEXT NOT NULL,
	ssn_last4          TEXT NOT NULL,
	applicant          JSONB NOT NULL,
	data_quality_score INTEGER NOT NULL,
	data_quality_grade TEXT NOT NULL,
	lead_score         INTEGER NOT NULL,
	lead_grade         TEXT NOT NULL,
	priority           TEXT NOT NULL,
	fraud_warnings     JSONB NOT NULL DEFAULT '[]',
	status             TEXT NOT NULL DEFAULT 'submitted',
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_enrollments_email_ssn ON enrollments(lower(email), ssn_last4);
CREATE INDEX IF NOT EXISTS idx_enrollments_priority ON enrollments(priority);

CREATE TABLE IF NOT EXISTS audit_log (
	id            BIGSERIAL PRIMARY KEY,
	event_type    TEXT NOT NULL,
	resource_type TEXT NOT NULL,
	resource_id   TEXT NOT NULL,
	details       JSONB NOT NULL DEFAULT '{}',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate creates the enrollment tables if they do not exist.
func (c *PostgresClient) Migrate(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, enrollmentMigration); err != nil {
		return fmt.Errorf("migrate enrollments: %w", err)
	}
	return nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
