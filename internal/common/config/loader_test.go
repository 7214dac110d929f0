// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalConfig = `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: enrollments
    user: ${TEST_DB_USER}
  elasticsearch:
    addresses: ["http://localhost:9200"]
  redis:
    address: localhost:6379
workers:
  score-applicant:
    enabled: true
  notify-enrollment:
    enabled: false
    max_retries: 7
scoring:
  high_demand_states: [VT, ME]
`

func TestLoadFromFile(t *testing.T) {
	t.Setenv("TEST_DB_USER", "enroller")
	t.Setenv("AWS_REGION", "us-west-2")

	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	t.Run("placeholders expand", func(t *testing.T) {
		assert.Equal(t, "enroller", cfg.Database.Postgres.User)
	})

	t.Run("defaults", func(t *testing.T) {
		assert.Equal(t, 10, cfg.Camunda.MaxJobsActive)
		assert.Equal(t, 25, cfg.Database.Postgres.MaxConnections)
		assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
		assert.Equal(t, "http://localhost:9200", cfg.Database.Elasticsearch.GetURL())
		assert.Equal(t, "leads", cfg.Database.Elasticsearch.LeadIndex)
		assert.Equal(t, 86400, cfg.Database.Redis.SessionTTL)
		assert.Equal(t, "chatLogs", cfg.Database.Firestore.ChatLogsCollection)
		assert.Equal(t, []string{"A+"}, cfg.Notifications.SMS.PriorityGrades)
		assert.Equal(t, 3, cfg.Assistant.EscalationThreshold)
		assert.Equal(t, 1200, cfg.Assistant.TypingDelay)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("environment fills empty values", func(t *testing.T) {
		assert.Equal(t, "us-west-2", cfg.Notifications.AWS.Region)
	})

	t.Run("scoring tables", func(t *testing.T) {
		assert.Equal(t, []string{"VT", "ME"}, cfg.Scoring.HighDemandStates)
		assert.Empty(t, cfg.Scoring.FreeEmailProviders)
	})

	t.Run("worker settings", func(t *testing.T) {
		w := GetWorkerConfig(cfg, "score-applicant")
		assert.Equal(t, 5, w.MaxJobsActive)
		assert.Equal(t, 30000, w.Timeout)
		assert.Equal(t, 3, w.MaxRetries)

		assert.Equal(t, 7, GetWorkerConfig(cfg, "notify-enrollment").MaxRetries)
		assert.False(t, IsWorkerEnabled(cfg, "notify-enrollment"))
		assert.True(t, IsWorkerEnabled(cfg, "unlisted-worker"))
	})
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing broker",
			body:    "database:\n  postgres:\n    host: h\n",
			wantErr: "camunda.broker_address is required",
		},
		{
			name: "firestore without project",
			body: `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: enrollments
    user: enroller
  elasticsearch:
    url: http://localhost:9200
  redis:
    address: localhost:6379
  firestore:
    enabled: true
`,
			wantErr: "database.firestore.project_id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DB_USER", "enroller")
			t.Setenv("GOOGLE_CLOUD_PROJECT", "")

			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, "1.5s", GetDuration(1500).String())
}
