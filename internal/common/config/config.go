// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Scoring       ScoringConfig           `mapstructure:"scoring"`
	Assistant     AssistantConfig         `mapstructure:"assistant"`
	Server        ServerConfig            `mapstructure:"server"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Firestore     FirestoreConfig     `mapstructure:"firestore"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	URL        string   `mapstructure:"url"` // Single URL for backwards compatibility
	LeadIndex  string   `mapstructure:"lead_index"`
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address    string `mapstructure:"address"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	SessionTTL int    `mapstructure:"session_ttl"` // seconds
}

// FirestoreConfig points the chat log store at a project. EmulatorHost, when
// set, takes precedence over FIRESTORE_EMULATOR_HOST.
type FirestoreConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	ProjectID          string `mapstructure:"project_id"`
	EmulatorHost       string `mapstructure:"emulator_host"`
	ChatLogsCollection string `mapstructure:"chat_logs_collection"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// --- Specific Configuration Sections ---

// NotificationConfig holds settings for the notify-enrollment worker.
type NotificationConfig struct {
	Email struct {
		Enabled    bool   `mapstructure:"enabled"`
		FromEmail  string `mapstructure:"from_email"`
		SalesInbox string `mapstructure:"sales_inbox"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled bool   `mapstructure:"enabled"`
		OnCall  string `mapstructure:"on_call_number"`
		// Lead grades that page the on-call number.
		PriorityGrades []string `mapstructure:"priority_grades"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// ScoringConfig overrides the built-in applicant rule tables. Empty lists keep
// the defaults.
type ScoringConfig struct {
	DisposableEmailMarkers      []string `mapstructure:"disposable_email_markers"`
	FraudDisposableEmailMarkers []string `mapstructure:"fraud_disposable_email_markers"`
	InvalidSSNs                 []string `mapstructure:"invalid_ssns"`
	FraudInvalidSSNs            []string `mapstructure:"fraud_invalid_ssns"`
	FreeEmailProviders          []string `mapstructure:"free_email_providers"`
	TollFreeAreaCodes           []string `mapstructure:"toll_free_area_codes"`
	HighDemandStates            []string `mapstructure:"high_demand_states"`
}

// AssistantConfig holds the chat assistant persona and limits.
type AssistantConfig struct {
	AssistantName        string `mapstructure:"assistant_name"`
	CompanyName          string `mapstructure:"company_name"`
	CompanyPhone         string `mapstructure:"company_phone"`
	CompanyEmail         string `mapstructure:"company_email"`
	EscalationThreshold  int    `mapstructure:"escalation_threshold"`
	MaxHistoryMessages   int    `mapstructure:"max_history_messages"`
	TypingDelay          int    `mapstructure:"typing_delay"` // milliseconds
	IdleAfter            int    `mapstructure:"idle_after"`   // milliseconds
	DisableProactiveHelp bool   `mapstructure:"disable_proactive_help"`
}
