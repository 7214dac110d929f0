// internal/workers/enrollment/validate-applicant-fields/config.go
package validateapplicantfields

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
