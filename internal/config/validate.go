package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/heartmarshall/howzue/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if c.Storage.Backend == BackendPostgres && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required for the postgres backend")
	}

	if err := c.Journal.validate(); err != nil {
		return fmt.Errorf("journal: %w", err)
	}

	if c.Sessions.MaxResident < 1 {
		return fmt.Errorf("sessions.max_resident must be >= 1 (got %d)", c.Sessions.MaxResident)
	}

	return nil
}

// ValidateServer adds the checks that only matter for the HTTP API process.
func (c *Config) ValidateServer() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0")
	}
	if c.RateLimit.LoginPerMinute < 0 || c.RateLimit.AIPerMinute < 0 {
		return fmt.Errorf("rate_limit budgets must be >= 0")
	}
	if c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0")
	}
	return nil
}

func (s *StorageConfig) validate() error {
	switch s.Backend {
	case BackendMemory, BackendPostgres:
	case BackendLocal:
		path, err := homedir.Expand(s.LocalPath)
		if err != nil {
			return fmt.Errorf("local_path: %w", err)
		}
		if path == "" {
			return fmt.Errorf("local_path is required for the local backend")
		}
		s.LocalPath = path
	default:
		return fmt.Errorf("backend must be one of memory, local, postgres (got %q)", s.Backend)
	}
	return nil
}

func (j *JournalConfig) validate() error {
	if !domain.SameDayPolicy(j.SameDayPolicy).IsValid() {
		return fmt.Errorf("same_day_policy must be overwrite or append (got %q)", j.SameDayPolicy)
	}
	if j.MinTextLength < 0 {
		return fmt.Errorf("min_text_length must be >= 0 (got %d)", j.MinTextLength)
	}
	if _, err := time.LoadLocation(j.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	return nil
}

// Location returns the journal's calendar time zone. Validate guarantees it parses.
func (j JournalConfig) Location() *time.Location {
	loc, err := time.LoadLocation(j.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
