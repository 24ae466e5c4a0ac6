package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"

storage:
  backend: "memory"

auth:
  jwt_secret: "this-is-a-very-long-jwt-secret-for-testing-32+"

journal:
  same_day_policy: "append"
  min_text_length: 10
  timezone: "Europe/Berlin"

ai:
  api_key: "sk-test"
  max_tokens: 512

sessions:
  max_resident: 16

log:
  level: "debug"
  format: "text"
`

func validConfig() *Config {
	return &Config{
		Storage: StorageConfig{Backend: BackendMemory},
		Auth: AuthConfig{
			JWTSecret:      strings.Repeat("s", 32),
			AccessTokenTTL: time.Hour,
		},
		Journal: JournalConfig{
			SameDayPolicy: "overwrite",
			Timezone:      "UTC",
		},
		Sessions:  SessionsConfig{MaxResident: 1},
		RateLimit: RateLimitConfig{LoginPerMinute: 5, AIPerMinute: 5, CleanupInterval: time.Minute},
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 60*time.Second {
		t.Errorf("server.write_timeout = %v, want default 60s", cfg.Server.WriteTimeout)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("storage.backend = %q", cfg.Storage.Backend)
	}
	if cfg.Journal.SameDayPolicy != "append" {
		t.Errorf("journal.same_day_policy = %q", cfg.Journal.SameDayPolicy)
	}
	if cfg.Journal.MinTextLength != 10 {
		t.Errorf("journal.min_text_length = %d, want 10", cfg.Journal.MinTextLength)
	}
	if got := cfg.Journal.Location().String(); got != "Europe/Berlin" {
		t.Errorf("journal location = %q", got)
	}
	if !cfg.AI.Enabled() || cfg.AI.MaxTokens != 512 {
		t.Errorf("ai = %+v", cfg.AI)
	}
	if cfg.Sessions.MaxResident != 16 {
		t.Errorf("sessions.max_resident = %d, want 16", cfg.Sessions.MaxResident)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("JOURNAL_SAME_DAY_POLICY", "overwrite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Journal.SameDayPolicy != "overwrite" {
		t.Errorf("journal.same_day_policy = %q, want overwrite (ENV override)", cfg.Journal.SameDayPolicy)
	}
}

func TestLoad_NoFile_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("STORAGE_LOCAL_PATH", t.TempDir())

	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Backend != BackendLocal {
		t.Errorf("storage.backend = %q, want local", cfg.Storage.Backend)
	}
	if cfg.Journal.SameDayPolicy != "overwrite" {
		t.Errorf("journal.same_day_policy = %q, want overwrite", cfg.Journal.SameDayPolicy)
	}
	if cfg.AI.Enabled() {
		t.Error("ai should be disabled without an api key")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoadServer_RequiresSecret(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "storage:\n  backend: memory\n")
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("AUTH_JWT_SECRET", "")

	if _, err := Load(); err != nil {
		t.Fatalf("Load should not need a jwt secret: %v", err)
	}
	if _, err := LoadServer(); err == nil {
		t.Fatal("expected LoadServer to reject a missing jwt secret")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "s3" }, wantErr: "backend"},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Storage.Backend = BackendPostgres }, wantErr: "dsn"},
		{name: "postgres with dsn", mutate: func(c *Config) {
			c.Storage.Backend = BackendPostgres
			c.Database.DSN = "postgres://localhost/howzue"
		}},
		{name: "bad policy", mutate: func(c *Config) { c.Journal.SameDayPolicy = "merge" }, wantErr: "same_day_policy"},
		{name: "negative min text", mutate: func(c *Config) { c.Journal.MinTextLength = -1 }, wantErr: "min_text_length"},
		{name: "bad timezone", mutate: func(c *Config) { c.Journal.Timezone = "Mars/Olympus" }, wantErr: "timezone"},
		{name: "no resident sessions", mutate: func(c *Config) { c.Sessions.MaxResident = 0 }, wantErr: "max_resident"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_LocalPathExpandsHome(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Backend = BackendLocal
	cfg.Storage.LocalPath = "~/howzue-data"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.HasPrefix(cfg.Storage.LocalPath, "~") {
		t.Errorf("local_path not expanded: %q", cfg.Storage.LocalPath)
	}
}

func TestValidateServer(t *testing.T) {
	cfg := validConfig()
	if err := cfg.ValidateServer(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Auth.JWTSecret = "short"
	if err := cfg.ValidateServer(); err == nil {
		t.Fatal("expected error for short jwt secret")
	}

	cfg = validConfig()
	cfg.Auth.AccessTokenTTL = 0
	if err := cfg.ValidateServer(); err == nil {
		t.Fatal("expected error for zero ttl")
	}

	cfg = validConfig()
	cfg.RateLimit.AIPerMinute = -1
	if err := cfg.ValidateServer(); err == nil {
		t.Fatal("expected error for negative rate limit")
	}
}
