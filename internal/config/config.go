package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Journal   JournalConfig   `yaml:"journal"`
	AI        AIConfig        `yaml:"ai"`
	Sessions  SessionsConfig  `yaml:"sessions"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateLimitConfig holds per-minute request budgets of the HTTP API. Zero disables a limit.
type RateLimitConfig struct {
	LoginPerMinute  int           `yaml:"login_per_minute" env:"RATE_LIMIT_LOGIN_PER_MINUTE" env-default:"20"`
	AIPerMinute     int           `yaml:"ai_per_minute"    env:"RATE_LIMIT_AI_PER_MINUTE"    env-default:"10"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendLocal    = "local"
	BackendPostgres = "postgres"
)

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend   string `yaml:"backend"    env:"STORAGE_BACKEND"    env-default:"local"`
	LocalPath string `yaml:"local_path" env:"STORAGE_LOCAL_PATH" env-default:"~/.howzue"`

	// CacheSizeMax bounds the in-memory read cache of the local backend, in bytes.
	CacheSizeMax uint64 `yaml:"cache_size_max" env:"STORAGE_CACHE_SIZE_MAX" env-default:"1048576"`
}

// DatabaseConfig holds PostgreSQL connection settings. Only used by the postgres backend.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// AuthConfig holds identity token settings for the HTTP API.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"howzue"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"720h"`
}

// JournalConfig holds entry store behaviour.
type JournalConfig struct {
	SameDayPolicy string `yaml:"same_day_policy" env:"JOURNAL_SAME_DAY_POLICY" env-default:"overwrite"`
	MinTextLength int    `yaml:"min_text_length" env:"JOURNAL_MIN_TEXT_LENGTH" env-default:"0"`
	Timezone      string `yaml:"timezone"        env:"JOURNAL_TIMEZONE"        env-default:"Local"`
}

// AIConfig holds settings for the AI text service. An empty APIKey disables it.
type AIConfig struct {
	APIKey    string `yaml:"api_key"    env:"AI_API_KEY"`
	Model     string `yaml:"model"      env:"AI_MODEL"      env-default:"claude-sonnet-4-5"`
	MaxTokens int64  `yaml:"max_tokens" env:"AI_MAX_TOKENS" env-default:"1024"`
}

// Enabled reports whether an AI text service can be constructed.
func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

// SessionsConfig bounds the number of identities whose stores stay resident in the API process.
type SessionsConfig struct {
	MaxResident int `yaml:"max_resident" env:"SESSIONS_MAX_RESIDENT" env-default:"1024"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
