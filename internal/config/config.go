package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig   `yaml:"server"`
	PrimaryDB   DatabaseConfig `yaml:"primary_db" env-prefix:"PRIMARY_"`
	SecondaryDB DatabaseConfig `yaml:"secondary_db" env-prefix:"SECONDARY_"`
	Auth        AuthConfig     `yaml:"auth"`
	Insight     InsightConfig  `yaml:"insight"`
	Phases      PhasesConfig   `yaml:"phases"`
	Log         LogConfig      `yaml:"log"`
	CORS        CORSConfig     `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings for one store.
// The primary and secondary stores are configured independently via the
// PRIMARY_/SECONDARY_ env prefixes.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds session-token verification settings. Tokens are issued
// by the upstream identity provider; this service only verifies them.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER"`
}

// InsightConfig holds the insight gateway settings.
type InsightConfig struct {
	BaseURL string        `yaml:"base_url" env:"INSIGHT_BASE_URL" env-default:"https://openrouter.ai/api/v1"`
	APIKey  string        `yaml:"api_key"  env:"INSIGHT_API_KEY"`
	Model   string        `yaml:"model"    env:"INSIGHT_MODEL"    env-default:"google/gemini-2.5-flash"`
	Timeout time.Duration `yaml:"timeout"  env:"INSIGHT_TIMEOUT"  env-default:"60s"`
}

// PhasesConfig holds the journal phase gates and timezone.
type PhasesConfig struct {
	MiddayUnlockHour  int    `yaml:"midday_unlock_hour"  env:"PHASES_MIDDAY_UNLOCK_HOUR"  env-default:"12"`
	EveningUnlockHour int    `yaml:"evening_unlock_hour" env:"PHASES_EVENING_UNLOCK_HOUR" env-default:"17"`
	Timezone          string `yaml:"timezone"            env:"PHASES_TIMEZONE"            env-default:"America/New_York"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
