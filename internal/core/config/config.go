package config

import (
	pgaudit "github.com/tamkeenai/careerd/internal/audit/postgres"
	redisstore "github.com/tamkeenai/careerd/internal/session/redis"
	"github.com/tamkeenai/careerd/internal/upstream"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server   ServerConfig      `yaml:"server"`
	Upstream upstream.Config   `yaml:"upstream"`
	Fixtures FixturesConfig    `yaml:"fixtures"`
	Fallback FallbackConfig    `yaml:"fallback"`
	Redis    redisstore.Config `yaml:"redis"`
	Database pgaudit.Config    `yaml:"database"`
	Logging  LoggingConfig     `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// FixturesConfig locates the fixture catalog on disk.
type FixturesConfig struct {
	Dir string `yaml:"dir"`
}

// FallbackConfig tunes the degraded-mode behavior.
type FallbackConfig struct {
	CooldownSeconds int  `yaml:"cooldown_seconds"` // circuit cooldown, default 30
	WarnOnFallback  bool `yaml:"warn_on_fallback"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}
