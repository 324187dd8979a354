package config

import (
	"fmt"
	"os"
	"strconv"
)

// Development values accepted only when APP_ENV=development.
const (
	devDBUser        = "testuser"
	devDBPassword    = "testpass"
	devSessionSecret = "secret_dev_change_me"
)

// Config holds all application configuration.
type Config struct {
	Env      string
	HTTPAddr string
	Database DatabaseConfig
	Session  SessionConfig
	Redis    RedisConfig
	Static   StaticConfig
}

// DatabaseConfig contains relational store settings.
type DatabaseConfig struct {
	Driver   string // "mysql" or "sqlite3"
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Path     string // sqlite database file path
}

// SessionConfig contains session and token settings.
type SessionConfig struct {
	Secret   string // signs bearer tokens, required outside development
	Backend  string // "memory" or "redis"
	TTLHours int
}

// RedisConfig contains the optional external session backend settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StaticConfig points at the public asset directory.
type StaticConfig struct {
	PublicDir string
}

// Load reads configuration from environment variables. Insecure development
// defaults are refused unless APP_ENV=development.
func Load() (*Config, error) {
	env := getEnv("APP_ENV", "development")
	dev := env == "development"

	cfg := &Config{
		Env:      env,
		HTTPAddr: getEnv("HTTP_ADDR", ":3000"),
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "mysql"),
			Host:     getEnv("DB_HOST", "db"),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "testdb"),
			Path:     getEnv("DB_PATH", "msgboard.db"),
		},
		Session: SessionConfig{
			Secret:  getEnv("SESSION_SECRET", ""),
			Backend: getEnv("SESSION_BACKEND", "memory"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Static: StaticConfig{
			PublicDir: getEnv("PUBLIC_DIR", "public"),
		},
	}

	var err error
	if cfg.Database.Port, err = getEnvInt("DB_PORT", 3306); err != nil {
		return nil, err
	}
	if cfg.Session.TTLHours, err = getEnvInt("SESSION_TTL_HOURS", 24); err != nil {
		return nil, err
	}
	if cfg.Redis.DB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	if dev {
		if cfg.Database.User == "" {
			cfg.Database.User = devDBUser
		}
		if cfg.Database.Password == "" {
			cfg.Database.Password = devDBPassword
		}
		if cfg.Session.Secret == "" {
			cfg.Session.Secret = devSessionSecret
		}
	}

	if err := cfg.validate(dev); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate(dev bool) error {
	switch c.Database.Driver {
	case "mysql", "sqlite3":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Session.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported SESSION_BACKEND %q", c.Session.Backend)
	}
	if c.Session.TTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}
	if dev {
		return nil
	}
	if c.Session.Secret == "" || c.Session.Secret == devSessionSecret {
		return fmt.Errorf("SESSION_SECRET must be set to a non-default value outside development")
	}
	if c.Database.Driver == "mysql" {
		if c.Database.User == "" || c.Database.User == devDBUser {
			return fmt.Errorf("DB_USER must be set to a non-default value outside development")
		}
		if c.Database.Password == "" || c.Database.Password == devDBPassword {
			return fmt.Errorf("DB_PASSWORD must be set to a non-default value outside development")
		}
	}
	return nil
}

// String returns a printable form with sensitive values masked.
func (c *Config) String() string {
	return fmt.Sprintf("Config{env: %s, addr: %s, db: %s/%s, sessions: %s}",
		c.Env, c.HTTPAddr, c.Database.Driver, c.Database.Name, c.Session.Backend)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}
