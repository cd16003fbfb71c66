package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Services      ServicesConfig      `mapstructure:"services"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	CostsPort    int           `mapstructure:"costs_port"`
	UsersPort    int           `mapstructure:"users_port"`
	LogsPort     int           `mapstructure:"logs_port"`
	AdminPort    int           `mapstructure:"admin_port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Source          string        `mapstructure:"source"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// ServicesConfig points each service at its remote collaborators.
type ServicesConfig struct {
	UsersURL      string        `mapstructure:"users_url"`
	LogsURL       string        `mapstructure:"logs_url"`
	VerifyTimeout time.Duration `mapstructure:"verify_timeout"`
	LogTimeout    time.Duration `mapstructure:"log_timeout"`
}

type ObservabilityConfig struct {
	Env         string `mapstructure:"env"`
	MetricsPath string `mapstructure:"metrics_path"`
}

func (c *Config) Validate() error {
	var errs []string

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}
	if err := c.Services.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("services config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *ServicesConfig) Validate() error {
	for name, raw := range map[string]string{
		"users_url": c.UsersURL,
		"logs_url":  c.LogsURL,
	} {
		if raw == "" {
			continue
		}
		if _, err := url.Parse(raw); err != nil {
			return fmt.Errorf("invalid %s %s: %w", name, raw, err)
		}
	}
	return nil
}

// LoadConfigFromEnv builds configuration from environment variables for
// container deployments without a config file.
func LoadConfigFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			CostsPort:    getEnvAsInt("COSTS_PORT", 8080),
			UsersPort:    getEnvAsInt("USERS_PORT", 8081),
			LogsPort:     getEnvAsInt("LOGS_PORT", 8082),
			AdminPort:    getEnvAsInt("ADMIN_PORT", 8083),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Source:          getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvAsInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Services: ServicesConfig{
			UsersURL:      getEnv("USERS_SERVICE_URL", "http://localhost:8081"),
			LogsURL:       getEnv("LOGS_SERVICE_URL", "http://localhost:8082"),
			VerifyTimeout: getEnvAsDuration("USER_VERIFY_TIMEOUT", 5*time.Second),
			LogTimeout:    getEnvAsDuration("LOG_SHIP_TIMEOUT", 3*time.Second),
		},
		Observability: ObservabilityConfig{
			Env:         getEnv("APP_ENV", "development"),
			MetricsPath: getEnv("METRICS_PATH", "/metrics"),
		},
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}
