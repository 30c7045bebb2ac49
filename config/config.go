package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"nfl-rankings-go/logging"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Logging  LoggingConfig  `json:"logging"`
	Data     DataConfig     `json:"data"`
	Session  SessionConfig  `json:"session"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string `json:"port"`
	Host        string `json:"host"`
	Environment string `json:"environment"`
}

// DatabaseConfig holds MongoDB configuration
type DatabaseConfig struct {
	Host     string        `json:"host"`
	Port     string        `json:"port"`
	Username string        `json:"username"`
	Password string        `json:"password"`
	Database string        `json:"database"`
	Timeout  time.Duration `json:"timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level       string `json:"level"`
	Prefix      string `json:"prefix"`
	EnableColor bool   `json:"enable_color"`
}

// DataConfig holds the spreadsheet data source configuration
type DataConfig struct {
	WorkbookPath string `json:"workbook_path"`
	MinYear      int    `json:"min_year"` // first season the rankings cover
}

// SessionConfig holds simulator session configuration
type SessionConfig struct {
	JWTSecret string        `json:"jwt_secret"`
	TTL       time.Duration `json:"ttl"`
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Missing .env is fine; environment variables still apply
		logging.Debugf("No .env file loaded: %v", err)
	}

	environment := getEnv("ENVIRONMENT", "development")
	isDevelopment := strings.ToLower(environment) == "development"

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Environment: environment,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "27017"),
			Username: getEnv("DB_USERNAME", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "nfl_rankings"),
			Timeout:  getDurationEnv("DB_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Prefix:      getEnv("LOG_PREFIX", "nfl-rankings"),
			EnableColor: getBoolEnv("LOG_COLOR", true),
		},
		Data: DataConfig{
			WorkbookPath: getEnv("DATA_WORKBOOK", "data/nfl_data.xlsm"),
			MinYear:      getIntEnv("RANKINGS_MIN_YEAR", 1966), // Super Bowl I
		},
		Session: SessionConfig{
			JWTSecret: getEnv("SESSION_SECRET", "dev-only-session-secret"),
			TTL:       getDurationEnv("SESSION_TTL", 12*time.Hour),
		},
	}

	if config.Session.JWTSecret == "dev-only-session-secret" && !isDevelopment {
		return nil, fmt.Errorf("SESSION_SECRET must be set outside development")
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration for required fields and sensible values
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Port == "" {
		return fmt.Errorf("database port is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Data.WorkbookPath == "" {
		return fmt.Errorf("data workbook path is required")
	}
	if c.Data.MinYear <= 0 {
		return fmt.Errorf("rankings min year must be positive, got %d", c.Data.MinYear)
	}
	if c.Session.JWTSecret == "" {
		return fmt.Errorf("session secret is required")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got %v", c.Session.TTL)
	}
	return nil
}

// IsDevelopment returns true when running in development mode
func (c *Config) IsDevelopment() bool {
	return strings.ToLower(c.Server.Environment) == "development"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

// LogConfiguration logs the current configuration (without sensitive data)
func (c *Config) LogConfiguration() {
	logging.Info("=== Application Configuration ===")
	logging.Infof("Server: %s (Environment: %s)", c.GetServerAddress(), c.Server.Environment)
	logging.Infof("Database: %s:%s/%s (Auth: %t)",
		c.Database.Host, c.Database.Port, c.Database.Database, c.Database.Password != "")
	logging.Infof("Logging: Level=%s, Prefix=%s, Color=%t",
		c.Logging.Level, c.Logging.Prefix, c.Logging.EnableColor)
	logging.Infof("Data: Workbook=%s, MinYear=%d", c.Data.WorkbookPath, c.Data.MinYear)
	logging.Infof("Session: TTL=%v, Secret set=%t", c.Session.TTL, c.Session.JWTSecret != "")
	logging.Info("================================")
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
