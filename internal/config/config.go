package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	LogDir      string

	TrustedProxies []string // sources allowed to set X-Forwarded-For

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBMaxConns int

	APIKey string // API key protecting mutating routes

	DiscordToken          string
	DiscordAppID          string
	PrimaryOperatorID     string   // designated primary approver
	SecondaryOperatorIDs  []string // zero or more additional approvers
	OperatorChannelID     string   // channel where approval cards are posted
	AnnounceChannelID     string   // channel for user-facing spin reveals
	DeadLetterPath        string
	ReminderIntervalSecs  int // re-ping operators about stale approvals
	ReminderThresholdSecs int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		ServiceName: getEnv("SERVICE_NAME", "clubwheel-bot"),
		Version:     getEnv("VERSION", "dev"),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),

		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "clubwheel"),

		APIKey: getEnv("API_KEY", ""),

		DiscordToken:         getEnv("DISCORD_TOKEN", ""),
		DiscordAppID:         getEnv("DISCORD_APP_ID", ""),
		PrimaryOperatorID:    getEnv("PRIMARY_OPERATOR_ID", ""),
		SecondaryOperatorIDs: splitList(getEnv("SECONDARY_OPERATOR_IDS", "")),
		OperatorChannelID:    getEnv("OPERATOR_CHANNEL_ID", ""),
		AnnounceChannelID:    getEnv("ANNOUNCE_CHANNEL_ID", ""),
		DeadLetterPath:       getEnv("DEAD_LETTER_PATH", DefaultDeadLetterPath),
	}

	port, err := getEnvInt("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	maxConns, err := getEnvInt("DB_MAX_CONNS", DefaultDBMaxConns)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxConns = maxConns

	interval, err := getEnvInt("REMINDER_INTERVAL_SECS", DefaultReminderIntervalSecs)
	if err != nil {
		return nil, err
	}
	cfg.ReminderIntervalSecs = interval

	threshold, err := getEnvInt("REMINDER_THRESHOLD_SECS", DefaultReminderThresholdSecs)
	if err != nil {
		return nil, err
	}
	cfg.ReminderThresholdSecs = threshold

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// splitList parses a comma-separated env value into trimmed entries
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// OperatorIDs returns the primary operator followed by all secondaries.
func (c *Config) OperatorIDs() []string {
	if c.PrimaryOperatorID == "" {
		return c.SecondaryOperatorIDs
	}
	return append([]string{c.PrimaryOperatorID}, c.SecondaryOperatorIDs...)
}
