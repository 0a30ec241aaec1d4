package config

import "time"

// Default configuration values
const (
	DefaultPort                  = 8080
	DefaultLogDir                = "logs"
	DefaultDBMaxConns            = 25
	DefaultDeadLetterPath        = "logs/dead_letter.jsonl"
	DefaultReminderIntervalSecs  = 300
	DefaultReminderThresholdSecs = 900
)

// Database pool tuning
const (
	DefaultDBMaxIdleTime = 5 * time.Minute
	DefaultDBMaxLifetime = 30 * time.Minute
)
