package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/verdantclub/ClubWheelBot_Go/internal/config"
	"github.com/verdantclub/ClubWheelBot_Go/internal/event"
)

// Retry configuration for the resilient publisher.
const (
	// EventDefaultMaxRetries is the number of retry attempts before an event
	// goes to the dead-letter file
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the base delay between retry attempts
	// (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second
)

// InitializeEventSystem creates and configures the event bus and resilient
// publisher. It creates the dead-letter directory and wraps the bus in a
// publisher that retries failed publishes with exponential backoff before
// spilling to the dead-letter file.
// Returns the event bus, resilient publisher, and any error encountered.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	deadLetterPath := cfg.DeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = config.DefaultDeadLetterPath
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	resilientPublisher := event.NewResilientPublisher(eventBus, event.ResilientConfig{
		MaxRetries:     EventDefaultMaxRetries,
		RetryDelay:     EventDefaultRetryDelay,
		DeadLetterPath: deadLetterPath,
	})

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", EventDefaultMaxRetries,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", deadLetterPath)

	return eventBus, resilientPublisher, nil
}
