package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Log Messages - Reminder Worker
// ============================================================================

const (
	LogMsgReminderSweepStarting = "Pending approval reminder sweep starting"
	LogMsgReminderSent          = "Pending approval reminder sent"
)

// ============================================================================
// Log Messages - Prune Worker
// ============================================================================

// LogMsgWindowsPruned is logged after the anti-cheat window sweep
const LogMsgWindowsPruned = "Expired throttle windows pruned"

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestWorkerProcessWaitTime = 100 // milliseconds
)
