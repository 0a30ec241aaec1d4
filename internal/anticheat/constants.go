package anticheat

import "time"

// Production throttle limits: at most DefaultCap spin requests per user in
// any DefaultWindow span.
const (
	DefaultWindow = 60 * time.Second
	DefaultCap    = 50
)
