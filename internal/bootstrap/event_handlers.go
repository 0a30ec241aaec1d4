package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/verdantclub/ClubWheelBot_Go/internal/event"
	"github.com/verdantclub/ClubWheelBot_Go/internal/metrics"
)

// RegisterEventHandlers sets up all event bus subscribers. Currently that is
// the metrics collector, which turns published domain events into Prometheus
// counters.
func RegisterEventHandlers(eventBus event.Bus) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(eventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	return nil
}
