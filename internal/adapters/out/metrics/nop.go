// Package metrics implements ports.MetricsCollector.
package metrics

import (
	"time"

	"multicleaner/internal/core/ports"
)

// NopMetrics discards everything. Tests and tools that do not expose /metrics use it.
type NopMetrics struct{}

var _ ports.MetricsCollector = (*NopMetrics)(nil)

func NewNop() *NopMetrics {
	return &NopMetrics{}
}

func (n *NopMetrics) RecordSweep(string, int, int, time.Duration) {}

func (n *NopMetrics) IncSlotFilled() {}

func (n *NopMetrics) IncSlotReleased() {}

func (n *NopMetrics) IncNotificationFailure(string) {}
