package gxhash

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting hashing metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordHash is called after each hash. width is the width name,
	// offloaded reports whether the runtime computed it, and err is
	// non-nil for a failed offload.
	RecordHash(width string, bytes int, offloaded bool, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordHash(string, int, bool, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	InlineCount   atomic.Int64
	InlineBytes   atomic.Int64
	InlineNanos   atomic.Int64
	OffloadCount  atomic.Int64
	OffloadBytes  atomic.Int64
	OffloadNanos  atomic.Int64
	OffloadErrors atomic.Int64
}

// RecordHash implements MetricsCollector.
func (b *BasicMetricsCollector) RecordHash(_ string, bytes int, offloaded bool, duration time.Duration, err error) {
	if !offloaded {
		b.InlineCount.Add(1)
		b.InlineBytes.Add(int64(bytes))
		b.InlineNanos.Add(duration.Nanoseconds())
		return
	}

	b.OffloadCount.Add(1)
	if err != nil {
		b.OffloadErrors.Add(1)
		return
	}
	b.OffloadBytes.Add(int64(bytes))
	b.OffloadNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InlineCount:     b.InlineCount.Load(),
		InlineBytes:     b.InlineBytes.Load(),
		InlineAvgNanos:  avg(b.InlineNanos.Load(), b.InlineCount.Load()),
		OffloadCount:    b.OffloadCount.Load(),
		OffloadBytes:    b.OffloadBytes.Load(),
		OffloadErrors:   b.OffloadErrors.Load(),
		OffloadAvgNanos: avg(b.OffloadNanos.Load(), b.OffloadCount.Load()-b.OffloadErrors.Load()),
	}
}

func avg(total, count int64) int64 {
	if count <= 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InlineCount     int64
	InlineBytes     int64
	InlineAvgNanos  int64
	OffloadCount    int64
	OffloadBytes    int64
	OffloadErrors   int64
	OffloadAvgNanos int64
}
