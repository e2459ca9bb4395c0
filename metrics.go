package arenatree

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    insertCounter  prometheus.Counter
//	    findHistogram  prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordInsert(duration time.Duration, err error) {
//	    p.insertCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordInsert is called after each insert operation.
	// duration is the total time taken, err is nil if successful.
	RecordInsert(duration time.Duration, err error)

	// RecordFind is called after each Find or FindAll.
	// matches is the number of entries returned.
	RecordFind(matches int, duration time.Duration, err error)

	// RecordRemove is called after each Remove or RemoveKey.
	// err wraps ErrNotFound if nothing was removed.
	RecordRemove(duration time.Duration, err error)

	// RecordClear is called after each Clear with the number of entries dropped.
	RecordClear(removed int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration, error)    {}
func (NoopMetricsCollector) RecordFind(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRemove(time.Duration, error)    {}
func (NoopMetricsCollector) RecordClear(int)                      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount      atomic.Int64
	InsertErrors     atomic.Int64
	InsertTotalNanos atomic.Int64
	FindCount        atomic.Int64
	FindMisses       atomic.Int64
	FindMatches      atomic.Int64
	FindTotalNanos   atomic.Int64
	RemoveCount      atomic.Int64
	RemoveMisses     atomic.Int64
	ClearCount       atomic.Int64
	ClearedEntries   atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(duration time.Duration, err error) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

// RecordFind implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFind(matches int, duration time.Duration, err error) {
	b.FindCount.Add(1)
	b.FindMatches.Add(int64(matches))
	b.FindTotalNanos.Add(duration.Nanoseconds())
	if err != nil || matches == 0 {
		b.FindMisses.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(_ time.Duration, err error) {
	b.RemoveCount.Add(1)
	if err != nil {
		b.RemoveMisses.Add(1)
	}
}

// RecordClear implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClear(removed int) {
	b.ClearCount.Add(1)
	b.ClearedEntries.Add(int64(removed))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:    b.InsertCount.Load(),
		InsertErrors:   b.InsertErrors.Load(),
		InsertAvgNanos: avg(b.InsertTotalNanos.Load(), b.InsertCount.Load()),
		FindCount:      b.FindCount.Load(),
		FindMisses:     b.FindMisses.Load(),
		FindMatches:    b.FindMatches.Load(),
		FindAvgNanos:   avg(b.FindTotalNanos.Load(), b.FindCount.Load()),
		RemoveCount:    b.RemoveCount.Load(),
		RemoveMisses:   b.RemoveMisses.Load(),
		ClearCount:     b.ClearCount.Load(),
		ClearedEntries: b.ClearedEntries.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount    int64
	InsertErrors   int64
	InsertAvgNanos int64
	FindCount      int64
	FindMisses     int64
	FindMatches    int64
	FindAvgNanos   int64
	RemoveCount    int64
	RemoveMisses   int64
	ClearCount     int64
	ClearedEntries int64
}
