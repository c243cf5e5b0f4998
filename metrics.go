package recgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordLoad is called after each load operation.
	// count is the number of records loaded, duration the total time taken,
	// err is nil if successful.
	RecordLoad(count int, duration time.Duration, err error)

	// RecordCreate is called after each model creation.
	RecordCreate(duration time.Duration, err error)

	// RecordQuery is called after each query operation.
	RecordQuery(duration time.Duration, err error)

	// RecordRemove is called after each removal operation.
	// removed is the number of records actually removed.
	RecordRemove(removed int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordCreate(time.Duration, error)      {}
func (NoopMetricsCollector) RecordQuery(time.Duration, error)       {}
func (NoopMetricsCollector) RecordRemove(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount       atomic.Int64
	LoadRecords     atomic.Int64
	LoadErrors      atomic.Int64
	LoadTotalNanos  atomic.Int64
	CreateCount     atomic.Int64
	CreateErrors    atomic.Int64
	QueryCount      atomic.Int64
	QueryErrors     atomic.Int64
	QueryTotalNanos atomic.Int64
	RemoveCount     atomic.Int64
	RemoveRecords   atomic.Int64
	RemoveErrors    atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(count int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadRecords.Add(int64(count))
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordCreate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCreate(duration time.Duration, err error) {
	b.CreateCount.Add(1)
	if err != nil {
		b.CreateErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(removed int, duration time.Duration, err error) {
	b.RemoveCount.Add(1)
	b.RemoveRecords.Add(int64(removed))
	if err != nil {
		b.RemoveErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:     b.LoadCount.Load(),
		LoadRecords:   b.LoadRecords.Load(),
		LoadErrors:    b.LoadErrors.Load(),
		LoadAvgNanos:  b.getAvgLoadNanos(),
		CreateCount:   b.CreateCount.Load(),
		CreateErrors:  b.CreateErrors.Load(),
		QueryCount:    b.QueryCount.Load(),
		QueryErrors:   b.QueryErrors.Load(),
		QueryAvgNanos: b.getAvgQueryNanos(),
		RemoveCount:   b.RemoveCount.Load(),
		RemoveRecords: b.RemoveRecords.Load(),
		RemoveErrors:  b.RemoveErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgLoadNanos() int64 {
	count := b.LoadCount.Load()
	if count == 0 {
		return 0
	}
	return b.LoadTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgQueryNanos() int64 {
	count := b.QueryCount.Load()
	if count == 0 {
		return 0
	}
	return b.QueryTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount     int64
	LoadRecords   int64
	LoadErrors    int64
	LoadAvgNanos  int64
	CreateCount   int64
	CreateErrors  int64
	QueryCount    int64
	QueryErrors   int64
	QueryAvgNanos int64
	RemoveCount   int64
	RemoveRecords int64
	RemoveErrors  int64
}
