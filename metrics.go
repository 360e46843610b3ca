package rankgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordMatch is called after each match run. considered is the number
	// of candidates pulled from the stream, returned is the page size
	// produced, duration is the total time taken, err is nil on success.
	RecordMatch(considered, returned int, duration time.Duration, err error)

	// RecordCollapse is called after each match run with collapsing
	// enabled. dupsIgnored is the number of candidates collapsed away.
	RecordCollapse(entries, dupsIgnored uint32)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordMatch(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordCollapse(uint32, uint32)              {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	MatchCount      atomic.Int64
	MatchErrors     atomic.Int64
	MatchTotalNanos atomic.Int64
	DocsConsidered  atomic.Int64
	DocsReturned    atomic.Int64
	CollapseEntries atomic.Int64
	DupsIgnored     atomic.Int64
}

// RecordMatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMatch(considered, returned int, duration time.Duration, err error) {
	b.MatchCount.Add(1)
	b.MatchTotalNanos.Add(duration.Nanoseconds())
	b.DocsConsidered.Add(int64(considered))
	b.DocsReturned.Add(int64(returned))
	if err != nil {
		b.MatchErrors.Add(1)
	}
}

// RecordCollapse implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCollapse(entries, dupsIgnored uint32) {
	b.CollapseEntries.Add(int64(entries))
	b.DupsIgnored.Add(int64(dupsIgnored))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	stats := BasicMetricsStats{
		MatchCount:      b.MatchCount.Load(),
		MatchErrors:     b.MatchErrors.Load(),
		DocsConsidered:  b.DocsConsidered.Load(),
		DocsReturned:    b.DocsReturned.Load(),
		CollapseEntries: b.CollapseEntries.Load(),
		DupsIgnored:     b.DupsIgnored.Load(),
	}
	if stats.MatchCount > 0 {
		stats.MatchAvgNanos = b.MatchTotalNanos.Load() / stats.MatchCount
	}
	return stats
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	MatchCount      int64
	MatchErrors     int64
	MatchAvgNanos   int64
	DocsConsidered  int64
	DocsReturned    int64
	CollapseEntries int64
	DupsIgnored     int64
}
