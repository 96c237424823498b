package xdmfgo

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
//	    meshCounter   prometheus.Counter
//	    stepHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordWriteMesh(duration time.Duration, err error) {
//	    p.meshCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordWriteMesh is called after each mesh write.
	// duration is the total time taken, err is nil if successful.
	RecordWriteMesh(duration time.Duration, err error)

	// RecordWriteData is called after each time step write.
	RecordWriteData(duration time.Duration, err error)

	// RecordFlush is called after each flush.
	RecordFlush(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordWriteMesh(time.Duration, error) {}
func (NoopMetricsCollector) RecordWriteData(time.Duration, error) {}
func (NoopMetricsCollector) RecordFlush(time.Duration, error)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	WriteMeshCount      atomic.Int64
	WriteMeshErrors     atomic.Int64
	WriteMeshTotalNanos atomic.Int64
	WriteDataCount      atomic.Int64
	WriteDataErrors     atomic.Int64
	WriteDataTotalNanos atomic.Int64
	FlushCount          atomic.Int64
	FlushErrors         atomic.Int64
}

// RecordWriteMesh implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWriteMesh(duration time.Duration, err error) {
	b.WriteMeshCount.Add(1)
	b.WriteMeshTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.WriteMeshErrors.Add(1)
	}
}

// RecordWriteData implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWriteData(duration time.Duration, err error) {
	b.WriteDataCount.Add(1)
	b.WriteDataTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.WriteDataErrors.Add(1)
	}
}

// RecordFlush implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFlush(duration time.Duration, err error) {
	b.FlushCount.Add(1)
	if err != nil {
		b.FlushErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		WriteMeshCount:    b.WriteMeshCount.Load(),
		WriteMeshErrors:   b.WriteMeshErrors.Load(),
		WriteMeshAvgNanos: b.getAvgWriteMeshNanos(),
		WriteDataCount:    b.WriteDataCount.Load(),
		WriteDataErrors:   b.WriteDataErrors.Load(),
		WriteDataAvgNanos: b.getAvgWriteDataNanos(),
		FlushCount:        b.FlushCount.Load(),
		FlushErrors:       b.FlushErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgWriteMeshNanos() int64 {
	count := b.WriteMeshCount.Load()
	if count == 0 {
		return 0
	}
	return b.WriteMeshTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgWriteDataNanos() int64 {
	count := b.WriteDataCount.Load()
	if count == 0 {
		return 0
	}
	return b.WriteDataTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	WriteMeshCount    int64
	WriteMeshErrors   int64
	WriteMeshAvgNanos int64
	WriteDataCount    int64
	WriteDataErrors   int64
	WriteDataAvgNanos int64
	FlushCount        int64
	FlushErrors       int64
}
