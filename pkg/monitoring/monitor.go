package monitoring

import (
	"sync"
	"time"
)

// MetricType represents the type of metric being tracked
type MetricType string

const (
	MetricTypeInvocations MetricType = "invocations"
	MetricTypeLatency     MetricType = "latency"
	MetricTypeErrors      MetricType = "errors"
	MetricTypeFallbacks   MetricType = "fallbacks"
)

// Metric represents a monitored value
type Metric struct {
	Type      MetricType
	Value     float64
	Timestamp time.Time
	Labels    map[string]string
}

// ChainStats aggregates metrics for a single chain
type ChainStats struct {
	Invocations         int
	Errors              int
	FallbackActivations int
	TotalLatency        time.Duration
}

// AverageLatency returns the mean invocation latency
func (s ChainStats) AverageLatency() time.Duration {
	if s.Invocations == 0 {
		return 0
	}
	return s.TotalLatency / time.Duration(s.Invocations)
}

// Monitor collects metrics for chain invocations
type Monitor struct {
	mu sync.RWMutex

	// Aggregated stats per chain name
	stats map[string]*ChainStats

	// Callbacks for metric updates
	metricCallbacks []func(chain string, metric Metric)
}

// NewMonitor creates a new monitor instance
func NewMonitor() *Monitor {
	return &Monitor{
		stats: make(map[string]*ChainStats),
	}
}

// OnMetric registers a callback invoked for every recorded metric
func (m *Monitor) OnMetric(callback func(chain string, metric Metric)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metricCallbacks = append(m.metricCallbacks, callback)
}

// RecordInvocation records a completed chain invocation
func (m *Monitor) RecordInvocation(chain string, latency time.Duration, err error) {
	m.mu.Lock()

	stats := m.chainStats(chain)
	stats.Invocations++
	stats.TotalLatency += latency
	if err != nil {
		stats.Errors++
	}

	callbacks := m.metricCallbacks
	m.mu.Unlock()

	now := time.Now()
	labels := map[string]string{"chain": chain}

	metrics := []Metric{
		{Type: MetricTypeInvocations, Value: 1, Timestamp: now, Labels: labels},
		{Type: MetricTypeLatency, Value: float64(latency.Milliseconds()), Timestamp: now, Labels: labels},
	}
	if err != nil {
		metrics = append(metrics, Metric{Type: MetricTypeErrors, Value: 1, Timestamp: now, Labels: labels})
	}

	for _, callback := range callbacks {
		for _, metric := range metrics {
			callback(chain, metric)
		}
	}
}

// RecordFallback records that a fallback chain was activated
func (m *Monitor) RecordFallback(chain string, attempt int) {
	m.mu.Lock()

	stats := m.chainStats(chain)
	stats.FallbackActivations++

	callbacks := m.metricCallbacks
	m.mu.Unlock()

	metric := Metric{
		Type:      MetricTypeFallbacks,
		Value:     float64(attempt),
		Timestamp: time.Now(),
		Labels:    map[string]string{"chain": chain},
	}
	for _, callback := range callbacks {
		callback(chain, metric)
	}
}

// Stats returns a copy of the aggregated stats for a chain
func (m *Monitor) Stats(chain string) ChainStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if stats, ok := m.stats[chain]; ok {
		return *stats
	}
	return ChainStats{}
}

// chainStats returns the stats entry for a chain, creating it if needed.
// Caller must hold the lock.
func (m *Monitor) chainStats(chain string) *ChainStats {
	stats, ok := m.stats[chain]
	if !ok {
		stats = &ChainStats{}
		m.stats[chain] = stats
	}
	return stats
}
