package monitoring

import (
	"errors"
	"testing"
	"time"
)

func TestRecordInvocation(t *testing.T) {
	monitor := NewMonitor()

	monitor.RecordInvocation("calc", 100*time.Millisecond, nil)
	monitor.RecordInvocation("calc", 300*time.Millisecond, errors.New("boom"))

	stats := monitor.Stats("calc")
	if stats.Invocations != 2 {
		t.Errorf("expected 2 invocations, got %d", stats.Invocations)
	}
	if stats.Errors != 1 {
		t.Errorf("expected 1 error, got %d", stats.Errors)
	}
	if stats.AverageLatency() != 200*time.Millisecond {
		t.Errorf("expected 200ms average latency, got %v", stats.AverageLatency())
	}

	if unknown := monitor.Stats("unknown"); unknown.Invocations != 0 {
		t.Error("unknown chain should have empty stats")
	}
}

func TestRecordFallback(t *testing.T) {
	monitor := NewMonitor()

	var metrics []Metric
	monitor.OnMetric(func(chain string, metric Metric) {
		if chain == "calc" {
			metrics = append(metrics, metric)
		}
	})

	monitor.RecordFallback("calc", 1)

	stats := monitor.Stats("calc")
	if stats.FallbackActivations != 1 {
		t.Errorf("expected 1 fallback activation, got %d", stats.FallbackActivations)
	}

	if len(metrics) != 1 || metrics[0].Type != MetricTypeFallbacks {
		t.Fatalf("expected one fallback metric, got %+v", metrics)
	}
	if metrics[0].Value != 1 {
		t.Errorf("fallback metric should carry the attempt number, got %v", metrics[0].Value)
	}
}
