package agent

import (
	"testing"
	"time"
)

func TestHealthScore(t *testing.T) {
	tests := []struct {
		name      string
		successes int
		total     int
		errCount  int
		want      float64
	}{
		{"untouched evaluator", 0, 0, 0, 100},
		{"all successes", 10, 10, 0, 100},
		{"half successes", 5, 10, 0, 50},
		{"errors subtract five each", 9, 10, 2, 80},
		{"floor at zero", 0, 10, 30, 0},
		{"penalty below floor", 1, 10, 4, 0},
	}
	for _, tt := range tests {
		if got := healthScore(tt.successes, tt.total, tt.errCount); got != tt.want {
			t.Fatalf("%s: healthScore(%d, %d, %d) = %f, want %f",
				tt.name, tt.successes, tt.total, tt.errCount, got, tt.want)
		}
	}
}

func TestHealthScoreBounds(t *testing.T) {
	// Whatever the counter mix, the score stays inside [0, 100].
	for successes := 0; successes <= 10; successes++ {
		for errCount := 0; errCount <= 25; errCount += 5 {
			got := healthScore(successes, 10, errCount)
			if got < 0 || got > 100 {
				t.Fatalf("healthScore(%d, 10, %d) = %f out of range", successes, errCount, got)
			}
		}
	}
}

func TestMetricsIncrementalAverage(t *testing.T) {
	m := newMetrics()
	durations := []time.Duration{100 * time.Millisecond, 300 * time.Millisecond, 200 * time.Millisecond}
	for _, d := range durations {
		m.totalRequests++
		m.record(d, true)
	}
	if m.averageResponse != 200*time.Millisecond {
		t.Fatalf("expected average 200ms, got %s", m.averageResponse)
	}
	if m.successfulRequests != 3 || m.failedRequests != 0 {
		t.Fatalf("unexpected counters: %+v", m)
	}
	if m.healthScore != 100 {
		t.Fatalf("expected health 100, got %f", m.healthScore)
	}
}

func TestMetricsRecordFailure(t *testing.T) {
	m := newMetrics()
	m.totalRequests++
	m.record(50*time.Millisecond, true)
	m.totalRequests++
	m.errorCount++
	m.record(150*time.Millisecond, false)

	if m.failedRequests != 1 {
		t.Fatalf("expected 1 failure, got %d", m.failedRequests)
	}
	// 1 success of 2 requests = 50, minus one error penalty of 5.
	if m.healthScore != 45 {
		t.Fatalf("expected health 45, got %f", m.healthScore)
	}
	if m.averageResponse != 100*time.Millisecond {
		t.Fatalf("expected average 100ms, got %s", m.averageResponse)
	}
}
