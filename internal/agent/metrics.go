package agent

import "time"

// metrics holds the running health and performance counters for one
// evaluator. The owning Core mutates it only from its own task-processing
// path.
type metrics struct {
	totalRequests      int
	successfulRequests int
	failedRequests     int
	errorCount         int
	averageResponse    time.Duration
	healthScore        float64
}

func newMetrics() metrics {
	return metrics{healthScore: 100}
}

// record folds one completed task into the running counters. The caller has
// already incremented totalRequests when the task was admitted, so
// totalRequests is the post-increment n of the incremental average:
//
//	new_avg = (old_avg*(n-1) + elapsed) / n
func (m *metrics) record(elapsed time.Duration, success bool) {
	if success {
		m.successfulRequests++
	} else {
		m.failedRequests++
	}
	if n := m.totalRequests; n > 0 {
		m.averageResponse = (m.averageResponse*time.Duration(n-1) + elapsed) / time.Duration(n)
	}
	m.healthScore = healthScore(m.successfulRequests, m.totalRequests, m.errorCount)
}

// healthScore derives the 0-100 fitness metric:
// clamp(success_rate − 5·error_count, 0, 100).
func healthScore(successes, total, errorCount int) float64 {
	if total <= 0 {
		return 100
	}
	rate := float64(successes) / float64(total) * 100
	score := rate - float64(errorCount)*5
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
