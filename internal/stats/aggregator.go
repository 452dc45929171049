package stats

import "sync"

// Aggregator collects guardrail statistics across concurrent reading
// sessions. It is an injected instance, not package-level state; the only
// mutation surface from outside the pipeline is Snapshot and Reset.
type Aggregator struct {
	mu              sync.Mutex
	totalRequests   uint64
	blockedRequests uint64
	blockedReasons  map[string]uint64
	processingTimes []float64
}

// Snapshot is a point-in-time view of the aggregated statistics.
type Snapshot struct {
	TotalRequests         uint64            `json:"total_requests"`
	BlockedRequests       uint64            `json:"blocked_requests"`
	BlockRate             float64           `json:"block_rate"`
	AverageProcessingTime float64           `json:"average_processing_time"`
	BlockedReasons        map[string]uint64 `json:"blocked_reasons"`
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		blockedReasons: make(map[string]uint64),
	}
}

func (a *Aggregator) RecordRequest() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.totalRequests++
}

func (a *Aggregator) RecordBlocked(reason string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.blockedRequests++
	a.blockedReasons[reason]++
}

// RecordLatency records one session's processing time in seconds.
func (a *Aggregator) RecordLatency(seconds float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.processingTimes = append(a.processingTimes, seconds)
}

func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	blockRate := 0.0
	if a.totalRequests > 0 {
		blockRate = float64(a.blockedRequests) / float64(a.totalRequests)
	}

	avg := 0.0
	if len(a.processingTimes) > 0 {
		sum := 0.0
		for _, t := range a.processingTimes {
			sum += t
		}
		avg = sum / float64(len(a.processingTimes))
	}

	reasons := make(map[string]uint64, len(a.blockedReasons))
	for k, v := range a.blockedReasons {
		reasons[k] = v
	}

	return Snapshot{
		TotalRequests:         a.totalRequests,
		BlockedRequests:       a.blockedRequests,
		BlockRate:             blockRate,
		AverageProcessingTime: avg,
		BlockedReasons:        reasons,
	}
}

func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.totalRequests = 0
	a.blockedRequests = 0
	a.blockedReasons = make(map[string]uint64)
	a.processingTimes = nil
}
