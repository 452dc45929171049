package stats

import (
	"sync"
	"testing"
)

func TestAggregator_BlockRate(t *testing.T) {
	agg := NewAggregator()

	for i := 0; i < 10; i++ {
		agg.RecordRequest()
	}
	for i := 0; i < 3; i++ {
		agg.RecordBlocked("x")
	}

	snap := agg.Snapshot()
	if snap.TotalRequests != 10 {
		t.Errorf("expected 10 total requests, got %d", snap.TotalRequests)
	}
	if snap.BlockedRequests != 3 {
		t.Errorf("expected 3 blocked requests, got %d", snap.BlockedRequests)
	}
	if snap.BlockRate != 0.3 {
		t.Errorf("expected block rate 0.3, got %f", snap.BlockRate)
	}
	if snap.BlockedReasons["x"] != 3 {
		t.Errorf("expected blockedReasons[x]=3, got %d", snap.BlockedReasons["x"])
	}
}

func TestAggregator_EmptySnapshot(t *testing.T) {
	agg := NewAggregator()

	snap := agg.Snapshot()
	if snap.BlockRate != 0 {
		t.Errorf("expected block rate 0 with no requests, got %f", snap.BlockRate)
	}
	if snap.AverageProcessingTime != 0 {
		t.Errorf("expected avg 0 with no latencies, got %f", snap.AverageProcessingTime)
	}
}

func TestAggregator_AverageProcessingTime(t *testing.T) {
	agg := NewAggregator()

	agg.RecordLatency(1.0)
	agg.RecordLatency(2.0)
	agg.RecordLatency(3.0)

	snap := agg.Snapshot()
	if snap.AverageProcessingTime != 2.0 {
		t.Errorf("expected average 2.0, got %f", snap.AverageProcessingTime)
	}
}

func TestAggregator_Reset(t *testing.T) {
	agg := NewAggregator()

	agg.RecordRequest()
	agg.RecordBlocked("y")
	agg.RecordLatency(0.5)
	agg.Reset()

	snap := agg.Snapshot()
	if snap.TotalRequests != 0 || snap.BlockedRequests != 0 {
		t.Errorf("expected counters reset, got total=%d blocked=%d", snap.TotalRequests, snap.BlockedRequests)
	}
	if len(snap.BlockedReasons) != 0 {
		t.Errorf("expected empty reasons, got %v", snap.BlockedReasons)
	}
	if snap.AverageProcessingTime != 0 {
		t.Errorf("expected avg 0 after reset, got %f", snap.AverageProcessingTime)
	}
}

func TestAggregator_ConcurrentUpdates(t *testing.T) {
	agg := NewAggregator()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				agg.RecordRequest()
				agg.RecordBlocked("concurrent")
				agg.RecordLatency(0.01)
			}
		}()
	}
	wg.Wait()

	snap := agg.Snapshot()
	if snap.TotalRequests != 5000 {
		t.Errorf("lost request updates: expected 5000, got %d", snap.TotalRequests)
	}
	if snap.BlockedRequests != 5000 {
		t.Errorf("lost blocked updates: expected 5000, got %d", snap.BlockedRequests)
	}
	if snap.BlockedRequests > snap.TotalRequests {
		t.Error("invariant violated: blocked > total")
	}
	if snap.BlockedReasons["concurrent"] != 5000 {
		t.Errorf("lost reason updates: expected 5000, got %d", snap.BlockedReasons["concurrent"])
	}
}
