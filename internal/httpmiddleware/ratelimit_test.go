package httpmiddleware

import (
	"testing"
	"time"
)

func TestIPLimiterBurstThenBlock(t *testing.T) {
	l := NewIPLimiter(3)
	now := time.Now()
	for i := 0; i < 3; i++ {
		if !l.allow("1.2.3.4", now) {
			t.Fatalf("request %d within burst should pass", i+1)
		}
	}
	if l.allow("1.2.3.4", now) {
		t.Fatal("fourth immediate request should be blocked")
	}
	// Another client has its own bucket.
	if !l.allow("5.6.7.8", now) {
		t.Fatal("separate client should not be affected")
	}
}

func TestIPLimiterRefill(t *testing.T) {
	l := NewIPLimiter(60)
	now := time.Now()
	for i := 0; i < 60; i++ {
		l.allow("c", now)
	}
	if l.allow("c", now) {
		t.Fatal("bucket should be empty")
	}
	if !l.allow("c", now.Add(2*time.Second)) {
		t.Fatal("2s at 60/min should refill at least one token")
	}
}

func TestIPLimiterPrunesIdleBuckets(t *testing.T) {
	l := NewIPLimiter(10)
	now := time.Now()
	l.allow("old", now)
	l.allow("fresh", now.Add(staleAfter))
	// Trigger the periodic scan well past the stale window.
	l.allow("fresh", now.Add(2*staleAfter+time.Minute))
	l.mu.Lock()
	_, oldKept := l.buckets["old"]
	l.mu.Unlock()
	if oldKept {
		t.Fatal("idle bucket should have been pruned")
	}
}
