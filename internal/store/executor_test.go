package store

import (
	"testing"
	"time"
)

func TestLinearBackOffGrows(t *testing.T) {
	b := &linearBackOff{step: 200 * time.Millisecond}
	for i, want := range []time.Duration{
		200 * time.Millisecond,
		400 * time.Millisecond,
		600 * time.Millisecond,
	} {
		if got := b.NextBackOff(); got != want {
			t.Fatalf("attempt %d: got %v, want %v", i+1, got, want)
		}
	}
	b.Reset()
	if got := b.NextBackOff(); got != 200*time.Millisecond {
		t.Fatalf("after reset: got %v, want 200ms", got)
	}
}
