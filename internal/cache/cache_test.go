package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestTTLBoundary(t *testing.T) {
	c := New[string, int](600000*time.Millisecond, 10)
	base := time.Unix(0, 0)
	c.now = func() time.Time { return base }
	c.Set("k", 42)

	c.now = func() time.Time { return base.Add(599999 * time.Millisecond) }
	if v, ok := c.Get("k"); !ok || v != 42 {
		t.Fatalf("entry should still be valid at 599999ms, got %v %v", v, ok)
	}

	c.now = func() time.Time { return base.Add(600001 * time.Millisecond) }
	if _, ok := c.Get("k"); ok {
		t.Fatal("entry should be expired at 600001ms")
	}
}

func TestSizeCapKeepsMostRecent(t *testing.T) {
	c := New[int, int](time.Hour, 100)
	base := time.Unix(0, 0)
	tick := 0
	c.now = func() time.Time { tick++; return base.Add(time.Duration(tick) * time.Second) }

	for i := 0; i < 101; i++ {
		c.Set(i, i)
	}
	if got := c.Len(); got != 100 {
		t.Fatalf("want 100 live entries, got %d", got)
	}
	// The oldest write (key 0) is the one evicted.
	if _, ok := c.Get(0); ok {
		t.Fatal("oldest entry survived the cap")
	}
	for i := 1; i < 101; i++ {
		if _, ok := c.Get(i); !ok {
			t.Fatalf("recent entry %d evicted", i)
		}
	}
}

func TestNegativeCaching(t *testing.T) {
	c := New[string, string](time.Minute, 10)
	if _, _, cached := c.Lookup("ghost"); cached {
		t.Fatal("nothing cached yet")
	}

	c.SetMissing("ghost")
	_, found, cached := c.Lookup("ghost")
	if !cached {
		t.Fatal("negative entry should count as cached")
	}
	if found {
		t.Fatal("negative entry should not report a value")
	}

	// Get treats a negative entry as a plain miss.
	if _, ok := c.Get("ghost"); ok {
		t.Fatal("Get must not surface negative entries")
	}
}

func TestSweepDropsExpired(t *testing.T) {
	c := New[string, int](time.Minute, 100)
	base := time.Unix(0, 0)
	c.now = func() time.Time { return base }
	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("old-%d", i), i)
	}
	c.now = func() time.Time { return base.Add(2 * time.Minute) }
	c.Set("fresh", 1)
	c.Sweep()

	if got := c.Len(); got != 1 {
		t.Fatalf("want only the fresh entry, got %d", got)
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Fatal("fresh entry lost in sweep")
	}
}

func TestDelete(t *testing.T) {
	c := New[string, int](time.Minute, 10)
	c.Set("k", 1)
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("deleted entry still readable")
	}
}
