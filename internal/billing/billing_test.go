package billing

import "testing"

func TestNextLessonNumber(t *testing.T) {
	if got := NextLessonNumber(nil); got != 1 {
		t.Fatalf("empty history: want 1, got %d", got)
	}
	if got := NextLessonNumber([]int{1, 2, 3}); got != 4 {
		t.Fatalf("want 4, got %d", got)
	}
	// Unordered input, gaps allowed.
	if got := NextLessonNumber([]int{7, 2, 11, 4}); got != 12 {
		t.Fatalf("want 12, got %d", got)
	}
	// Deleting the max record means the number gets reused. Intentional.
	if got := NextLessonNumber([]int{1, 2, 3, 5}); got != 6 {
		t.Fatalf("want 6, got %d", got)
	}
}

func TestNextLessonNumberMonotonic(t *testing.T) {
	histories := [][]int{{1}, {3, 9, 2}, {100}, {8, 8, 8}}
	for _, h := range histories {
		next := NextLessonNumber(h)
		for _, n := range h {
			if next <= n {
				t.Fatalf("next %d not greater than existing %d in %v", next, n, h)
			}
		}
	}
}

func TestBillingPeriodBoundaries(t *testing.T) {
	cases := []struct {
		raw, want int
	}{
		{1, 1}, {7, 1}, {8, 1}, {9, 2}, {16, 2}, {17, 3}, {24, 3}, {25, 4},
	}
	for _, c := range cases {
		if got := BillingPeriod(c.raw, 8); got != c.want {
			t.Errorf("BillingPeriod(%d, 8) = %d, want %d", c.raw, got, c.want)
		}
	}
	// Period only changes when n is a multiple of the bucket size.
	for n := 1; n <= 64; n++ {
		same := BillingPeriod(n, 8) == BillingPeriod(n+1, 8)
		if n%8 == 0 && same {
			t.Errorf("period did not advance after lesson %d", n)
		}
		if n%8 != 0 && !same {
			t.Errorf("period advanced mid-bucket at lesson %d", n)
		}
	}
}

func TestBillingPeriodClampsInvalidInput(t *testing.T) {
	if got := BillingPeriod(0, 8); got != 1 {
		t.Fatalf("raw 0: want clamp to 1, got %d", got)
	}
	if got := BillingPeriod(-5, 8); got != 1 {
		t.Fatalf("raw -5: want clamp to 1, got %d", got)
	}
	// Broken bucket size falls back to the default.
	if got := BillingPeriod(9, 0); got != 2 {
		t.Fatalf("bucket 0: want default bucket, got period %d", got)
	}
}

func TestPeriodRoundTrip(t *testing.T) {
	for n := 1; n <= 200; n++ {
		p := BillingPeriod(n, 8)
		if first := FirstLessonOf(p, 8); first > n {
			t.Fatalf("lesson %d: first lesson %d of period %d after it", n, first, p)
		}
		if last := LastLessonOf(p, 8); last < n {
			t.Fatalf("lesson %d: last lesson %d of period %d before it", n, last, p)
		}
	}
}

func TestDisplayLessonNumber(t *testing.T) {
	cases := []struct {
		raw, want int
	}{
		{1, 1}, {8, 8}, {9, 1}, {16, 8}, {17, 1}, {0, 1},
	}
	for _, c := range cases {
		if got := DisplayLessonNumber(c.raw, 8); got != c.want {
			t.Errorf("DisplayLessonNumber(%d, 8) = %d, want %d", c.raw, got, c.want)
		}
	}
}
