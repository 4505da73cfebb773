package billing

import "testing"

func TestResolveMonthLabelNumeric(t *testing.T) {
	cases := []struct {
		label string
		want  int
	}{
		{"5", 5},
		{" 12 ", 12},
		{"0", Unresolved},
		{"-3", Unresolved},
		// Raw numbers are the billing period already, no 1..12 cap.
		{"15", 15},
	}
	for _, c := range cases {
		if got := ResolveMonthLabel(c.label); got != c.want {
			t.Errorf("ResolveMonthLabel(%q) = %d, want %d", c.label, got, c.want)
		}
	}
}

func TestResolveMonthLabelArabic(t *testing.T) {
	cases := []struct {
		label string
		want  int
	}{
		{"الشهر الأول", 1},
		{"الشهر الثاني", 2},
		{"الشهر الثالث", 3},
		{"الشهر الرابع", 4},
		{"الشهر الخامس", 5},
		{"الشهر السادس", 6},
		{"الشهر السابع", 7},
		{"الشهر الثامن", 8},
		{"الشهر التاسع", 9},
		{"الشهر العاشر", 10},
		{"الشهر الحادي عشر", 11},
		// Must not short-circuit on the embedded "الثاني".
		{"الشهر الثاني عشر", 12},
		{"الأول", 1},
	}
	for _, c := range cases {
		if got := ResolveMonthLabel(c.label); got != c.want {
			t.Errorf("ResolveMonthLabel(%q) = %d, want %d", c.label, got, c.want)
		}
	}
}

func TestResolveMonthLabelEmbeddedDigits(t *testing.T) {
	cases := []struct {
		label string
		want  int
	}{
		{"الشهر 3", 3},
		{"شهر3", 3},
		{"paid month 7 cash", 7},
		{"شهر 10 محفظة", 10},
	}
	for _, c := range cases {
		if got := ResolveMonthLabel(c.label); got != c.want {
			t.Errorf("ResolveMonthLabel(%q) = %d, want %d", c.label, got, c.want)
		}
	}
}

func TestResolveMonthLabelTotality(t *testing.T) {
	// Garbage never panics and never resolves.
	garbage := []string{"", "   ", "كاش", "???", "شهر", "الشهر القادم", "\x00\xff"}
	for _, label := range garbage {
		if got := ResolveMonthLabel(label); got != Unresolved {
			t.Errorf("ResolveMonthLabel(%q) = %d, want unresolved", label, got)
		}
	}
}

func TestResolveMonthLabelNumericPriority(t *testing.T) {
	// A label that is entirely a number never takes the phrase path.
	if got := ResolveMonthLabel("5"); got != 5 {
		t.Fatalf("want 5, got %d", got)
	}
}
