package billing

import (
	"strconv"
	"strings"
)

// Unresolved is what ResolveMonthLabel returns when a label carries no
// numeric meaning. Billing periods start at 1, so 0 fails every equality
// comparison instead of accidentally matching one.
const Unresolved = 0

// arabicMonths maps the twelve ordinal month phrases used by the console's
// month picker to billing periods. This table must stay in lock-step with
// the picker: a phrase the resolver does not know resolves to 0, which reads
// as permanently unpaid in the UI.
//
// Compound phrases come first so "الثاني عشر" matches before "الثاني" and
// "الحادي عشر" before anything shorter.
var arabicMonths = []struct {
	phrase string
	period int
}{
	{"الثاني عشر", 12},
	{"الحادي عشر", 11},
	{"الأول", 1},
	{"الثاني", 2},
	{"الثالث", 3},
	{"الرابع", 4},
	{"الخامس", 5},
	{"السادس", 6},
	{"السابع", 7},
	{"الثامن", 8},
	{"التاسع", 9},
	{"العاشر", 10},
}

// ResolveMonthLabel turns a free-text paid-month label into a billing
// period. Labels were entered through several UI generations (plain numbers,
// Arabic ordinal phrases, free text with an embedded number), so resolution
// is layered, first match wins:
//
//  1. the whole label parses as an integer — returned as-is, it already is
//     the billing period;
//  2. the label contains one of the twelve Arabic ordinal month phrases;
//  3. the label contains an embedded digit run ("شهر3", "الشهر 3");
//  4. nothing matched — Unresolved.
//
// The function is total: it never fails, any input yields an int.
func ResolveMonthLabel(label string) int {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return Unresolved
	}

	if n, err := strconv.Atoi(trimmed); err == nil {
		if n < 0 {
			return Unresolved
		}
		return n
	}

	for _, m := range arabicMonths {
		if strings.Contains(trimmed, m.phrase) {
			return m.period
		}
	}

	if n, ok := embeddedNumber(trimmed); ok {
		return n
	}
	return Unresolved
}

// embeddedNumber extracts the first run of ASCII digits from s.
func embeddedNumber(s string) (int, bool) {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, err := strconv.Atoi(s[start:i])
			return n, err == nil
		}
	}
	if start >= 0 {
		n, err := strconv.Atoi(s[start:])
		return n, err == nil
	}
	return 0, false
}
