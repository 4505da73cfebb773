package billing

import "sort"

// PaymentView is the slice of a payment the eligibility check needs: just
// the paid-month labels recorded against it.
type PaymentView struct {
	ID         string
	PaidMonths []string
}

// HasPaidForLesson reports whether any payment carries a paid-month label
// resolving to the billing period that covers rawLesson. An empty payment
// list simply means not paid; callers whose fetch failed pass what they have.
//
// The check only annotates the scan result. Attendance registration succeeds
// either way; payment enforcement at check-in is informational.
func HasPaidForLesson(payments []PaymentView, rawLesson, bucketSize int) bool {
	required := BillingPeriod(rawLesson, bucketSize)
	for _, p := range payments {
		for _, label := range p.PaidMonths {
			if ResolveMonthLabel(label) == required {
				return true
			}
		}
	}
	return false
}

// PaidPeriod is one resolved billing period with every raw label that
// claimed it. Two payments may claim the same period through different
// spellings ("3" and "الشهر الثالث"); the report groups them instead of
// guessing which one to hide.
type PaidPeriod struct {
	Period int
	Labels []string
}

// PaidPeriods folds a student's payments into de-duplicated resolved
// periods, sorted ascending. Labels that resolve to nothing come back in
// unresolved so the console can surface them rather than silently treating
// them as unpaid.
func PaidPeriods(payments []PaymentView) (periods []PaidPeriod, unresolved []string) {
	byPeriod := make(map[int][]string)
	for _, p := range payments {
		for _, label := range p.PaidMonths {
			n := ResolveMonthLabel(label)
			if n == Unresolved {
				unresolved = append(unresolved, label)
				continue
			}
			byPeriod[n] = append(byPeriod[n], label)
		}
	}
	for n, labels := range byPeriod {
		periods = append(periods, PaidPeriod{Period: n, Labels: labels})
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Period < periods[j].Period })
	return periods, unresolved
}
