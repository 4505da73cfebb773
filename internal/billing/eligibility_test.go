package billing

import (
	"reflect"
	"testing"
)

func TestHasPaidForLesson(t *testing.T) {
	cases := []struct {
		name     string
		payments []PaymentView
		lesson   int
		want     bool
	}{
		{
			name:     "arabic label covers second period",
			payments: []PaymentView{{PaidMonths: []string{"الشهر الثاني"}}},
			lesson:   10, // period 2
			want:     true,
		},
		{
			name:     "numeric label covers third period",
			payments: []PaymentView{{PaidMonths: []string{"3"}}},
			lesson:   17, // period 3
			want:     true,
		},
		{
			name:     "no payments",
			payments: nil,
			lesson:   1,
			want:     false,
		},
		{
			name:     "paid a different period",
			payments: []PaymentView{{PaidMonths: []string{"1"}}},
			lesson:   9,
			want:     false,
		},
		{
			name:     "unresolvable label never matches",
			payments: []PaymentView{{PaidMonths: []string{"كاش"}}},
			lesson:   1,
			want:     false,
		},
		{
			name: "any payment in the list may match",
			payments: []PaymentView{
				{PaidMonths: []string{"1"}},
				{PaidMonths: []string{"الشهر الرابع"}},
			},
			lesson: 26, // period 4
			want:   true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := HasPaidForLesson(c.payments, c.lesson, 8); got != c.want {
				t.Fatalf("HasPaidForLesson(lesson %d) = %v, want %v", c.lesson, got, c.want)
			}
		})
	}
}

func TestPaidPeriodsDeduplicates(t *testing.T) {
	payments := []PaymentView{
		{PaidMonths: []string{"3"}},
		{PaidMonths: []string{"الشهر الثالث"}},
		{PaidMonths: []string{"1"}},
		{PaidMonths: []string{"دفعة غير معروفة"}},
	}
	periods, unresolved := PaidPeriods(payments)

	wantPeriods := []PaidPeriod{
		{Period: 1, Labels: []string{"1"}},
		{Period: 3, Labels: []string{"3", "الشهر الثالث"}},
	}
	if !reflect.DeepEqual(periods, wantPeriods) {
		t.Fatalf("periods = %#v, want %#v", periods, wantPeriods)
	}
	if len(unresolved) != 1 || unresolved[0] != "دفعة غير معروفة" {
		t.Fatalf("unresolved = %#v", unresolved)
	}
}

func TestPaidPeriodsEmpty(t *testing.T) {
	periods, unresolved := PaidPeriods(nil)
	if len(periods) != 0 || len(unresolved) != 0 {
		t.Fatalf("want empty report, got %#v / %#v", periods, unresolved)
	}
}
