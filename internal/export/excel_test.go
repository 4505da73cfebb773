package export

import (
	"testing"
	"time"

	"tutordesk/internal/attendance"
	"tutordesk/internal/payments"
	"tutordesk/internal/roster"
)

func TestColName(t *testing.T) {
	cases := map[int]string{1: "A", 2: "B", 26: "Z", 27: "AA", 28: "AB", 52: "AZ", 53: "BA"}
	for n, want := range cases {
		if got := colName(n); got != want {
			t.Errorf("colName(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestPaymentsWorkbook(t *testing.T) {
	f, err := PaymentsWorkbook([]payments.Payment{
		{StudentName: "سارة", StudentCode: "123456", Group: "A", Month: "الشهر الثالث", Amount: 300, PaidAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := f.GetCellValue("Payments", "D2")
	if err != nil {
		t.Fatal(err)
	}
	if got != "الشهر الثالث" {
		t.Fatalf("month label mangled: %q", got)
	}
	if v, _ := f.GetCellValue("Payments", "E2"); v != "300.00" {
		t.Fatalf("amount = %q", v)
	}
}

func TestAttendanceWorkbook(t *testing.T) {
	students := map[string]roster.Student{
		"s1": {Name: "Omar", Code: "000111", Group: "B"},
	}
	f, err := AttendanceWorkbook([]attendance.Record{
		{StudentID: "s1", Status: attendance.Present, LessonNumber: 9, NotedOn: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
	}, students)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := f.GetCellValue("Attendance", "A2"); v != "Omar" {
		t.Fatalf("student name = %q", v)
	}
	if v, _ := f.GetCellValue("Attendance", "E2"); v != "9" {
		t.Fatalf("lesson = %q", v)
	}
}
