//go:build testutil
// +build testutil

package attendance_test

import (
	"context"
	"testing"
	"time"

	"tutordesk/internal/attendance"
	"tutordesk/internal/billing"
	"tutordesk/internal/roster"
	"tutordesk/internal/store"
	"tutordesk/internal/testutil/testdb"
)

func TestRepositoryLessonNumbering(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	exec := store.NewExecutor(h.DB.Client)
	students := roster.NewRepository(exec)
	repo := attendance.NewRepository(exec)

	st, err := students.Insert(ctx, roster.Student{
		Code: "111222", Name: "Lina", Group: "sat-a", PasswordHash: "x",
	})
	if err != nil {
		t.Fatal(err)
	}

	day := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	var last attendance.Record
	for i := 0; i < 3; i++ {
		nums, err := repo.LessonNumbers(ctx, st.ID)
		if err != nil {
			t.Fatal(err)
		}
		last, err = repo.Insert(ctx, attendance.Record{
			StudentID:    st.ID,
			Status:       attendance.Present,
			LessonNumber: billing.NextLessonNumber(nums),
			NotedOn:      day.AddDate(0, 0, i),
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	if last.LessonNumber != 3 {
		t.Fatalf("want third record to be lesson 3, got %d", last.LessonNumber)
	}

	// Deleting the newest record frees its number for the next check-in.
	if err := repo.Delete(ctx, last.ID); err != nil {
		t.Fatal(err)
	}
	nums, err := repo.LessonNumbers(ctx, st.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got := billing.NextLessonNumber(nums); got != 3 {
		t.Fatalf("want lesson 3 reissued after delete, got %d", got)
	}

	seen, err := repo.StudentIDsWithRecordOn(ctx, day)
	if err != nil {
		t.Fatal(err)
	}
	if !seen[st.ID] {
		t.Fatal("student with same-day record missing from the seen set")
	}
}
