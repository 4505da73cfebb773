//go:build testutil
// +build testutil

package payments_test

import (
	"context"
	"errors"
	"testing"

	"tutordesk/internal/payments"
	"tutordesk/internal/roster"
	"tutordesk/internal/store"
	"tutordesk/internal/testutil/testdb"
)

func TestRepositoryPaymentWithMonths(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	exec := store.NewExecutor(h.DB.Client)
	students := roster.NewRepository(exec)
	repo := payments.NewRepository(exec)

	st, err := students.Insert(ctx, roster.Student{
		Code: "654321", Name: "Yousef", Group: "sat-a", PasswordHash: "x",
	})
	if err != nil {
		t.Fatal(err)
	}

	p, err := repo.Insert(ctx, payments.Payment{
		StudentID:   st.ID,
		StudentName: st.Name,
		StudentCode: st.Code,
		Group:       st.Group,
		Month:       "الشهر الثالث",
		Amount:      300,
		PaidMonths:  []payments.PaidMonth{{Month: "الشهر الثالث"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	list, err := repo.ListByStudent(ctx, st.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("want 1 payment, got %d", len(list))
	}
	if len(list[0].PaidMonths) != 1 || list[0].PaidMonths[0].Month != "الشهر الثالث" {
		t.Fatalf("paid months not stitched back: %+v", list[0].PaidMonths)
	}

	byGroup, err := repo.ListByGroupAndMonth(ctx, "sat-a", "الشهر الثالث")
	if err != nil {
		t.Fatal(err)
	}
	if len(byGroup) != 1 {
		t.Fatalf("group/month filter missed the payment: got %d", len(byGroup))
	}

	studentID, err := repo.Delete(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if studentID != st.ID {
		t.Fatalf("delete returned wrong owner %q", studentID)
	}
	if _, err := repo.Delete(ctx, p.ID); !errors.Is(err, payments.ErrNotFound) {
		t.Fatalf("want ErrNotFound on second delete, got %v", err)
	}
}
