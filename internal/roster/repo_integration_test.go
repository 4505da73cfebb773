//go:build testutil
// +build testutil

package roster_test

import (
	"context"
	"errors"
	"testing"

	"tutordesk/internal/roster"
	"tutordesk/internal/store"
	"tutordesk/internal/testutil/testdb"
)

func TestRepositoryRoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	repo := roster.NewRepository(store.NewExecutor(h.DB.Client))

	st, err := repo.Insert(ctx, roster.Student{
		Code:         "123456",
		Name:         "Huda",
		Group:        "sat-a",
		Grade:        "10",
		ParentPhone:  "+201000000001",
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatal(err)
	}
	if st.ID == "" || st.CreatedAt.IsZero() {
		t.Fatalf("insert did not fill server fields: %+v", st)
	}

	got, err := repo.GetByCode(ctx, "123456")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != st.ID || got.Name != "Huda" {
		t.Fatalf("GetByCode mismatch: %+v", got)
	}

	// The code column is unique; a second insert with the same code must
	// surface the dedicated error so the service can retry with a new code.
	if _, err := repo.Insert(ctx, roster.Student{Code: "123456", Name: "Other", Group: "sat-a", PasswordHash: "x"}); !errors.Is(err, roster.ErrDuplicateCode) {
		t.Fatalf("want ErrDuplicateCode, got %v", err)
	}

	st.Group = "sun-b"
	if err := repo.Update(ctx, st); err != nil {
		t.Fatal(err)
	}
	got, err = repo.GetByID(ctx, st.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Group != "sun-b" {
		t.Fatalf("update not persisted: %+v", got)
	}

	kids, err := repo.ListByParentPhone(ctx, "+201000000001")
	if err != nil {
		t.Fatal(err)
	}
	if len(kids) != 1 {
		t.Fatalf("want 1 child, got %d", len(kids))
	}

	if err := repo.Delete(ctx, st.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.GetByID(ctx, st.ID); !errors.Is(err, roster.ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
}
