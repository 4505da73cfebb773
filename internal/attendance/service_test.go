package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"tutordesk/internal/roster"
	"tutordesk/internal/store"
)

type stubRepo struct {
	numbers    []int
	numbersErr error
	inserted   []Record
}

func (r *stubRepo) Insert(_ context.Context, rec Record) (Record, error) {
	rec.ID = "rec-1"
	rec.NotedAt = time.Now().UTC()
	r.inserted = append(r.inserted, rec)
	return rec, nil
}

func (r *stubRepo) LessonNumbers(context.Context, string) ([]int, error) {
	return r.numbers, r.numbersErr
}

func (r *stubRepo) History(context.Context, string) ([]Record, error) { return nil, nil }
func (r *stubRepo) Delete(context.Context, string) error              { return nil }

func (r *stubRepo) StudentIDsWithRecordOn(context.Context, time.Time) (map[string]bool, error) {
	return nil, nil
}

func (r *stubRepo) ListOn(context.Context, time.Time, string) ([]Record, error) {
	return nil, nil
}

type stubDirectory struct {
	student roster.Student
}

func (d *stubDirectory) GetByCode(_ context.Context, code string) (roster.Student, error) {
	if code != d.student.Code {
		return roster.Student{}, roster.ErrNotFound
	}
	return d.student, nil
}

func (d *stubDirectory) List(context.Context, string, string) ([]roster.Student, error) {
	return []roster.Student{d.student}, nil
}

type stubEligibility struct {
	paid bool
	err  error
}

func (e *stubEligibility) EligibleForLesson(context.Context, string, int) (bool, error) {
	return e.paid, e.err
}

func TestScanFailsWhenLessonNumbersUnavailable(t *testing.T) {
	repo := &stubRepo{numbersErr: store.ErrUnavailable}
	dir := &stubDirectory{student: roster.Student{ID: "st-1", Code: "123456", Name: "Omar"}}
	svc := NewService(repo, dir, &stubEligibility{}, 8)

	_, err := svc.Scan(context.Background(), "123456")
	if !errors.Is(err, store.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("no record may be written from a failed fetch, got %d inserts", len(repo.inserted))
	}
}

func TestScanComputesNextLesson(t *testing.T) {
	repo := &stubRepo{numbers: []int{1, 2, 5}}
	dir := &stubDirectory{student: roster.Student{ID: "st-1", Code: "123456", Name: "Omar"}}
	svc := NewService(repo, dir, &stubEligibility{paid: true}, 8)

	res, err := svc.Scan(context.Background(), "123456")
	if err != nil {
		t.Fatal(err)
	}
	if res.LessonNumber != 6 {
		t.Fatalf("want lesson 6 after max 5, got %d", res.LessonNumber)
	}
	if res.DisplayNumber != 6 || res.BillingPeriod != 1 {
		t.Fatalf("want display 6 period 1, got %d %d", res.DisplayNumber, res.BillingPeriod)
	}
	if !res.Paid || res.PaidUnknown {
		t.Fatalf("want paid, got %+v", res)
	}
	if len(repo.inserted) != 1 || repo.inserted[0].LessonNumber != 6 {
		t.Fatalf("want one insert with lesson 6, got %+v", repo.inserted)
	}
	if repo.inserted[0].Status != Present {
		t.Fatalf("scan must record Present, got %s", repo.inserted[0].Status)
	}
}

func TestScanDegradesOnEligibilityError(t *testing.T) {
	repo := &stubRepo{}
	dir := &stubDirectory{student: roster.Student{ID: "st-1", Code: "123456"}}
	svc := NewService(repo, dir, &stubEligibility{err: store.ErrUnavailable}, 8)

	res, err := svc.Scan(context.Background(), "123456")
	if err != nil {
		t.Fatal(err)
	}
	if !res.PaidUnknown || res.Paid {
		t.Fatalf("eligibility failure must degrade to unknown, got %+v", res)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("the record must still be saved, got %d inserts", len(repo.inserted))
	}
}

func TestScanUnknownCode(t *testing.T) {
	repo := &stubRepo{}
	dir := &stubDirectory{student: roster.Student{ID: "st-1", Code: "123456"}}
	svc := NewService(repo, dir, &stubEligibility{}, 8)

	if _, err := svc.Scan(context.Background(), "000000"); !errors.Is(err, roster.ErrNotFound) {
		t.Fatalf("want ErrNotFound for unknown code, got %v", err)
	}
}
