package attendance

import (
	"context"
	"sync"
	"time"

	"tutordesk/internal/billing"
	"tutordesk/internal/metrics"
	"tutordesk/internal/roster"
)

// EligibilityChecker answers "is the covering billing period paid" for a
// lesson. Satisfied by the payments service.
type EligibilityChecker interface {
	EligibleForLesson(ctx context.Context, studentID string, rawLesson int) (bool, error)
}

// recordStore is what the service needs from the attendance repository.
type recordStore interface {
	Insert(ctx context.Context, rec Record) (Record, error)
	LessonNumbers(ctx context.Context, studentID string) ([]int, error)
	History(ctx context.Context, studentID string) ([]Record, error)
	Delete(ctx context.Context, id string) error
	StudentIDsWithRecordOn(ctx context.Context, day time.Time) (map[string]bool, error)
	ListOn(ctx context.Context, day time.Time, group string) ([]Record, error)
}

// studentDirectory is what the service needs from the roster.
type studentDirectory interface {
	GetByCode(ctx context.Context, code string) (roster.Student, error)
	List(ctx context.Context, group, grade string) ([]roster.Student, error)
}

// ScanResult is what the console shows after a check-in. Paid is an
// annotation only; the record is saved either way.
type ScanResult struct {
	Student       roster.Student `json:"student"`
	RecordID      string         `json:"record_id"`
	LessonNumber  int            `json:"lesson_number"`
	DisplayNumber int            `json:"display_number"`
	BillingPeriod int            `json:"billing_period"`
	Paid          bool           `json:"paid"`
	PaidUnknown   bool           `json:"paid_unknown,omitempty"`
}

// Service coordinates check-ins and absence registration.
type Service struct {
	repo       recordStore
	students   studentDirectory
	payments   EligibilityChecker
	bucketSize int

	// Serializes scans per student within this process. Two rapid scans of
	// the same card would otherwise compute the same next lesson number from
	// the same snapshot.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService wires the scan flow.
func NewService(repo recordStore, students studentDirectory, payments EligibilityChecker, bucketSize int) *Service {
	if bucketSize <= 0 {
		bucketSize = billing.DefaultBucketSize
	}
	return &Service{
		repo:       repo,
		students:   students,
		payments:   payments,
		bucketSize: bucketSize,
		locks:      make(map[string]*sync.Mutex),
	}
}

func (s *Service) lock(studentID string) func() {
	s.mu.Lock()
	m, ok := s.locks[studentID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[studentID] = m
	}
	s.mu.Unlock()
	m.Lock()
	return m.Unlock
}

// Scan records a Present lesson for the student behind code and annotates
// the result with payment status for the covering billing period. A failed
// eligibility fetch degrades to PaidUnknown instead of failing the scan; a
// failed lesson-number fetch fails it, since a number computed from a bad
// snapshot would be persisted.
func (s *Service) Scan(ctx context.Context, code string) (ScanResult, error) {
	student, err := s.students.GetByCode(ctx, code)
	if err != nil {
		return ScanResult{}, err
	}

	unlock := s.lock(student.ID)
	defer unlock()

	numbers, err := s.repo.LessonNumbers(ctx, student.ID)
	if err != nil {
		return ScanResult{}, err
	}
	lesson := billing.NextLessonNumber(numbers)

	rec, err := s.repo.Insert(ctx, Record{
		StudentID:    student.ID,
		Status:       Present,
		LessonNumber: lesson,
		NotedOn:      today(),
	})
	if err != nil {
		return ScanResult{}, err
	}
	metrics.Scans.Inc()

	res := ScanResult{
		Student:       student,
		RecordID:      rec.ID,
		LessonNumber:  lesson,
		DisplayNumber: billing.DisplayLessonNumber(lesson, s.bucketSize),
		BillingPeriod: billing.BillingPeriod(lesson, s.bucketSize),
	}

	paid, err := s.payments.EligibleForLesson(ctx, student.ID, lesson)
	if err != nil {
		res.PaidUnknown = true
		return res, nil
	}
	res.Paid = paid
	if !paid {
		metrics.ScansUnpaid.Inc()
	}
	return res, nil
}

// RegisterAbsences writes an Absent record for every student in the group
// without a record on the given date. Each absence gets its own next lesson
// number. Returns how many were registered.
func (s *Service) RegisterAbsences(ctx context.Context, group string, day time.Time) (int, error) {
	day = truncateToDay(day)
	students, err := s.students.List(ctx, group, "")
	if err != nil {
		return 0, err
	}
	seen, err := s.repo.StudentIDsWithRecordOn(ctx, day)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, st := range students {
		if seen[st.ID] {
			continue
		}
		unlock := s.lock(st.ID)
		numbers, err := s.repo.LessonNumbers(ctx, st.ID)
		if err != nil {
			unlock()
			return count, err
		}
		_, err = s.repo.Insert(ctx, Record{
			StudentID:    st.ID,
			Status:       Absent,
			LessonNumber: billing.NextLessonNumber(numbers),
			NotedOn:      day,
		})
		unlock()
		if err != nil {
			return count, err
		}
		count++
		metrics.AbsencesRegistered.Inc()
	}
	return count, nil
}

// History returns a student's records.
func (s *Service) History(ctx context.Context, studentID string) ([]Record, error) {
	return s.repo.History(ctx, studentID)
}

// Delete removes a record.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ListOn returns records for one day, optionally by group.
func (s *Service) ListOn(ctx context.Context, day time.Time, group string) ([]Record, error) {
	return s.repo.ListOn(ctx, truncateToDay(day), group)
}

// VideoBlocked evaluates the absence rule for the current calendar month.
func (s *Service) VideoBlocked(ctx context.Context, studentID string) (bool, string, error) {
	history, err := s.repo.History(ctx, studentID)
	if err != nil {
		return false, "", err
	}
	now := time.Now().UTC()
	blocked, reason := BlockedFromVideos(history, now.Year(), now.Month())
	return blocked, reason, nil
}

func today() time.Time { return truncateToDay(time.Now().UTC()) }

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
