package payments

import (
	"context"
	"errors"
	"time"

	"tutordesk/internal/billing"
	"tutordesk/internal/cache"
	"tutordesk/internal/metrics"
	"tutordesk/internal/roster"
)

// Service registers payments and answers eligibility checks. Fetches stay at
// this boundary; the billing core only ever sees in-memory snapshots.
type Service struct {
	repo       *Repository
	students   *roster.Service
	bucketSize int

	// Per-student snapshot of paid-month labels for the scan flow.
	byStudent *cache.Cache[string, []billing.PaymentView]
}

// NewService wires the payments service with its eligibility cache.
func NewService(repo *Repository, students *roster.Service, bucketSize int, cacheTTL time.Duration, cacheSize int) *Service {
	if bucketSize <= 0 {
		bucketSize = billing.DefaultBucketSize
	}
	return &Service{
		repo:       repo,
		students:   students,
		bucketSize: bucketSize,
		byStudent:  cache.New[string, []billing.PaymentView](cacheTTL, cacheSize),
	}
}

// Register records one month-payment event: a new payment row carrying a
// single paid month, matching how the console has always written them.
func (s *Service) Register(ctx context.Context, studentID, monthLabel string, amount float64) (Payment, error) {
	if monthLabel == "" {
		return Payment{}, errors.New("payments: month label required")
	}
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return Payment{}, err
	}

	if billing.ResolveMonthLabel(monthLabel) == billing.Unresolved {
		// Saved anyway — admins correct these by hand — but counted, since
		// an unresolvable label reads as unpaid at every scan.
		metrics.UnresolvedMonthLabels.Inc()
	}

	p, err := s.repo.Insert(ctx, Payment{
		StudentID:   student.ID,
		StudentName: student.Name,
		StudentCode: student.Code,
		Group:       student.Group,
		Month:       monthLabel,
		Amount:      amount,
		PaidMonths:  []PaidMonth{{Month: monthLabel}},
	})
	if err != nil {
		return Payment{}, err
	}
	metrics.PaymentsRegistered.Inc()
	s.byStudent.Delete(studentID)
	return p, nil
}

// ListByStudent returns a student's payment history.
func (s *Service) ListByStudent(ctx context.Context, studentID string) ([]Payment, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

// ListByGroupAndMonth feeds the ledger export.
func (s *Service) ListByGroupAndMonth(ctx context.Context, group, month string) ([]Payment, error) {
	return s.repo.ListByGroupAndMonth(ctx, group, month)
}

// Delete removes a payment and invalidates the owner's eligibility snapshot.
func (s *Service) Delete(ctx context.Context, id string) error {
	studentID, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.byStudent.Delete(studentID)
	return nil
}

// EligibleForLesson reports whether the billing period covering rawLesson is
// paid, using a cached snapshot of the student's paid-month labels when one
// is fresh enough.
func (s *Service) EligibleForLesson(ctx context.Context, studentID string, rawLesson int) (bool, error) {
	views, err := s.views(ctx, studentID)
	if err != nil {
		return false, err
	}
	return billing.HasPaidForLesson(views, rawLesson, s.bucketSize), nil
}

// PaidPeriodsReport folds the student's payments into resolved periods.
func (s *Service) PaidPeriodsReport(ctx context.Context, studentID string) ([]billing.PaidPeriod, []string, error) {
	views, err := s.views(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}
	periods, unresolved := billing.PaidPeriods(views)
	return periods, unresolved, nil
}

func (s *Service) views(ctx context.Context, studentID string) ([]billing.PaymentView, error) {
	if views, found, cached := s.byStudent.Lookup(studentID); cached && found {
		metrics.CacheHits.WithLabelValues("payments").Inc()
		return views, nil
	}
	metrics.CacheMisses.WithLabelValues("payments").Inc()

	list, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	views := make([]billing.PaymentView, 0, len(list))
	for _, p := range list {
		v := billing.PaymentView{ID: p.ID}
		for _, pm := range p.PaidMonths {
			v.PaidMonths = append(v.PaidMonths, pm.Month)
		}
		views = append(views, v)
	}
	// An empty list is a real answer: "no payments yet" is cached too.
	s.byStudent.Set(studentID, views)
	return views, nil
}

// SweepCache drops expired snapshots; wired to the jobs runner.
func (s *Service) SweepCache() { s.byStudent.Sweep() }
