package roster

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tutordesk/internal/cache"
	"tutordesk/internal/metrics"
)

// Service owns student lifecycle and the by-code lookup cache used by the
// scan flow. One cache per entity type, never shared across types.
type Service struct {
	repo   *Repository
	byCode *cache.Cache[string, Student]
	rand   *rand.Rand
	maxTry int
}

// NewService creates the service with its lookup cache.
func NewService(repo *Repository, cacheTTL time.Duration, cacheSize int) *Service {
	return &Service{
		repo:   repo,
		byCode: cache.New[string, Student](cacheTTL, cacheSize),
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		maxTry: 5,
	}
}

// Create registers a student, generating a unique code and hashing the
// console password when one is supplied.
func (s *Service) Create(ctx context.Context, st Student, password string) (Student, error) {
	if st.Name == "" {
		return Student{}, errors.New("roster: name required")
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return Student{}, err
		}
		st.PasswordHash = string(hash)
	}

	for i := 0; i < s.maxTry; i++ {
		st.Code = newCode(s.rand)
		created, err := s.repo.Insert(ctx, st)
		if errors.Is(err, ErrDuplicateCode) {
			continue
		}
		if err != nil {
			return Student{}, err
		}
		return created, nil
	}
	return Student{}, ErrDuplicateCode
}

// Update rewrites student fields and invalidates the code cache entry.
func (s *Service) Update(ctx context.Context, st Student, password string) error {
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		st.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, st); err != nil {
		return err
	}
	s.byCode.Delete(st.Code)
	return nil
}

// Delete removes a student.
func (s *Service) Delete(ctx context.Context, id string) error {
	st, err := s.repo.GetByID(ctx, id)
	if err == nil {
		s.byCode.Delete(st.Code)
	}
	return s.repo.Delete(ctx, id)
}

// GetByID returns one student.
func (s *Service) GetByID(ctx context.Context, id string) (Student, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByCode resolves a check-in code, consulting the cache first. A recent
// "no such code" answer is also cached so repeated bad scans don't hammer
// the store.
func (s *Service) GetByCode(ctx context.Context, code string) (Student, error) {
	if st, found, cached := s.byCode.Lookup(code); cached {
		metrics.CacheHits.WithLabelValues("students").Inc()
		if !found {
			return Student{}, ErrNotFound
		}
		return st, nil
	}
	metrics.CacheMisses.WithLabelValues("students").Inc()

	st, err := s.repo.GetByCode(ctx, code)
	if errors.Is(err, ErrNotFound) {
		s.byCode.SetMissing(code)
		return Student{}, err
	}
	if err != nil {
		return Student{}, err
	}
	s.byCode.Set(code, st)
	return st, nil
}

// List returns students filtered by group/grade.
func (s *Service) List(ctx context.Context, group, grade string) ([]Student, error) {
	return s.repo.List(ctx, group, grade)
}

// Children returns a parent's students by parent phone.
func (s *Service) Children(ctx context.Context, parentPhone string) ([]Student, error) {
	return s.repo.ListByParentPhone(ctx, parentPhone)
}

// SweepCache drops expired cache entries; wired to the jobs runner.
func (s *Service) SweepCache() { s.byCode.Sweep() }

// CheckPassword verifies a student's console password.
func (s *Service) CheckPassword(st Student, password string) bool {
	if st.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(st.PasswordHash), []byte(password)) == nil
}
