package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"tutordesk/internal/roster"
)

// ErrBadCredentials covers every failed login uniformly so the API leaks
// nothing about which part was wrong.
var ErrBadCredentials = errors.New("auth: bad credentials")

// AdminCredentials is the console operator account, loaded from config at
// startup and handed in explicitly — never read from a global.
type AdminCredentials struct {
	User     string
	Password string
}

// Service performs role-dispatched logins and session lifecycle.
type Service struct {
	students   *roster.Service
	sessions   *Sessions
	admin      AdminCredentials
	issuer     string
	signingKey string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewService wires auth.
func NewService(students *roster.Service, sessions *Sessions, admin AdminCredentials, issuer, signingKey string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		students:   students,
		sessions:   sessions,
		admin:      admin,
		issuer:     issuer,
		signingKey: signingKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// LoginAdmin checks the configured operator credentials.
func (s *Service) LoginAdmin(ctx context.Context, user, password string) (TokenPair, error) {
	if s.admin.Password == "" {
		return TokenPair{}, ErrBadCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.admin.User)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1
	if !userOK || !passOK {
		return TokenPair{}, ErrBadCredentials
	}
	return s.issue(ctx, s.admin.User, RoleAdmin)
}

// LoginStudent checks a student code and console password.
func (s *Service) LoginStudent(ctx context.Context, code, password string) (TokenPair, error) {
	student, err := s.students.GetByCode(ctx, code)
	if err != nil {
		return TokenPair{}, ErrBadCredentials
	}
	if !s.students.CheckPassword(student, password) {
		return TokenPair{}, ErrBadCredentials
	}
	return s.issue(ctx, student.ID, RoleStudent)
}

// LoginParent checks a parent phone against one of their children's codes.
func (s *Service) LoginParent(ctx context.Context, parentPhone, childCode string) (TokenPair, error) {
	student, err := s.students.GetByCode(ctx, childCode)
	if err != nil {
		return TokenPair{}, ErrBadCredentials
	}
	if student.ParentPhone == "" || student.ParentPhone != parentPhone {
		return TokenPair{}, ErrBadCredentials
	}
	return s.issue(ctx, parentPhone, RoleParent)
}

// Logout tears the session down.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Revoke(ctx, sessionID)
}

// Verify parses a token and confirms its session is alive.
func (s *Service) Verify(ctx context.Context, token string) (Claims, error) {
	claims, err := Parse(token, s.signingKey, s.issuer)
	if err != nil {
		return Claims{}, err
	}
	alive, err := s.sessions.Alive(ctx, claims.SessionID)
	if err != nil {
		return Claims{}, err
	}
	if !alive {
		return Claims{}, ErrSessionGone
	}
	return claims, nil
}

func (s *Service) issue(ctx context.Context, subject, role string) (TokenPair, error) {
	pair, err := Issue(subject, role, s.issuer, s.signingKey, s.accessTTL, s.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.sessions.Start(ctx, pair.SessionID, subject, role, s.refreshTTL); err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}
