package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionGone means the session was logged out or expired.
var ErrSessionGone = errors.New("auth: session revoked or expired")

// Sessions keeps login sessions in redis. Lifecycle is explicit: Start on
// login, alive until Revoke on logout or TTL expiry (redis handles expiry,
// no reaper needed). A process restart keeps sessions, which is what a
// console full of logged-in staff wants.
type Sessions struct {
	client *redis.Client
}

// NewSessions wraps the shared redis client.
func NewSessions(client *redis.Client) *Sessions {
	return &Sessions{client: client}
}

func sessionKey(id string) string { return "session:" + id }

// Start registers a session for the token pair's lifetime.
func (s *Sessions) Start(ctx context.Context, sessionID, subject, role string, ttl time.Duration) error {
	if err := s.client.HSet(ctx, sessionKey(sessionID), "subject", subject, "role", role).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, sessionKey(sessionID), ttl).Err()
}

// Alive reports whether a session is still valid.
func (s *Sessions) Alive(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Revoke tears a session down at logout.
func (s *Sessions) Revoke(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}
