package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"tutordesk/internal/metrics"
)

// ErrUnavailable is returned when the circuit breaker refuses a call.
// Handlers surface it as 503; services never write from a fetch that
// failed with it.
var ErrUnavailable = errors.New("store: database unavailable")

// Executor runs queries with a bounded retry and a circuit breaker in front
// of them. Every repository goes through one instance so the whole process
// shares a single view of database health.
type Executor struct {
	db       *sql.DB
	breaker  *gobreaker.CircuitBreaker
	attempts uint64
	interval time.Duration
}

// NewExecutor wraps db. Three attempts with a linearly growing pause covers
// transient pool hiccups; five consecutive failures open the breaker for the
// cooldown before a trial call is let through.
func NewExecutor(db *sql.DB) *Executor {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "postgres",
		Timeout: 30 * time.Second, // cooldown before the half-open probe
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A missing row is an answer, not a database failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, sql.ErrNoRows)
		},
	})
	return &Executor{
		db:       db,
		breaker:  breaker,
		attempts: 2, // retries after the first attempt
		interval: 200 * time.Millisecond,
	}
}

// DB exposes the raw handle for migrations and health pings.
func (e *Executor) DB() *sql.DB { return e.db }

// Query runs a row-returning statement.
func (e *Executor) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	v, err := e.run(ctx, func() (any, error) {
		return e.db.QueryContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return v.(*sql.Rows), nil
}

// QueryRowScan runs a single-row query and scans it into dest. Missing rows
// come back as sql.ErrNoRows without burning retries.
func (e *Executor) QueryRowScan(ctx context.Context, query string, args []any, dest ...any) error {
	_, err := e.run(ctx, func() (any, error) {
		err := e.db.QueryRowContext(ctx, query, args...).Scan(dest...)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	})
	return err
}

// Exec runs a statement without returning rows.
func (e *Executor) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	v, err := e.run(ctx, func() (any, error) {
		return e.db.ExecContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return v.(sql.Result), nil
}

func (e *Executor) run(ctx context.Context, op func() (any, error)) (any, error) {
	v, err := e.breaker.Execute(func() (any, error) {
		var out any
		first := true
		retryErr := backoff.Retry(func() error {
			if !first {
				metrics.DBRetries.Inc()
			}
			first = false
			var opErr error
			out, opErr = op()
			if opErr != nil && ctx.Err() != nil {
				return backoff.Permanent(opErr)
			}
			return opErr
		}, backoff.WithContext(backoff.WithMaxRetries(&linearBackOff{step: e.interval}, e.attempts), ctx))
		return out, retryErr
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.DBBreakerOpen.Inc()
		return nil, ErrUnavailable
	}
	return v, err
}

// linearBackOff waits step, 2*step, 3*step between attempts. The backoff
// package ships constant and exponential policies only.
type linearBackOff struct {
	step time.Duration
	n    int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.n++
	return time.Duration(b.n) * b.step
}

func (b *linearBackOff) Reset() { b.n = 0 }
