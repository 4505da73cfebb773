// Package jobs runs periodic maintenance work on tickers tied to the
// process lifetime: cache sweeps and anything else that must not block
// request handling.
package jobs

import (
	"context"
	"fmt"
	"time"

	"tutordesk/internal/observability"
)

// Job is a single maintenance pass. Returning an error marks the run as
// failed in metrics but never stops the schedule.
type Job func(ctx context.Context) error

type Runner struct {
	ctx context.Context
}

func New(ctx context.Context) *Runner { return &Runner{ctx: ctx} }

// Every runs fn on its own ticker until the runner's context is cancelled.
// Panics inside a job are recovered and reported so one bad pass cannot
// take the process down.
func (r *Runner) Every(interval time.Duration, name string, fn Job) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-r.ctx.Done():
				return
			case <-t.C:
				start := time.Now()
				if err := r.run(name, fn); err != nil {
					jobErrors.WithLabelValues(name).Inc()
					observability.CaptureErr(fmt.Errorf("job %s: %w", name, err))
				}
				jobRuns.WithLabelValues(name).Inc()
				jobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
			}
		}
	}()
}

func (r *Runner) run(name string, fn Job) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn(r.ctx)
}
