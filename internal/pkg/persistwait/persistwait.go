// Package persistwait implements a bounded polling wait used to confirm
// that a mutation issued against an eventually consistent store has become
// visible to subsequent reads.
package persistwait

import (
	"context"
	"time"
)

// Outcome is the result of a visibility wait.
type Outcome int

const (
	// Confirmed means the predicate reported the mutation visible before
	// the attempt budget ran out.
	Confirmed Outcome = iota
	// TimedOut means the attempt budget ran out with the mutation still
	// not visible. The mutation is assumed applied eventually.
	TimedOut
	// Failed means the predicate itself returned an error.
	Failed
)

// String returns a metric-friendly name for the outcome
func (o Outcome) String() string {
	switch o {
	case Confirmed:
		return "confirmed"
	case TimedOut:
		return "timed_out"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Predicate reports whether the mutation under observation is now visible.
type Predicate func(ctx context.Context) (bool, error)

// Clock abstracts sleeping between polls so tests can run without waiting.
type Clock interface {
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock sleeps for real.
var SystemClock Clock = systemClock{}

// Waiter polls a visibility predicate at a fixed interval up to a fixed
// number of re-check attempts. The first check happens before any sleep,
// so an already-visible mutation costs no wait at all.
type Waiter struct {
	Interval    time.Duration
	MaxAttempts int
	Clock       Clock
}

// New creates a Waiter on the system clock.
func New(interval time.Duration, maxAttempts int) *Waiter {
	return &Waiter{
		Interval:    interval,
		MaxAttempts: maxAttempts,
		Clock:       SystemClock,
	}
}

// Await blocks the calling goroutine until visible reports true, the
// attempt budget is exhausted, or the predicate fails. The wait is not
// cancellable once started; ctx is only passed through to the predicate.
func (w *Waiter) Await(ctx context.Context, visible Predicate) (Outcome, error) {
	for attempt := 0; ; attempt++ {
		ok, err := visible(ctx)
		if err != nil {
			return Failed, err
		}
		if ok {
			return Confirmed, nil
		}
		if attempt >= w.MaxAttempts {
			return TimedOut, nil
		}
		w.Clock.Sleep(w.Interval)
	}
}
