package wait

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// DefaultTick is the delay used when a non-positive duration or poll interval
// is given.
const DefaultTick = time.Millisecond

var errPending = errors.New("condition not met")

// defaultMu backs the package level UntilThenLock.
var defaultMu sync.Mutex

// Delay suspends the caller for d, or DefaultTick if d is not positive.
// It returns ctx.Err() if ctx is done first.
func Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		d = DefaultTick
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Until blocks until cond returns true, checking it every interval.
// cond is evaluated once before the first wait, so a condition that already
// holds returns without sleeping.
func Until(ctx context.Context, cond func() bool, interval time.Duration) error {
	return poll(ctx, interval, cond)
}

// UntilThenLock blocks until cond returns true and then calls lock before
// returning. cond and lock run under a package wide mutex, so callers racing
// for the same state through UntilThenLock cannot both claim it. Use a
// Waiter to scope the mutex to a single piece of state.
func UntilThenLock(ctx context.Context, cond func() bool, lock func(), interval time.Duration) error {
	return poll(ctx, interval, func() bool {
		defaultMu.Lock()
		defer defaultMu.Unlock()
		return claim(cond, lock)
	})
}

// Waiter polls conditions over shared state on a fixed interval. Conditions
// and claims made through the same Waiter never run concurrently.
type Waiter struct {
	mu       sync.Mutex
	interval time.Duration
}

// New returns a Waiter polling every interval (DefaultTick if not positive).
func New(interval time.Duration) *Waiter {
	if interval <= 0 {
		interval = DefaultTick
	}
	return &Waiter{interval: interval}
}

// Interval returns the poll interval.
func (w *Waiter) Interval() time.Duration {
	return w.interval
}

// Until blocks until cond returns true.
func (w *Waiter) Until(ctx context.Context, cond func() bool) error {
	return poll(ctx, w.interval, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return cond()
	})
}

// UntilThenLock blocks until cond returns true and calls lock in the same
// critical section that observed it.
func (w *Waiter) UntilThenLock(ctx context.Context, cond func() bool, lock func()) error {
	return poll(ctx, w.interval, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return claim(cond, lock)
	})
}

func claim(cond func() bool, lock func()) bool {
	if !cond() {
		return false
	}
	lock()
	return true
}

// poll runs try until it reports true or ctx is done.
func poll(ctx context.Context, interval time.Duration, try func() bool) error {
	if interval <= 0 {
		interval = DefaultTick
	}

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		if try() {
			return struct{}{}, nil
		}
		return struct{}{}, errPending
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(interval)),
		backoff.WithMaxElapsedTime(0),
	)
	return err
}
