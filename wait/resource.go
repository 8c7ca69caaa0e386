package wait

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Sentinel errors returned by Resource operations.
var (
	// ErrEmptyOwner is returned when a claim is attempted without an owner label.
	ErrEmptyOwner = errors.New("owner label cannot be empty")

	// ErrNotHeld is returned by ReleaseOwned when the resource is free.
	ErrNotHeld = errors.New("resource is not held")

	// ErrNotOwner is returned by ReleaseOwned when another owner holds the resource.
	ErrNotOwner = errors.New("resource is held by another owner")
)

// Resource is a mutual exclusion flag with a named holder. The owner is
// non-empty exactly while the resource is in use.
//
// The zero value is a free Resource.
type Resource struct {
	mu    sync.Mutex
	inUse bool
	owner string
}

// NewResource returns a free Resource.
func NewResource() *Resource {
	return &Resource{}
}

// TryAcquire claims the resource for owner if it is free and reports whether
// it did. An empty owner never acquires.
func (r *Resource) TryAcquire(owner string) bool {
	if owner == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.inUse {
		return false
	}
	r.inUse = true
	r.owner = owner
	return true
}

// Acquire blocks until the resource is free and claims it for owner,
// checking every interval. Observation and claim are a single step, so of
// several goroutines waiting on a free resource exactly one wins.
//
// Acquire is not reentrant: an owner that already holds the resource waits
// for itself.
func (r *Resource) Acquire(ctx context.Context, owner string, interval time.Duration) error {
	if owner == "" {
		return ErrEmptyOwner
	}
	if err := poll(ctx, interval, func() bool { return r.TryAcquire(owner) }); err != nil {
		return fmt.Errorf("acquire %q: %w", owner, err)
	}
	return nil
}

// Release frees the resource regardless of who holds it.
func (r *Resource) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inUse = false
	r.owner = ""
}

// ReleaseOwned frees the resource only if owner holds it.
func (r *Resource) ReleaseOwned(owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inUse {
		return ErrNotHeld
	}
	if r.owner != owner {
		return fmt.Errorf("%w: %s holds it, not %s", ErrNotOwner, r.owner, owner)
	}
	r.inUse = false
	r.owner = ""
	return nil
}

// InUse reports whether the resource is held.
func (r *Resource) InUse() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inUse
}

// Owner returns the current holder, or "" when free.
func (r *Resource) Owner() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.owner
}
