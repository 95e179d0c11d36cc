// Package querycache is the small collaborator the views read collections
// through: it keeps the last fetched value for a TTL, collapses concurrent
// fetches into one backend call, and is invalidated by mutations so the next
// read re-fetches.
package querycache

import (
	"context"
	"sync"
	"time"
)

type Query[T any] struct {
	fetch func(context.Context) (T, error)
	ttl   time.Duration

	mu      sync.Mutex
	val     T
	fresh   bool
	expires time.Time
	pending chan struct{} // non-nil while a fetch is in flight
}

func New[T any](ttl time.Duration, fetch func(context.Context) (T, error)) *Query[T] {
	return &Query[T]{fetch: fetch, ttl: ttl}
}

// Get returns the cached value when fresh, otherwise fetches. Callers that
// arrive while a fetch is in flight wait for it instead of issuing their own.
func (q *Query[T]) Get(ctx context.Context) (T, error) {
	q.mu.Lock()
	for {
		if q.fresh && time.Now().Before(q.expires) {
			v := q.val
			q.mu.Unlock()
			return v, nil
		}
		if q.pending == nil {
			break
		}
		ch := q.pending
		q.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
		q.mu.Lock()
	}
	ch := make(chan struct{})
	q.pending = ch
	q.mu.Unlock()

	v, err := q.fetch(ctx)

	q.mu.Lock()
	q.pending = nil
	close(ch)
	if err == nil {
		q.val = v
		q.fresh = true
		q.expires = time.Now().Add(q.ttl)
	}
	q.mu.Unlock()
	return v, err
}

// Invalidate drops the cached value; the next Get re-fetches.
func (q *Query[T]) Invalidate() {
	q.mu.Lock()
	var zero T
	q.val = zero
	q.fresh = false
	q.mu.Unlock()
}
