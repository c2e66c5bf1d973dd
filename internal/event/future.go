package event

import (
	"context"
	"sync"
)

// Future is a one-shot completion signal carrying a payload.
type Future struct {
	name   string
	done   chan struct{}
	once   sync.Once
	value  any
	cancel func()
}

func newFuture(name string) *Future {
	return &Future{name: name, done: make(chan struct{})}
}

// Resolved returns a future that is already complete.
func Resolved(payload any) *Future {
	f := newFuture("resolved")
	f.resolve(payload)
	return f
}

func (f *Future) resolve(v any) {
	f.once.Do(func() {
		f.value = v
		close(f.done)
	})
}

// Done is closed once the future completes.
func (f *Future) Done() <-chan struct{} { return f.done }

// Wait blocks until the future completes or ctx ends. On ctx end the
// underlying subscription is released.
func (f *Future) Wait(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.value, nil
	case <-ctx.Done():
		f.Cancel()
		return nil, ctx.Err()
	}
}

// Cancel drops the pending subscription, if any.
func (f *Future) Cancel() {
	if f.cancel != nil {
		f.cancel()
	}
}

func (f *Future) String() string { return f.name }
