package event

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/yola1107/kratos/v2/log"
)

// Handler reacts to one notification. It runs on the emitting goroutine.
type Handler func(ctx context.Context, payload any)

// Listener receives every notification regardless of topic.
type Listener func(ctx context.Context, topic Topic, payload any)

type subscription struct {
	id    uint64
	h     Handler
	once  bool
	fired atomic.Bool
}

// Bus is an in-process publish/subscribe channel. It is constructed
// explicitly and handed to every collaborator that needs it.
//
// Handlers are invoked synchronously in registration order, outside of the
// bus lock, so a handler may itself emit or subscribe.
type Bus struct {
	mu        sync.RWMutex
	seq       uint64
	subs      map[Topic][]*subscription
	listeners map[uint64]Listener
	log       *log.Helper
}

func NewBus(logger log.Logger) *Bus {
	return &Bus{
		subs:      make(map[Topic][]*subscription),
		listeners: make(map[uint64]Listener),
		log:       log.NewHelper(logger),
	}
}

// On registers h for every future emission of topic. The returned func
// removes the subscription.
func (b *Bus) On(topic Topic, h Handler) func() {
	return b.add(topic, h, false)
}

// Once registers h for the next emission of topic only.
func (b *Bus) Once(topic Topic, h Handler) func() {
	return b.add(topic, h, true)
}

// OnAny registers l for every topic.
func (b *Bus) OnAny(l Listener) func() {
	b.mu.Lock()
	b.seq++
	id := b.seq
	b.listeners[id] = l
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}
}

func (b *Bus) add(topic Topic, h Handler, once bool) func() {
	b.mu.Lock()
	b.seq++
	s := &subscription{id: b.seq, h: h, once: once}
	b.subs[topic] = append(b.subs[topic], s)
	b.mu.Unlock()
	return func() { b.remove(topic, s.id) }
}

func (b *Bus) remove(topic Topic, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.subs[topic]
	for i, s := range list {
		if s.id == id {
			b.subs[topic] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
}

// Emit delivers payload to every subscriber of topic, then to every
// listener. A panicking handler is logged and does not stop delivery.
func (b *Bus) Emit(ctx context.Context, topic Topic, payload any) {
	b.mu.RLock()
	subs := make([]*subscription, len(b.subs[topic]))
	copy(subs, b.subs[topic])
	listeners := make([]Listener, 0, len(b.listeners))
	for _, l := range b.listeners {
		listeners = append(listeners, l)
	}
	b.mu.RUnlock()

	for _, s := range subs {
		if s.once {
			if !s.fired.CompareAndSwap(false, true) {
				continue
			}
			b.remove(topic, s.id)
		}
		b.call(topic, func() { s.h(ctx, payload) })
	}
	for _, l := range listeners {
		b.call(topic, func() { l(ctx, topic, payload) })
	}
}

// Count returns the number of subscribers of topic.
func (b *Bus) Count(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

func (b *Bus) call(topic Topic, fn func()) {
	defer func() {
		if rerr := recover(); rerr != nil {
			buf := make([]byte, 64<<10)
			n := runtime.Stack(buf, false)
			b.log.Errorf("event handler panic: topic=%s err=%v\n%s", topic, rerr, buf[:n])
		}
	}()
	fn()
}

// Expect subscribes to the next emission of topic and returns a future
// that completes with its payload. Call it before emitting whatever
// provokes the reply so an immediate acknowledgement is not missed.
func (b *Bus) Expect(topic Topic) *Future {
	f := newFuture(string(topic))
	f.cancel = b.Once(topic, func(_ context.Context, payload any) {
		f.resolve(payload)
	})
	return f
}
