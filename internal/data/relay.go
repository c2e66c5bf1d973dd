package data

import (
	"context"
	"sync"
	"time"

	"tumble/encoding"
	"tumble/internal/conf"
	"tumble/internal/event"

	"github.com/redis/go-redis/v9"
	"github.com/yola1107/kratos/v2/log"
)

const (
	relayBuffer    = 256
	publishTimeout = 2 * time.Second
	defaultChannel = "tumble:events"
)

// Publisher is one outbound sink of the relay.
type Publisher interface {
	Publish(ctx context.Context, key string, body []byte) error
}

// redisPublisher fans notifications out on a redis pub/sub channel.
type redisPublisher struct {
	rdb     redis.UniversalClient
	channel string
}

func (p *redisPublisher) Publish(ctx context.Context, _ string, body []byte) error {
	return p.rdb.Publish(ctx, p.channel, body).Err()
}

func (p *redisPublisher) String() string { return "redis:" + p.channel }

// Relay copies every bus notification to the configured sinks. Delivery is
// asynchronous and best effort: a full buffer drops the notification and a
// failing sink is logged, the orchestrator never waits on the network.
type Relay struct {
	sinks []Publisher
	log   *log.Helper
	off   func()

	mu     sync.RWMutex
	closed bool
	queue  chan event.Envelope
	wg     sync.WaitGroup
}

// NewRelay wires the redis channel and the amqp exchange, whichever are
// configured, to the bus.
func NewRelay(c *conf.Data, bus *event.Bus, rdb redis.UniversalClient, broker *Broker, logger log.Logger) (*Relay, func(), error) {
	var sinks []Publisher
	if rdb != nil {
		channel := defaultChannel
		if c != nil && c.Redis != nil && c.Redis.Channel != "" {
			channel = c.Redis.Channel
		}
		sinks = append(sinks, &redisPublisher{rdb: rdb, channel: channel})
	}
	if broker != nil {
		sinks = append(sinks, broker)
	}
	r := newRelay(bus, logger, sinks...)
	return r, r.Close, nil
}

func newRelay(bus *event.Bus, logger log.Logger, sinks ...Publisher) *Relay {
	r := &Relay{
		sinks: sinks,
		log:   log.NewHelper(log.With(logger, "module", "data/relay")),
		queue: make(chan event.Envelope, relayBuffer),
	}
	if len(sinks) == 0 {
		r.closed = true
		close(r.queue)
		return r
	}
	r.wg.Add(1)
	go r.loop()
	r.off = bus.OnAny(r.enqueue)
	return r
}

func (r *Relay) enqueue(_ context.Context, topic event.Topic, payload any) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}
	select {
	case r.queue <- event.Envelope{Topic: topic, Payload: payload, Time: time.Now().UnixMilli()}:
	default:
		r.log.Warnf("relay buffer full, dropped %s", topic)
	}
}

func (r *Relay) loop() {
	defer r.wg.Done()
	for env := range r.queue {
		body, err := encoding.Marshal(env)
		if err != nil {
			r.log.Errorf("encode %s: %v", env.Topic, err)
			continue
		}
		for _, s := range r.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			if err := s.Publish(ctx, string(env.Topic), body); err != nil {
				r.log.Warnf("publish %s to %v: %v", env.Topic, s, err)
			}
			cancel()
		}
	}
}

// Close detaches from the bus and flushes what is already queued.
func (r *Relay) Close() {
	if r.off != nil {
		r.off()
	}
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()
	r.wg.Wait()
}
