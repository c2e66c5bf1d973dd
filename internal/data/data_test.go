package data

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"tumble/encoding"
	"tumble/internal/conf"
	"tumble/internal/event"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yola1107/kratos/v2/log"
)

var testLogger = log.NewStdLogger(io.Discard)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestMemoryStreak(t *testing.T) {
	repo := NewStreakRepo(nil, &Data{}, testLogger)
	ctx := context.Background()

	n, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, repo.Save(ctx, 4))
	n, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestRedisStreak(t *testing.T) {
	mr, rdb := newTestRedis(t)
	c := &conf.Data{Redis: &conf.Data_Redis{StreakKey: "test:streak"}}
	repo := NewStreakRepo(c, &Data{rdb: rdb}, testLogger)
	ctx := context.Background()

	n, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, repo.Save(ctx, 7))
	v, err := mr.Get("test:streak")
	require.NoError(t, err)
	assert.Equal(t, "7", v)

	n, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	require.NoError(t, mr.Set("test:streak", "garbage"))
	n, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	mr.Close()
	_, err = repo.Load(ctx)
	assert.Error(t, err)
}

type fakeSink struct {
	mu   sync.Mutex
	keys []string
	body [][]byte
	err  error
}

func (f *fakeSink) Publish(_ context.Context, key string, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	f.body = append(f.body, body)
	return f.err
}

func (f *fakeSink) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.keys)
}

func TestRelay(t *testing.T) {
	bus := event.NewBus(testLogger)
	sink := &fakeSink{}
	broken := &fakeSink{err: errors.New("down")}
	r := newRelay(bus, testLogger, broken, sink)

	bus.Emit(context.Background(), event.SpinStarted, map[string]int{"spin": 1})
	bus.Emit(context.Background(), event.Anticipate, nil)
	r.Close()

	require.Equal(t, 2, sink.len())
	assert.Equal(t, []string{"spin-started", "anticipate"}, sink.keys)
	assert.Equal(t, 2, broken.len())

	var env struct {
		Topic   string         `json:"topic"`
		Payload map[string]int `json:"payload"`
		Time    int64          `json:"ts"`
	}
	require.NoError(t, encoding.Unmarshal(sink.body[0], &env))
	assert.Equal(t, "spin-started", env.Topic)
	assert.Equal(t, 1, env.Payload["spin"])
	assert.NotZero(t, env.Time)

	// detached after close
	bus.Emit(context.Background(), event.SpinSettled, nil)
	assert.Equal(t, 2, sink.len())
	assert.NotPanics(t, r.Close)
}

func TestRelayRedisChannel(t *testing.T) {
	_, rdb := newTestRedis(t)
	ctx := context.Background()
	sub := rdb.Subscribe(ctx, "test:events")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	bus := event.NewBus(testLogger)
	c := &conf.Data{Redis: &conf.Data_Redis{Channel: "test:events"}}
	r, cleanup, err := NewRelay(c, bus, rdb, nil, testLogger)
	require.NoError(t, err)
	defer cleanup()
	require.Len(t, r.sinks, 1)

	bus.Emit(ctx, event.BonusTriggered, map[string]int{"scatters": 3})

	select {
	case msg := <-sub.Channel():
		assert.Contains(t, msg.Payload, `"topic":"bonus-triggered"`)
		assert.Contains(t, msg.Payload, `"scatters":3`)
	case <-time.After(2 * time.Second):
		t.Fatal("no message on redis channel")
	}
}

func TestRelayWithoutSinks(t *testing.T) {
	bus := event.NewBus(testLogger)
	r, cleanup, err := NewRelay(nil, bus, nil, nil, testLogger)
	require.NoError(t, err)
	assert.Empty(t, r.sinks)
	bus.Emit(context.Background(), event.SpinStarted, nil)
	assert.NotPanics(t, cleanup)
}

func TestDisabledBackends(t *testing.T) {
	rdb, cleanup, err := NewRedis(&conf.Data{}, testLogger)
	require.NoError(t, err)
	assert.Nil(t, rdb)
	cleanup()

	broker, cleanup, err := NewRabbitMQ(&conf.Data{}, testLogger)
	require.NoError(t, err)
	assert.Nil(t, broker)
	cleanup()
}
