package data

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"tumble/internal/biz"
	"tumble/internal/conf"

	"github.com/redis/go-redis/v9"
	"github.com/yola1107/kratos/v2/log"
)

const defaultStreakKey = "tumble:streak"

// NewStreakRepo keeps the streak in redis when available, otherwise in
// process memory.
func NewStreakRepo(c *conf.Data, data *Data, logger log.Logger) biz.StreakRepo {
	if data.rdb == nil {
		return &memoryStreak{}
	}
	key := defaultStreakKey
	if c != nil && c.Redis != nil && c.Redis.StreakKey != "" {
		key = c.Redis.StreakKey
	}
	return &redisStreak{
		rdb: data.rdb,
		key: key,
		log: log.NewHelper(logger),
	}
}

type memoryStreak struct {
	mu sync.Mutex
	n  int
}

func (m *memoryStreak) Load(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.n, nil
}

func (m *memoryStreak) Save(_ context.Context, n int) error {
	m.mu.Lock()
	m.n = n
	m.mu.Unlock()
	return nil
}

type redisStreak struct {
	rdb redis.UniversalClient
	key string
	log *log.Helper
}

func (r *redisStreak) Load(ctx context.Context) (int, error) {
	v, err := r.rdb.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.log.Warnf("corrupt streak %q at %s, starting over", v, r.key)
		return 0, nil
	}
	return n, nil
}

func (r *redisStreak) Save(ctx context.Context, n int) error {
	return r.rdb.Set(ctx, r.key, n, 0).Err()
}
