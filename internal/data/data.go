package data

import (
	"tumble/internal/conf"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	kredis "github.com/yola1107/kratos/v2/library/db/redis"
	"github.com/yola1107/kratos/v2/log"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(NewData, NewRedis, NewRabbitMQ, NewRelay, NewStreakRepo)

// Data .
type Data struct {
	rdb    redis.UniversalClient
	broker *Broker
	relay  *Relay
}

// NewData .
func NewData(c *conf.Data, logger log.Logger, rdb redis.UniversalClient, broker *Broker, relay *Relay) (*Data, func(), error) {
	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
	}
	return &Data{
		rdb:    rdb,
		broker: broker,
		relay:  relay,
	}, cleanup, nil
}

// NewRedis returns nil when no address is configured, in which case the
// streak lives in memory and notifications are not relayed to redis.
func NewRedis(c *conf.Data, logger log.Logger) (redis.UniversalClient, func(), error) {
	if c == nil || c.Redis == nil || c.Redis.Addr == "" {
		log.NewHelper(logger).Info("redis disabled")
		return nil, func() {}, nil
	}
	rdb := kredis.NewClient(kredis.WithAddress(c.Redis.Addr))
	return rdb, func() { _ = rdb.Close() }, nil
}
