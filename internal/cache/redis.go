package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"

	"tradewatch/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Redis caches fetched records in a shared Redis instance so multiple
// dashboard processes memoize the same refresh. Redis failures degrade to
// cache misses; the pipeline then just fetches again.
type Redis struct {
	client *redis.Client
}

func NewRedis(addr string) *Redis {
	return &Redis{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func NewRedisWithClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (c *Redis) Get(ctx context.Context, key string) ([]model.TradeRecord, bool) {
	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("cache: redis get %s: %v", key, err)
		return nil, false
	}
	var records []model.TradeRecord
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		log.Printf("cache: redis decode %s: %v", key, err)
		return nil, false
	}
	return records, true
}

func (c *Redis) Set(ctx context.Context, key string, records []model.TradeRecord, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	payload, err := json.Marshal(records)
	if err != nil {
		log.Printf("cache: redis encode %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		log.Printf("cache: redis set %s: %v", key, err)
	}
}

func (c *Redis) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Redis) Close() error {
	return c.client.Close()
}
