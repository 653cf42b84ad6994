package clients

import (
	"context"

	"github.com/DRSN-tech/catalog-editor/internal/cfg"
	"github.com/DRSN-tech/catalog-editor/pkg/e"
	r "github.com/redis/go-redis/v9"
)

// RedisClient — подключение к Redis, общему с бэкендом каталога.
// Редактор только удаляет ключи, поэтому наружу открыт узкий набор команд.
type RedisClient struct {
	client *r.Client
	addr   string
}

func NewRedisClient(cfg *cfg.RedisCfg) *RedisClient {
	return &RedisClient{
		client: r.NewClient(&r.Options{
			Addr:         cfg.Addr,
			Username:     cfg.User,
			Password:     cfg.Password,
			DB:           cfg.DB,
			MaxRetries:   cfg.MaxRetries,
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
		}),
		addr: cfg.Addr,
	}
}

// Ping проверяет доступность сервера при старте.
func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return e.Wrap("redis ping "+c.addr, err)
	}

	return nil
}

// Del удаляет ключи и возвращает число реально удалённых.
func (c *RedisClient) Del(ctx context.Context, keys ...string) (int64, error) {
	deleted, err := c.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, e.Wrap("redis del "+c.addr, err)
	}

	return deleted, nil
}

func (c *RedisClient) Close() error {
	return c.client.Close()
}
