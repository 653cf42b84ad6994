package redis

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/catalog-editor/pkg/clients"
	"github.com/DRSN-tech/catalog-editor/pkg/e"
	"github.com/DRSN-tech/catalog-editor/pkg/logger"
	"github.com/jimlawless/whereami"
)

// CacheRepo сбрасывает записи кэша карточек товаров, которые читает бэкенд каталога.
type CacheRepo struct {
	client *clients.RedisClient
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		logger: logger,
	}
}

// DeleteProducts удаляет продукты из кэша по ID
func (r *CacheRepo) DeleteProducts(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	keys := buildProductCacheKeys(ids)

	deleted, err := r.client.Del(ctx, keys...)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	r.logger.Debugf("cache invalidated: %d of %d keys removed", deleted, len(keys))

	return nil
}

// buildProductCacheKeys формирует Redis-ключи из ID продуктов
func buildProductCacheKeys(ids []int64) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}

	return keys
}

// productKey возвращает Redis-ключ для одного продукта
func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}
