package usecase

import "context"

// CacheRepository — кэш карточек товаров, из которого читает список товаров.
type CacheRepository interface {
	DeleteProducts(ctx context.Context, ids []int64) error
}
