package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/catalog-editor/internal/domain"
	"github.com/DRSN-tech/catalog-editor/pkg/e"
	"github.com/DRSN-tech/catalog-editor/pkg/logger"
)

// RefreshNotifier сообщает потребителям списка товаров, что товар изменился:
// удаляет карточку из кэша и публикует событие. Оба приёмника необязательны.
type RefreshNotifier struct {
	cacheRepo CacheRepository
	publisher ProductChangePublisher
	logger    logger.Logger
	now       func() time.Time
}

func NewRefreshNotifier(cacheRepo CacheRepository, publisher ProductChangePublisher, logger logger.Logger) *RefreshNotifier {
	return &RefreshNotifier{
		cacheRepo: cacheRepo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// ProductChanged уведомляет о сохранённом черновике.
// Ошибки приёмников только логируются: товар в каталоге уже обновлён.
// Возвращает true, если настроен хотя бы один приёмник и все настроенные отработали без ошибок.
func (r *RefreshNotifier) ProductChanged(ctx context.Context, productID int64, draft domain.EditDraft) bool {
	const op = "RefreshNotifier.ProductChanged"

	if r.cacheRepo == nil && r.publisher == nil {
		return false
	}

	refreshed := true

	if r.cacheRepo != nil {
		if err := r.cacheRepo.DeleteProducts(ctx, []int64{productID}); err != nil {
			r.logger.Warnf("Failed to invalidate product cache: %v", e.Wrap(op, err))
			refreshed = false
		}
	}

	if r.publisher != nil {
		event := NewProductChangedEvent(productID, draft, r.now().UTC())
		if err := r.publisher.PublishProductChanged(ctx, event); err != nil {
			r.logger.Warnf("Failed to publish product change: %v", e.Wrap(op, err))
			refreshed = false
		}
	}

	return refreshed
}
