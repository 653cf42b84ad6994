package usecase

import (
	"context"
	"sync"

	"github.com/DRSN-tech/catalog-editor/pkg/e"
	"github.com/DRSN-tech/catalog-editor/pkg/logger"
)

// ReferenceDataLoader загружает справочник категорий один раз за редактирование.
type ReferenceDataLoader struct {
	api    CatalogAPI
	logger logger.Logger
	once   sync.Once
}

func NewReferenceDataLoader(api CatalogAPI, logger logger.Logger) *ReferenceDataLoader {
	return &ReferenceDataLoader{
		api:    api,
		logger: logger,
	}
}

// Load запрашивает категории и записывает результат в состояние формы.
// Повторные вызовы ничего не делают. При ошибке список категорий остаётся пустым,
// а в состоянии появляется sticky-баннер; черновик не меняется.
func (l *ReferenceDataLoader) Load(ctx context.Context, state *EditFormState) {
	const op = "ReferenceDataLoader.Load"

	l.once.Do(func() {
		categories, err := l.api.ListCategories(ctx)
		if err != nil {
			l.logger.Warnf("failed to load categories: %v", e.Wrap(op, err))
			state.setError(CategoriesUnavailableMessage)
			return
		}

		state.setCategories(categories)
	})
}
