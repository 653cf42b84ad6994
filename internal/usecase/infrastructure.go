package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-editor/internal/domain"
)

// CatalogAPI — удалённый каталог, в котором хранятся товары и категории.
type CatalogAPI interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateProduct(ctx context.Context, req *UpdateProductReq) (*UpdateProductRes, error)
}

// Acknowledger показывает оператору сообщение о результате отправки.
// Реализация может блокироваться до тех пор, пока оператор не подтвердит сообщение.
type Acknowledger interface {
	Acknowledge(ctx context.Context, message string)
}

// AcknowledgerFunc позволяет использовать обычную функцию как Acknowledger.
type AcknowledgerFunc func(ctx context.Context, message string)

func (f AcknowledgerFunc) Acknowledge(ctx context.Context, message string) {
	f(ctx, message)
}

// ProductChangePublisher публикует событие об изменении товара для внешних потребителей.
type ProductChangePublisher interface {
	PublishProductChanged(ctx context.Context, event *ProductChangedEvent) error
}
