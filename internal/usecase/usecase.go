package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-editor/internal/domain"
)

type EditSessionsUC interface {
	Open(ctx context.Context, product *domain.Product) (*EditSession, error)
	Get(id string) (*EditSession, error)
	Cancel(id string) error
}
