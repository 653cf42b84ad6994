package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/DRSN-tech/catalog-editor/internal/usecase"
)

// MockCacheRepository is a mock implementation of usecase.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) DeleteProducts(ctx context.Context, ids []int64) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// MockProductChangePublisher is a mock implementation of usecase.ProductChangePublisher
type MockProductChangePublisher struct {
	mock.Mock
}

func (m *MockProductChangePublisher) PublishProductChanged(ctx context.Context, event *usecase.ProductChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
