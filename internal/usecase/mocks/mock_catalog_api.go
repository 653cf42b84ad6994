package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/DRSN-tech/catalog-editor/internal/domain"
	"github.com/DRSN-tech/catalog-editor/internal/usecase"
)

// MockCatalogAPI is a mock implementation of usecase.CatalogAPI
type MockCatalogAPI struct {
	mock.Mock
}

func (m *MockCatalogAPI) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCatalogAPI) UpdateProduct(ctx context.Context, req *usecase.UpdateProductReq) (*usecase.UpdateProductRes, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.UpdateProductRes), args.Error(1)
}
