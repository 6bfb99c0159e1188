package testing

import (
	"context"

	"github.com/google/uuid"
	"github.com/jinford/catalog/internal/module/catalog/domain"
)

// MockProductRepository はテスト用のモックProductRepositoryです
type MockProductRepository struct {
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	PingFunc            func(ctx context.Context) error
	ListAllFunc         func(ctx context.Context, window domain.Window) (*domain.ProductSet, error)
	SubstringSearchFunc func(ctx context.Context, fields []domain.Field, needle string, window domain.Window) (*domain.ProductSet, error)
	TrigramSearchFunc   func(ctx context.Context, fields []domain.Field, needle string, threshold float64, window domain.Window) (*domain.ScoredProductSet, error)
}

var _ domain.ProductRepository = (*MockProductRepository)(nil)

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockProductRepository) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func (m *MockProductRepository) ListAll(ctx context.Context, window domain.Window) (*domain.ProductSet, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, window)
	}
	return &domain.ProductSet{}, nil
}

func (m *MockProductRepository) SubstringSearch(ctx context.Context, fields []domain.Field, needle string, window domain.Window) (*domain.ProductSet, error) {
	if m.SubstringSearchFunc != nil {
		return m.SubstringSearchFunc(ctx, fields, needle, window)
	}
	return &domain.ProductSet{}, nil
}

func (m *MockProductRepository) TrigramSearch(ctx context.Context, fields []domain.Field, needle string, threshold float64, window domain.Window) (*domain.ScoredProductSet, error) {
	if m.TrigramSearchFunc != nil {
		return m.TrigramSearchFunc(ctx, fields, needle, threshold, window)
	}
	return &domain.ScoredProductSet{}, nil
}
