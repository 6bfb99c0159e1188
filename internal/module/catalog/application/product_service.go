package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jinford/catalog/internal/module/catalog/domain"
)

// ProductService は単一商品の参照ユースケースを提供します
type ProductService struct {
	productRepo domain.ProductReader
	log         *slog.Logger
}

// NewProductService は新しいProductServiceを作成します
func NewProductService(productRepo domain.ProductReader, log *slog.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		log:         log,
	}
}

// GetProduct は文字列のIDで商品を取得します
func (s *ProductService) GetProduct(ctx context.Context, rawID string) (*domain.Product, error) {
	if rawID == "" {
		return nil, fmt.Errorf("%w: product ID is required", domain.ErrInvalidRequest)
	}
	productID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed product ID %q", domain.ErrInvalidRequest, rawID)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, err
		}
		s.log.Error("Failed to get product",
			"productID", productID,
			"error", err,
		)
		return nil, fmt.Errorf("%w: failed to get product: %w", domain.ErrStoreUnavailable, err)
	}

	return product, nil
}

// Health はストアへの疎通を確認します
func (s *ProductService) Health(ctx context.Context) error {
	if err := s.productRepo.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}
