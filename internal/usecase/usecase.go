package usecase

import (
	"context"

	"github.com/velum-tech/pricing-backend/internal/domain"
)

type ProductUC interface {
	CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error)
	GetProduct(ctx context.Context, productID int64) (*domain.Product, error)
}

type PriceUC interface {
	AddPrice(ctx context.Context, req *AddPriceReq) (*domain.Price, error)
	GetPriceHistory(ctx context.Context, req *PriceHistoryReq) (*PriceHistoryRes, error)
	GetActivePrices(ctx context.Context, req *ActivePricesReq) ([]*domain.Price, error)
}
