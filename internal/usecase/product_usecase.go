package usecase

import (
	"context"
	"errors"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/velum-tech/pricing-backend/internal/domain"
	"github.com/velum-tech/pricing-backend/pkg/e"
	"github.com/velum-tech/pricing-backend/pkg/logger"
)

// ProductUseCase реализует бизнес-логику управления продуктами.
type ProductUseCase struct {
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	dbPool      transaction.Transactional
	logger      logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		dbPool:      dbPool,
		logger:      logger,
	}
}

// CreateProduct создаёт продукт и outbox-событие product.created в одной
// транзакции. Дубликат имени транслируется в ProductAlreadyExistsError —
// уникальность гарантирует constraint в базе, а не проверка перед записью.
func (p *ProductUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.CreateProduct"

	product, err := domain.NewProduct(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	created, err := p.productRepo.Create(ctx, product)
	if err != nil {
		if errors.Is(err, e.ErrConstraintViolation) {
			return nil, e.NewProductAlreadyExistsError(req.Name)
		}
		return nil, e.Wrap(op, err)
	}

	event, err := NewProductCreatedEvent(created)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if _, err = p.outboxRepo.Create(ctx, event); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

// GetProduct возвращает продукт по идентификатору.
func (p *ProductUseCase) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	return p.productRepo.GetByID(ctx, productID)
}
