package usecase

import (
	"context"
	"errors"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/velum-tech/pricing-backend/internal/domain"
	"github.com/velum-tech/pricing-backend/pkg/e"
	"github.com/velum-tech/pricing-backend/pkg/logger"
	"golang.org/x/text/currency"
)

// PriceUseCase реализует жизненный цикл ценовых периодов: добавление с
// проверкой пересечений, историю и выборку действующих цен.
type PriceUseCase struct {
	productRepo      ProductRepository
	priceRepo        PriceRepository
	outboxRepo       OutboxRepository
	overlapValidator *domain.PriceOverlapValidator
	dbPool           transaction.Transactional
	cacheRepo        CacheRepository
	logger           logger.Logger
}

func NewPriceUC(
	productRepo ProductRepository,
	priceRepo PriceRepository,
	outboxRepo OutboxRepository,
	overlapValidator *domain.PriceOverlapValidator,
	dbPool transaction.Transactional,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *PriceUseCase {
	return &PriceUseCase{
		productRepo:      productRepo,
		priceRepo:        priceRepo,
		outboxRepo:       outboxRepo,
		overlapValidator: overlapValidator,
		dbPool:           dbPool,
		cacheRepo:        cacheRepo,
		logger:           logger,
	}
}

// AddPrice добавляет продукту ценовой период.
// Порядок: продукт существует → валюта ISO 4217 → инварианты цены →
// выборка цен области (продукт + валюта) → проверка пересечений → запись.
// Чтение области и запись выполняются в одной транзакции; нарушение
// exclusion constraint при записи (второй писатель успел раньше)
// транслируется в ту же PriceOverlapError, что и проверка в памяти, —
// вызывающая сторона не различает, кто из них поймал конфликт.
func (p *PriceUseCase) AddPrice(ctx context.Context, req *AddPriceReq) (*domain.Price, error) {
	const op = "PriceUseCase.AddPrice"

	product, err := p.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	code, err := parseCurrency(req.Currency)
	if err != nil {
		return nil, err
	}

	candidate, err := domain.NewPrice(product.ID, req.Value, code, req.InitDate, req.EndDate)
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

	existing, err := p.priceRepo.GetByScope(ctx, product.ID, code)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = p.overlapValidator.Validate(candidate, existing); err != nil {
		return nil, err
	}

	saved, err := p.priceRepo.Create(ctx, candidate)
	if err != nil {
		if errors.Is(err, e.ErrConstraintViolation) {
			return nil, e.NewPriceOverlapError(product.ID, req.InitDate, req.EndDate)
		}
		return nil, e.Wrap(op, err)
	}

	event, err := NewPriceAddedEvent(saved)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if _, err = p.outboxRepo.Create(ctx, event); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Сброс устаревшей истории цен в кэше
	if err := p.cacheRepo.DeleteHistory(ctx, product.ID, code); err != nil {
		p.logger.Warnf("Failed to invalidate price history cache: %v", e.Wrap(op, err))
	}

	return saved, nil
}

// GetPriceHistory возвращает продукт и его цены от новых к старым.
func (p *PriceUseCase) GetPriceHistory(ctx context.Context, req *PriceHistoryReq) (*PriceHistoryRes, error) {
	const op = "PriceUseCase.GetPriceHistory"

	product, err := p.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	code := req.Currency
	if code != "" {
		if code, err = parseCurrency(code); err != nil {
			return nil, err
		}
	}

	// Поиск истории в кэше
	cached, found, err := p.cacheRepo.GetHistory(ctx, req.ProductID, code)
	if err != nil {
		p.logger.Warnf("Price history cache lookup failed: %v", e.Wrap(op, err))
	}
	if found {
		return NewPriceHistoryRes(product, cached), nil
	}

	prices, err := p.priceRepo.GetHistory(ctx, req.ProductID, code)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Фоновое добавление истории в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := p.cacheRepo.SetHistory(bgCtx, req.ProductID, code, prices); err != nil {
			p.logger.Warnf("Failed to cache price history in background: %v", e.Wrap(op, err))
		}
	}()

	return NewPriceHistoryRes(product, prices), nil
}

// GetActivePrices возвращает цены, действующие на дату. Без валюты — по одной
// цене на каждую активную валюту; с валютой — не более одной. Пустой результат
// транслируется в PriceNotFoundError.
func (p *PriceUseCase) GetActivePrices(ctx context.Context, req *ActivePricesReq) ([]*domain.Price, error) {
	const op = "PriceUseCase.GetActivePrices"

	exists, err := p.productRepo.Exists(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if !exists {
		return nil, e.NewProductNotFoundError(req.ProductID)
	}

	code := req.Currency
	if code != "" {
		if code, err = parseCurrency(code); err != nil {
			return nil, err
		}
	}

	prices, err := p.priceRepo.GetActiveOn(ctx, req.ProductID, code, req.Date)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(prices) == 0 {
		return nil, e.NewPriceNotFoundError(req.ProductID, req.Date)
	}

	return prices, nil
}

// parseCurrency проверяет код по таблице ISO 4217 и возвращает каноническую
// форму (верхний регистр).
func parseCurrency(code string) (string, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", e.NewInvalidCurrencyError(code)
	}

	return unit.String(), nil
}
