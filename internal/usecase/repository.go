package usecase

import (
	"context"
	"time"

	"github.com/velum-tech/pricing-backend/internal/domain"
)

type ProductRepository interface {
	// Create вставляет продукт и возвращает его с присвоенным ID.
	// Нарушение уникальности имени оборачивает e.ErrConstraintViolation.
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// GetByID возвращает *e.ProductNotFoundError, если записи нет.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type PriceRepository interface {
	// Create вставляет цену в рамках транзакции из контекста.
	// Нарушение exclusion constraint оборачивает e.ErrConstraintViolation.
	Create(ctx context.Context, price *domain.Price) (*domain.Price, error)
	// GetByScope возвращает цены области проверки (продукт + валюта) в рамках
	// транзакции из контекста, чтобы чтение и запись были одним атомарным блоком.
	GetByScope(ctx context.Context, productID int64, currency string) ([]*domain.Price, error)
	// GetHistory возвращает цены продукта от новых к старым по init_date.
	// Пустая валюта — без фильтра по валюте.
	GetHistory(ctx context.Context, productID int64, currency string) ([]*domain.Price, error)
	// GetActiveOn возвращает цены, действующие на дату (границы включительно).
	GetActiveOn(ctx context.Context, productID int64, currency string, date time.Time) ([]*domain.Price, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	// GetHistory возвращает закэшированную историю цен; found == false — промах.
	GetHistory(ctx context.Context, productID int64, currency string) (prices []*domain.Price, found bool, err error)
	SetHistory(ctx context.Context, productID int64, currency string, prices []*domain.Price) error
	// DeleteHistory сбрасывает ключи истории продукта: для указанной валюты
	// и сводный (без фильтра по валюте).
	DeleteHistory(ctx context.Context, productID int64, currency string) error
}
