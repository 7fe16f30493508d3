package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/velum-tech/pricing-backend/pkg/e"
)

// DateLayout — формат дат на границах системы (API, кэш, логи).
const DateLayout = "2006-01-02"

// Price — цена продукта, действующая на диапазоне дат [InitDate, EndDate].
// EndDate == nil означает бессрочную цену («до особого распоряжения»).
// Границы диапазона включительные: цена с EndDate 2025-01-15 действует
// и 15-го января.
type Price struct {
	ID        int64 // 0 до сохранения
	ProductID int64
	Value     decimal.Decimal
	Currency  string // ISO 4217, проверяется слоем usecase
	InitDate  time.Time
	EndDate   *time.Time
}

// NewPrice создаёт несохранённую цену, проверяя инварианты:
// положительное значение и EndDate не раньше InitDate (равенство допустимо —
// цена на один день).
func NewPrice(productID int64, value decimal.Decimal, currency string, initDate time.Time, endDate *time.Time) (*Price, error) {
	if productID <= 0 {
		return nil, e.ErrProductIDRequired
	}
	if !value.IsPositive() {
		return nil, e.ErrPriceMustBePositive
	}
	if initDate.IsZero() {
		return nil, e.ErrInitDateRequired
	}
	if endDate != nil && endDate.Before(initDate) {
		return nil, e.ErrEndDateBeforeInitDate
	}

	return &Price{
		ProductID: productID,
		Value:     value,
		Currency:  currency,
		InitDate:  initDate,
		EndDate:   endDate,
	}, nil
}

// PriceOf восстанавливает цену из хранилища без повторной валидации.
func PriceOf(id int64, productID int64, value decimal.Decimal, currency string, initDate time.Time, endDate *time.Time) *Price {
	return &Price{
		ID:        id,
		ProductID: productID,
		Value:     value,
		Currency:  currency,
		InitDate:  initDate,
		EndDate:   endDate,
	}
}

// OpenEnded сообщает, является ли цена бессрочной.
func (p *Price) OpenEnded() bool {
	return p.EndDate == nil
}

// Overlaps определяет, пересекаются ли две цены хотя бы одним календарным днём.
// Цены разных продуктов или разных валют не пересекаются никогда — для одного
// продукта допустимы одновременные цены в разных валютах.
func (p *Price) Overlaps(other *Price) bool {
	if other == nil || p.ProductID != other.ProductID || p.Currency != other.Currency {
		return false
	}

	// Обе цены бессрочные: оба диапазона уходят в бесконечность и сталкиваются.
	if p.EndDate == nil && other.EndDate == nil {
		return true
	}

	// Бессрочная цена пересекается со всем, что начинается не раньше её начала.
	if p.EndDate == nil {
		return !other.InitDate.Before(p.InitDate)
	}

	// Симметричный случай: other бессрочная.
	if other.EndDate == nil {
		return !p.EndDate.Before(other.InitDate)
	}

	// Оба диапазона закрыты. Не пересекаются только когда один кончается
	// раньше начала другого; общий граничный день — это пересечение.
	return !(p.EndDate.Before(other.InitDate) || other.EndDate.Before(p.InitDate))
}

// ActiveOn сообщает, действует ли цена на указанную дату (границы включительно).
func (p *Price) ActiveOn(date time.Time) bool {
	if date.Before(p.InitDate) {
		return false
	}
	return p.EndDate == nil || !p.EndDate.Before(date)
}

// Same сравнивает цены как сущности: только по идентификатору.
// Несохранённые экземпляры (ID == 0) равны только самим себе.
func (p *Price) Same(other *Price) bool {
	if other == nil {
		return false
	}
	if p.ID == 0 || other.ID == 0 {
		return p == other
	}
	return p.ID == other.ID
}
