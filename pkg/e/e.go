package e

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренняя ошибка хранилища: нарушение ограничения целостности
	// (уникальность, exclusion constraint). Слой usecase переводит её
	// в доменную ошибку конфликта.
	ErrConstraintViolation = fmt.Errorf("storage constraint violation")

	// 400 Bad Request
	ErrStatusBadRequest      = fmt.Errorf("bad request")
	ErrProductNameRequired   = fmt.Errorf("product name is required")
	ErrProductIDRequired     = fmt.Errorf("product id is required")
	ErrPriceMustBePositive   = fmt.Errorf("price value must be greater than zero")
	ErrInvalidPrice          = fmt.Errorf("price value is not a valid number")
	ErrInitDateRequired      = fmt.Errorf("init date is required")
	ErrEndDateBeforeInitDate = fmt.Errorf("end date must be after or equal to init date")
	ErrInvalidDate           = fmt.Errorf("date must be in YYYY-MM-DD format")
	ErrInvalidProductID      = fmt.Errorf("product id must be a positive integer")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// ProductNotFoundError — продукт с указанным ID не существует.
type ProductNotFoundError struct {
	ProductID int64
}

func NewProductNotFoundError(productID int64) *ProductNotFoundError {
	return &ProductNotFoundError{ProductID: productID}
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with ID %d not found", e.ProductID)
}

// ProductAlreadyExistsError — продукт с таким именем уже существует.
type ProductAlreadyExistsError struct {
	Name string
}

func NewProductAlreadyExistsError(name string) *ProductAlreadyExistsError {
	return &ProductAlreadyExistsError{Name: name}
}

func (e *ProductAlreadyExistsError) Error() string {
	return fmt.Sprintf("a product already exists with name: %s", e.Name)
}

// PriceOverlapError — новая цена пересекается по датам с уже существующей.
// Содержит диапазон именно кандидата, а не конфликтующей записи.
type PriceOverlapError struct {
	ProductID int64
	InitDate  time.Time
	EndDate   *time.Time
}

func NewPriceOverlapError(productID int64, initDate time.Time, endDate *time.Time) *PriceOverlapError {
	return &PriceOverlapError{ProductID: productID, InitDate: initDate, EndDate: endDate}
}

func (e *PriceOverlapError) Error() string {
	end := "infinity"
	if e.EndDate != nil {
		end = e.EndDate.Format(dateLayout)
	}
	return fmt.Sprintf(
		"a price already exists for product %d in the date range [%s, %s]",
		e.ProductID, e.InitDate.Format(dateLayout), end,
	)
}

// PriceNotFoundError — на указанную дату для продукта нет действующей цены.
type PriceNotFoundError struct {
	ProductID int64
	Date      time.Time
}

func NewPriceNotFoundError(productID int64, date time.Time) *PriceNotFoundError {
	return &PriceNotFoundError{ProductID: productID, Date: date}
}

func (e *PriceNotFoundError) Error() string {
	return fmt.Sprintf("no price found for product %d on date %s", e.ProductID, e.Date.Format(dateLayout))
}

// InvalidCurrencyError — код валюты не распознан как ISO 4217.
type InvalidCurrencyError struct {
	Code string
}

func NewInvalidCurrencyError(code string) *InvalidCurrencyError {
	return &InvalidCurrencyError{Code: code}
}

func (e *InvalidCurrencyError) Error() string {
	return fmt.Sprintf(
		"invalid currency code: %s. Must be a valid ISO 4217 currency code (e.g., EUR, USD, GBP)",
		e.Code,
	)
}
