package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/velum-tech/pricing-backend/internal/domain"
	"github.com/velum-tech/pricing-backend/pkg/e"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// Request DTO

type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AddPriceRequest — тело запроса на добавление цены. Value принимается как
// JSON-число и разбирается в decimal без прохода через float64.
type AddPriceRequest struct {
	Value    json.Number `json:"value"`
	Currency string      `json:"currency"`
	InitDate string      `json:"initDate"`
	EndDate  *string     `json:"endDate"` // null или отсутствие — бессрочная цена
}

// Response DTO

type ProductResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type PriceResponse struct {
	ID        int64       `json:"id"`
	ProductID int64       `json:"productId"`
	Value     json.Number `json:"value"`
	Currency  string      `json:"currency"`
	InitDate  string      `json:"initDate"`
	EndDate   *string     `json:"endDate"` // null — бессрочная цена
}

type PriceHistoryResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Prices      []PriceResponse `json:"prices"`
}

func toProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
	}
}

func toPriceResponse(price *domain.Price) PriceResponse {
	var endDate *string
	if price.EndDate != nil {
		formatted := price.EndDate.Format(domain.DateLayout)
		endDate = &formatted
	}

	return PriceResponse{
		ID:        price.ID,
		ProductID: price.ProductID,
		Value:     json.Number(price.Value.String()),
		Currency:  price.Currency,
		InitDate:  price.InitDate.Format(domain.DateLayout),
		EndDate:   endDate,
	}
}

func toArrPriceResponse(prices []*domain.Price) []PriceResponse {
	result := make([]PriceResponse, 0, len(prices))
	for _, price := range prices {
		result = append(result, toPriceResponse(price))
	}

	return result
}

// ToHTTPResponse переводит доменные ошибки в статус и сообщение ответа.
// Любая нераспознанная ошибка — 500 без деталей.
func ToHTTPResponse(err error) (int, string) {
	var (
		productNotFound *e.ProductNotFoundError
		priceNotFound   *e.PriceNotFoundError
		overlap         *e.PriceOverlapError
		alreadyExists   *e.ProductAlreadyExistsError
		invalidCurrency *e.InvalidCurrencyError
	)

	switch {
	case errors.As(err, &productNotFound):
		return http.StatusNotFound, productNotFound.Error()
	case errors.As(err, &priceNotFound):
		return http.StatusNotFound, priceNotFound.Error()
	case errors.As(err, &overlap):
		return http.StatusConflict, overlap.Error()
	case errors.As(err, &alreadyExists):
		return http.StatusConflict, alreadyExists.Error()
	case errors.As(err, &invalidCurrency):
		return http.StatusBadRequest, invalidCurrency.Error()
	case errors.Is(err, e.ErrProductNameRequired):
		return http.StatusBadRequest, e.ErrProductNameRequired.Error()
	case errors.Is(err, e.ErrPriceMustBePositive):
		return http.StatusBadRequest, e.ErrPriceMustBePositive.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrInitDateRequired):
		return http.StatusBadRequest, e.ErrInitDateRequired.Error()
	case errors.Is(err, e.ErrEndDateBeforeInitDate):
		return http.StatusBadRequest, e.ErrEndDateBeforeInitDate.Error()
	case errors.Is(err, e.ErrInvalidDate):
		return http.StatusBadRequest, e.ErrInvalidDate.Error()
	case errors.Is(err, e.ErrInvalidProductID):
		return http.StatusBadRequest, e.ErrInvalidProductID.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parseProductID извлекает идентификатор продукта из пути запроса.
func parseProductID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, e.ErrInvalidProductID
	}

	return id, nil
}

// parseDate разбирает дату формата YYYY-MM-DD.
func parseDate(s string) (time.Time, error) {
	date, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, e.ErrInvalidDate
	}

	return date, nil
}
