package usecase

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/velum-tech/pricing-backend/internal/domain"
)

// PRODUCT USECASE

// CreateProductReq — запрос на создание продукта.
type CreateProductReq struct {
	Name        string
	Description string
}

// PRICE USECASE

// AddPriceReq — запрос на добавление ценового периода продукту.
type AddPriceReq struct {
	ProductID int64
	Value     decimal.Decimal
	Currency  string
	InitDate  time.Time
	EndDate   *time.Time // nil — бессрочная цена
}

// PriceHistoryReq — запрос истории цен. Currency пустая — все валюты.
type PriceHistoryReq struct {
	ProductID int64
	Currency  string
}

// PriceHistoryRes — история цен вместе с данными продукта.
type PriceHistoryRes struct {
	Product *domain.Product
	Prices  []*domain.Price
}

// ActivePricesReq — запрос цен, действующих на дату.
// Currency пустая — по одной цене на каждую активную валюту.
type ActivePricesReq struct {
	ProductID int64
	Date      time.Time
	Currency  string
}

// MAPPERS

func NewCreateProductReq(name string, description string) *CreateProductReq {
	return &CreateProductReq{
		Name:        name,
		Description: description,
	}
}

func NewAddPriceReq(productID int64, value decimal.Decimal, currency string, initDate time.Time, endDate *time.Time) *AddPriceReq {
	return &AddPriceReq{
		ProductID: productID,
		Value:     value,
		Currency:  currency,
		InitDate:  initDate,
		EndDate:   endDate,
	}
}

func NewPriceHistoryReq(productID int64, currency string) *PriceHistoryReq {
	return &PriceHistoryReq{
		ProductID: productID,
		Currency:  currency,
	}
}

func NewPriceHistoryRes(product *domain.Product, prices []*domain.Price) *PriceHistoryRes {
	return &PriceHistoryRes{
		Product: product,
		Prices:  prices,
	}
}

func NewActivePricesReq(productID int64, date time.Time, currency string) *ActivePricesReq {
	return &ActivePricesReq{
		ProductID: productID,
		Date:      date,
		Currency:  currency,
	}
}
