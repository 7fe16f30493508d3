package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/velum-tech/pricing-backend/internal/usecase"
	"github.com/velum-tech/pricing-backend/pkg/e"
	"github.com/velum-tech/pricing-backend/pkg/logger"
)

type PriceHandler struct {
	priceUsecase usecase.PriceUC
	logger       logger.Logger
}

func NewPriceHandler(priceUsecase usecase.PriceUC, logger logger.Logger) *PriceHandler {
	return &PriceHandler{priceUsecase: priceUsecase, logger: logger}
}

// addPrice
//
//	@Summary		Добавление ценового периода
//	@Description	Добавляет продукту цену, действующую на диапазоне дат; endDate null — бессрочная цена
//	@Tags			prices
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int				true	"ID продукта"
//	@Param			request	body		AddPriceRequest	true	"Данные цены"
//	@Success		201		{object}	PriceResponse	"Успешное создание"
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		404		{object}	ErrorResponse	"Продукт не найден"
//	@Failure		409		{object}	ErrorResponse	"Пересечение с существующей ценой"
//	@Router			/products/{id}/prices [post]
func (p *PriceHandler) addPrice(w http.ResponseWriter, r *http.Request) {
	productID, err := parseProductID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req AddPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	addReq, err := parseAddPriceRequest(productID, &req)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	price, err := p.priceUsecase.AddPrice(r.Context(), addReq)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toPriceResponse(price))
}

// getPrices
//
//	@Summary		История и действующие цены продукта
//	@Description	Без параметра date — история цен (новые первыми); с date — цены, действующие на дату. Параметр currency сужает выборку до одной валюты.
//	@Tags			prices
//	@Produce		json
//	@Param			id			path		int		true	"ID продукта"
//	@Param			date		query		string	false	"Дата YYYY-MM-DD"
//	@Param			currency	query		string	false	"Код валюты ISO 4217"
//	@Success		200			{object}	PriceHistoryResponse	"История либо действующие цены"
//	@Failure		400			{object}	ErrorResponse			"Некорректные параметры"
//	@Failure		404			{object}	ErrorResponse			"Продукт или цена не найдены"
//	@Router			/products/{id}/prices [get]
func (p *PriceHandler) getPrices(w http.ResponseWriter, r *http.Request) {
	productID, err := parseProductID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var (
		dateStr      = r.URL.Query().Get("date")
		currencyCode = r.URL.Query().Get("currency")
	)

	// Без даты — полная история цен вместе с данными продукта
	if dateStr == "" {
		history, err := p.priceUsecase.GetPriceHistory(r.Context(), usecase.NewPriceHistoryReq(productID, currencyCode))
		if err != nil {
			p.logger.Warnf("%s", err.Error())
			WriteError(w, err)
			return
		}

		WriteSuccess(w, http.StatusOK, PriceHistoryResponse{
			ID:          history.Product.ID,
			Name:        history.Product.Name,
			Description: history.Product.Description,
			Prices:      toArrPriceResponse(history.Prices),
		})
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		WriteError(w, err)
		return
	}

	prices, err := p.priceUsecase.GetActivePrices(r.Context(), usecase.NewActivePricesReq(productID, date, currencyCode))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	// С валютой действующая цена не более чем одна — отдаём объект, не массив
	if currencyCode != "" {
		WriteSuccess(w, http.StatusOK, toPriceResponse(prices[0]))
		return
	}

	WriteSuccess(w, http.StatusOK, toArrPriceResponse(prices))
}

// parseAddPriceRequest переводит тело запроса в usecase-модель, разбирая
// число и даты. Семантические инварианты (положительность, порядок дат)
// проверяет доменная фабрика.
func parseAddPriceRequest(productID int64, req *AddPriceRequest) (*usecase.AddPriceReq, error) {
	value, err := decimal.NewFromString(req.Value.String())
	if err != nil {
		return nil, e.ErrInvalidPrice
	}

	if req.InitDate == "" {
		return nil, e.ErrInitDateRequired
	}

	initDate, err := parseDate(req.InitDate)
	if err != nil {
		return nil, err
	}

	var endDate *time.Time
	if req.EndDate != nil {
		parsed, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		endDate = &parsed
	}

	return usecase.NewAddPriceReq(productID, value, req.Currency, initDate, endDate), nil
}
