package http

import (
	"encoding/json"
	"net/http"

	"github.com/velum-tech/pricing-backend/internal/usecase"
	"github.com/velum-tech/pricing-backend/pkg/e"
	"github.com/velum-tech/pricing-backend/pkg/logger"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

// createProduct
//
//	@Summary		Создание продукта
//	@Description	Создает продукт с уникальным именем
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateProductRequest	true	"Данные продукта"
//	@Success		201		{object}	ProductResponse			"Успешное создание"
//	@Failure		400		{object}	ErrorResponse			"Ошибка валидации"
//	@Failure		409		{object}	ErrorResponse			"Имя уже занято"
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	product, err := p.productUsecase.CreateProduct(r.Context(), usecase.NewCreateProductReq(req.Name, req.Description))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

// getProduct
//
//	@Summary	Получение продукта по ID
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int				true	"ID продукта"
//	@Success	200	{object}	ProductResponse	"Продукт"
//	@Failure	404	{object}	ErrorResponse	"Продукт не найден"
//	@Router		/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.GetProduct(r.Context(), id)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}
