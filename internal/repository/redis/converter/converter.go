package converter

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/velum-tech/pricing-backend/internal/domain"
	"github.com/velum-tech/pricing-backend/pkg/e"
)

// PriceConverter преобразует цены между domain и JSON-моделью кэша.
type PriceConverter struct{}

func NewPriceConverter() PriceConverter {
	return PriceConverter{}
}

func (PriceConverter) ToRedisModel(entity *domain.Price) PriceRedisModel {
	var endDate *string
	if entity.EndDate != nil {
		formatted := entity.EndDate.Format(domain.DateLayout)
		endDate = &formatted
	}

	return PriceRedisModel{
		ID:        entity.ID,
		ProductID: entity.ProductID,
		Value:     entity.Value.String(),
		Currency:  entity.Currency,
		InitDate:  entity.InitDate.Format(domain.DateLayout),
		EndDate:   endDate,
	}
}

func (PriceConverter) ToEntity(model PriceRedisModel) (*domain.Price, error) {
	value, err := decimal.NewFromString(model.Value)
	if err != nil {
		return nil, e.Wrap("invalid cached value", err)
	}

	initDate, err := time.Parse(domain.DateLayout, model.InitDate)
	if err != nil {
		return nil, e.Wrap("invalid cached init_date", err)
	}

	var endDate *time.Time
	if model.EndDate != nil {
		parsed, err := time.Parse(domain.DateLayout, *model.EndDate)
		if err != nil {
			return nil, e.Wrap("invalid cached end_date", err)
		}
		endDate = &parsed
	}

	return domain.PriceOf(model.ID, model.ProductID, value, model.Currency, initDate, endDate), nil
}

func (c PriceConverter) ToArrRedisModel(entities []*domain.Price) []PriceRedisModel {
	models := make([]PriceRedisModel, 0, len(entities))
	for _, entity := range entities {
		models = append(models, c.ToRedisModel(entity))
	}

	return models
}

func (c PriceConverter) ToArrEntity(models []PriceRedisModel) ([]*domain.Price, error) {
	entities := make([]*domain.Price, 0, len(models))
	for _, model := range models {
		entity, err := c.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}

	return entities, nil
}
