package converter

import (
	"github.com/shopspring/decimal"
	"github.com/velum-tech/pricing-backend/internal/domain"
	"github.com/velum-tech/pricing-backend/internal/usecase"
	"github.com/velum-tech/pricing-backend/pkg/e"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter struct{}

func NewProductConverter() ProductConverter {
	return ProductConverter{}
}

func (ProductConverter) ToModel(entity *domain.Product) *ProductModel {
	var description *string
	if entity.Description != "" {
		description = &entity.Description
	}

	return &ProductModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: description,
	}
}

func (ProductConverter) ToEntity(model *ProductModel) *domain.Product {
	var description string
	if model.Description != nil {
		description = *model.Description
	}

	return domain.ProductOf(model.ID, model.Name, description)
}

// PriceConverter преобразует сущности Price между domain и моделью PostgreSQL.
type PriceConverter struct{}

func NewPriceConverter() PriceConverter {
	return PriceConverter{}
}

func (PriceConverter) ToEntity(model *PriceModel) (*domain.Price, error) {
	value, err := decimal.NewFromString(model.Value)
	if err != nil {
		return nil, e.Wrap("invalid numeric value in storage", err)
	}

	return domain.PriceOf(model.ID, model.ProductID, value, model.Currency, model.InitDate, model.EndDate), nil
}

func (c PriceConverter) ToArrEntity(models []*PriceModel) ([]*domain.Price, error) {
	result := make([]*domain.Price, 0, len(models))
	for _, model := range models {
		price, err := c.ToEntity(model)
		if err != nil {
			return nil, err
		}
		result = append(result, price)
	}

	return result, nil
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter struct{}

func NewOutboxEventConverter() OutboxEventConverter {
	return OutboxEventConverter{}
}

func (OutboxEventConverter) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		ProductID:   entity.ProductID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (OutboxEventConverter) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		ProductID:   model.ProductID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c OutboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		result = append(result, c.ToEntity(model))
	}

	return result
}
