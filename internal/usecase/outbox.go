package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/velum-tech/pricing-backend/internal/domain"
)

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	ProductCreated OutboxEventType = "product.created"
	PriceAdded     OutboxEventType = "price.added"
)

// OutboxEvent — запись transactional outbox: создаётся в одной транзакции с
// доменным изменением, публикуется в Kafka фоновым воркером.
type OutboxEvent struct {
	ID          int64
	EventID     string // uuid
	EventType   OutboxEventType
	ProductID   int64 // ключ партиционирования
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

func NewOutboxEvent(eventType OutboxEventType, productID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		ProductID: productID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}
}

// ProductCreatedPayload — JSON-тело события product.created.
type ProductCreatedPayload struct {
	EventType   string `json:"event_type"`
	ProductID   int64  `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PriceAddedPayload — JSON-тело события price.added.
type PriceAddedPayload struct {
	EventType string  `json:"event_type"`
	PriceID   int64   `json:"price_id"`
	ProductID int64   `json:"product_id"`
	Value     string  `json:"value"`
	Currency  string  `json:"currency"`
	InitDate  string  `json:"init_date"`
	EndDate   *string `json:"end_date"` // null — бессрочная цена
}

func NewProductCreatedEvent(product *domain.Product) (*OutboxEvent, error) {
	payload, err := json.Marshal(ProductCreatedPayload{
		EventType:   string(ProductCreated),
		ProductID:   product.ID,
		Name:        product.Name,
		Description: product.Description,
	})
	if err != nil {
		return nil, err
	}

	return NewOutboxEvent(ProductCreated, product.ID, payload), nil
}

func NewPriceAddedEvent(price *domain.Price) (*OutboxEvent, error) {
	var endDate *string
	if price.EndDate != nil {
		formatted := price.EndDate.Format(domain.DateLayout)
		endDate = &formatted
	}

	payload, err := json.Marshal(PriceAddedPayload{
		EventType: string(PriceAdded),
		PriceID:   price.ID,
		ProductID: price.ProductID,
		Value:     price.Value.String(),
		Currency:  price.Currency,
		InitDate:  price.InitDate.Format(domain.DateLayout),
		EndDate:   endDate,
	})
	if err != nil {
		return nil, err
	}

	return NewOutboxEvent(PriceAdded, price.ProductID, payload), nil
}
