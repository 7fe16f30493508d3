package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
}

// PriceModel представляет запись таблицы product_prices в PostgreSQL.
// Value читается как text и конвертируется в decimal на стороне приложения.
type PriceModel struct {
	ID        int64      `db:"id"`
	ProductID int64      `db:"product_id"`
	Value     string     `db:"value"`
	Currency  string     `db:"currency"`
	InitDate  time.Time  `db:"init_date"`
	EndDate   *time.Time `db:"end_date"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	ProductID   int64      `db:"product_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
