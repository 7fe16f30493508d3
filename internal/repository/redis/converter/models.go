package converter

// PriceRedisModel — представление цены в JSON-кэше истории.
type PriceRedisModel struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Value     string  `json:"value"`
	Currency  string  `json:"currency"`
	InitDate  string  `json:"init_date"`
	EndDate   *string `json:"end_date"`
}
