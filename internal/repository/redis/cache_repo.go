package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	r "github.com/redis/go-redis/v9"

	"github.com/jimlawless/whereami"
	"github.com/velum-tech/pricing-backend/internal/cfg"
	"github.com/velum-tech/pricing-backend/internal/domain"
	"github.com/velum-tech/pricing-backend/internal/repository/redis/converter"
	"github.com/velum-tech/pricing-backend/pkg/clients"
	"github.com/velum-tech/pricing-backend/pkg/e"
	"github.com/velum-tech/pricing-backend/pkg/logger"
)

// allCurrenciesKey — сегмент ключа для истории без фильтра по валюте.
const allCurrenciesKey = "all"

// CacheRepo кэширует историю цен по ключу (продукт, валюта) с TTL.
// Ошибки кэша никогда не роняют запрос: промах или сбой — просто поход в базу.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.PriceConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.PriceConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetHistory возвращает закэшированную историю цен; found == false — промах.
func (c *CacheRepo) GetHistory(ctx context.Context, productID int64, currency string) ([]*domain.Price, bool, error) {
	data, err := c.client.Client.Get(ctx, c.historyKey(productID, currency)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, false, nil // cache miss
		}

		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	var models []converter.PriceRedisModel
	if err := json.Unmarshal(data, &models); err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, false, nil
	}

	prices, err := c.conv.ToArrEntity(models)
	if err != nil {
		c.logger.Warnf("Corrupted price history cache entry: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, false, nil
	}

	return prices, true, nil
}

// SetHistory кэширует историю цен с TTL из конфигурации.
func (c *CacheRepo) SetHistory(ctx context.Context, productID int64, currency string, prices []*domain.Price) error {
	data, err := json.Marshal(c.conv.ToArrRedisModel(prices))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	key := c.historyKey(productID, currency)
	if err := c.client.Client.Set(ctx, key, data, c.cfg.HistoryTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// DeleteHistory сбрасывает ключ истории для валюты и сводный ключ продукта.
// Ошибку Redis пробрасывает вызывающей стороне — решение, ломать ли запрос,
// принимает она.
func (c *CacheRepo) DeleteHistory(ctx context.Context, productID int64, currency string) error {
	keys := []string{
		c.historyKey(productID, currency),
		c.historyKey(productID, ""),
	}

	if err := c.client.Client.Del(ctx, keys...).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// historyKey возвращает Redis-ключ истории цен продукта.
func (c *CacheRepo) historyKey(productID int64, currency string) string {
	if currency == "" {
		currency = allCurrenciesKey
	}

	return fmt.Sprintf("prices:%d:%s", productID, currency)
}
