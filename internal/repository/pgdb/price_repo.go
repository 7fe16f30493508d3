package pgdb

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/velum-tech/pricing-backend/internal/domain"
	"github.com/velum-tech/pricing-backend/internal/repository/pgdb/converter"
	"github.com/velum-tech/pricing-backend/pkg/e"
	"github.com/velum-tech/pricing-backend/pkg/tr"
)

// PriceRepo реализует репозиторий ценовых периодов поверх PostgreSQL.
// Таблица product_prices несёт GiST exclusion constraint по
// (product_id, currency, daterange) — серверную страховку от гонки между
// чтением области и записью (см. db/migrations).
type PriceRepo struct {
	pool *pgxpool.Pool
	conv converter.PriceConverter
}

func NewPriceRepo(pool *pgxpool.Pool, conv converter.PriceConverter) *PriceRepo {
	return &PriceRepo{
		pool: pool,
		conv: conv,
	}
}

// Create вставляет цену в рамках транзакции из контекста. Срабатывание
// exclusion constraint оборачивает e.ErrConstraintViolation.
func (p *PriceRepo) Create(ctx context.Context, price *domain.Price) (*domain.Price, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO product_prices (product_id, value, currency, init_date, end_date)
		VALUES ($1, $2::numeric, $3, $4, $5)
		RETURNING id, product_id, value::text, currency, init_date, end_date;
	`

	var model converter.PriceModel
	if err := tx.QueryRow(ctx, query,
		price.ProductID,
		price.Value.String(),
		price.Currency,
		price.InitDate,
		price.EndDate,
	).Scan(
		&model.ID, &model.ProductID, &model.Value,
		&model.Currency, &model.InitDate, &model.EndDate,
	); err != nil {
		if constraintViolation(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrConstraintViolation)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model)
}

// GetByScope возвращает цены области проверки (продукт + валюта) в рамках
// транзакции из контекста: чтение и последующая запись кандидата образуют
// один атомарный блок.
func (p *PriceRepo) GetByScope(ctx context.Context, productID int64, currency string) ([]*domain.Price, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		SELECT id, product_id, value::text, currency, init_date, end_date
		FROM product_prices
		WHERE product_id = $1 AND currency = $2
		ORDER BY init_date DESC;
	`

	rows, err := tx.Query(ctx, query, productID, currency)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return p.collect(rows)
}

// GetHistory возвращает цены продукта от новых к старым по init_date.
// Пустая валюта — без фильтра по валюте.
func (p *PriceRepo) GetHistory(ctx context.Context, productID int64, currency string) ([]*domain.Price, error) {
	query := `
		SELECT id, product_id, value::text, currency, init_date, end_date
		FROM product_prices
		WHERE product_id = $1
		ORDER BY init_date DESC;
	`
	args := []any{productID}

	if currency != "" {
		query = `
			SELECT id, product_id, value::text, currency, init_date, end_date
			FROM product_prices
			WHERE product_id = $1 AND currency = $2
			ORDER BY init_date DESC;
		`
		args = append(args, currency)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return p.collect(rows)
}

// GetActiveOn возвращает цены, действующие на дату: init_date <= date и
// end_date не раньше date либо NULL (бессрочная цена). Границы включительные,
// как и у проверки пересечений в domain.
func (p *PriceRepo) GetActiveOn(ctx context.Context, productID int64, currency string, date time.Time) ([]*domain.Price, error) {
	query := `
		SELECT id, product_id, value::text, currency, init_date, end_date
		FROM product_prices
		WHERE product_id = $1
		  AND init_date <= $2
		  AND (end_date IS NULL OR end_date >= $2)
		ORDER BY currency;
	`
	args := []any{productID, date}

	if currency != "" {
		query = `
			SELECT id, product_id, value::text, currency, init_date, end_date
			FROM product_prices
			WHERE product_id = $1
			  AND init_date <= $2
			  AND (end_date IS NULL OR end_date >= $2)
			  AND currency = $3;
		`
		args = append(args, currency)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return p.collect(rows)
}

func (p *PriceRepo) collect(rows pgx.Rows) ([]*domain.Price, error) {
	models := make([]*converter.PriceModel, 0)
	for rows.Next() {
		var model converter.PriceModel
		if err := rows.Scan(
			&model.ID, &model.ProductID, &model.Value,
			&model.Currency, &model.InitDate, &model.EndDate,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models)
}
