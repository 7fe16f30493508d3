package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/velum-tech/pricing-backend/internal/domain"
	"github.com/velum-tech/pricing-backend/internal/repository/pgdb/converter"
	"github.com/velum-tech/pricing-backend/pkg/e"
	"github.com/velum-tech/pricing-backend/pkg/tr"
)

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// Create вставляет продукт в рамках транзакции из контекста и возвращает его
// с присвоенным ID. Дубликат имени (unique constraint) оборачивает
// e.ErrConstraintViolation.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description;
	`

	model := p.conv.ToModel(product)
	if err := tx.QueryRow(ctx, query, model.Name, model.Description).
		Scan(&model.ID, &model.Name, &model.Description); err != nil {
		if constraintViolation(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrConstraintViolation)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// GetByID возвращает продукт или ProductNotFoundError, если записи нет.
func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, description
		FROM products
		WHERE id = $1;
	`

	var model converter.ProductModel
	if err := p.pool.QueryRow(ctx, query, id).
		Scan(&model.ID, &model.Name, &model.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.NewProductNotFoundError(id)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

func (p *ProductRepo) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1);`

	var exists bool
	if err := p.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}
