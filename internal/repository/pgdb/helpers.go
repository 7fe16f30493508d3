package pgdb

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode    = "23505"
	exclusionViolationCode = "23P01"
)

// constraintViolation распознаёт нарушение ограничения целостности PostgreSQL:
// уникальность (products.name) или exclusion constraint на диапазонах дат
// (product_prices). Слой usecase переводит такие ошибки в доменные конфликты.
func constraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == uniqueViolationCode || pgErr.Code == exclusionViolationCode
}
