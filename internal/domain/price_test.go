package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velum-tech/pricing-backend/pkg/e"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func closedPrice(productID int64, currency string, init, end time.Time) *Price {
	return PriceOf(0, productID, decimal.NewFromInt(10), currency, init, &end)
}

func openPrice(productID int64, currency string, init time.Time) *Price {
	return PriceOf(0, productID, decimal.NewFromInt(10), currency, init, nil)
}

func TestNewPrice(t *testing.T) {
	t.Run("valid closed range", func(t *testing.T) {
		p, err := NewPrice(1, decimal.NewFromFloat(99.99), "EUR", date(2025, 1, 1), datePtr(2025, 1, 31))
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.ProductID)
		assert.False(t, p.OpenEnded())
	})

	t.Run("valid open-ended", func(t *testing.T) {
		p, err := NewPrice(1, decimal.NewFromInt(5), "EUR", date(2025, 1, 1), nil)
		require.NoError(t, err)
		assert.True(t, p.OpenEnded())
	})

	t.Run("single day range is allowed", func(t *testing.T) {
		_, err := NewPrice(1, decimal.NewFromInt(5), "EUR", date(2025, 1, 15), datePtr(2025, 1, 15))
		require.NoError(t, err)
	})

	t.Run("missing product id", func(t *testing.T) {
		_, err := NewPrice(0, decimal.NewFromInt(5), "EUR", date(2025, 1, 1), nil)
		assert.ErrorIs(t, err, e.ErrProductIDRequired)
	})

	t.Run("zero value", func(t *testing.T) {
		_, err := NewPrice(1, decimal.Zero, "EUR", date(2025, 1, 1), nil)
		assert.ErrorIs(t, err, e.ErrPriceMustBePositive)
	})

	t.Run("negative value", func(t *testing.T) {
		_, err := NewPrice(1, decimal.NewFromInt(-3), "EUR", date(2025, 1, 1), nil)
		assert.ErrorIs(t, err, e.ErrPriceMustBePositive)
	})

	t.Run("missing init date", func(t *testing.T) {
		_, err := NewPrice(1, decimal.NewFromInt(5), "EUR", time.Time{}, nil)
		assert.ErrorIs(t, err, e.ErrInitDateRequired)
	})

	t.Run("end date before init date", func(t *testing.T) {
		_, err := NewPrice(1, decimal.NewFromInt(5), "EUR", date(2025, 2, 1), datePtr(2025, 1, 1))
		assert.ErrorIs(t, err, e.ErrEndDateBeforeInitDate)
	})
}

func TestPriceOverlaps(t *testing.T) {
	t.Run("disjoint ranges do not overlap", func(t *testing.T) {
		a := closedPrice(1, "EUR", date(2025, 1, 1), date(2025, 1, 31))
		b := closedPrice(1, "EUR", date(2025, 3, 1), date(2025, 3, 31))
		assert.False(t, a.Overlaps(b))
		assert.False(t, b.Overlaps(a))
	})

	t.Run("adjacent ranges with one day gap do not overlap", func(t *testing.T) {
		a := closedPrice(1, "EUR", date(2025, 1, 1), date(2025, 1, 15))
		b := closedPrice(1, "EUR", date(2025, 1, 16), date(2025, 1, 31))
		assert.False(t, a.Overlaps(b))
		assert.False(t, b.Overlaps(a))
	})

	t.Run("shared boundary day overlaps", func(t *testing.T) {
		a := closedPrice(1, "EUR", date(2025, 1, 1), date(2025, 1, 15))
		b := closedPrice(1, "EUR", date(2025, 1, 15), date(2025, 1, 31))
		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))
	})

	t.Run("partial overlap", func(t *testing.T) {
		a := closedPrice(1, "EUR", date(2025, 1, 1), date(2025, 1, 20))
		b := closedPrice(1, "EUR", date(2025, 1, 10), date(2025, 1, 31))
		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))
	})

	t.Run("containment overlaps", func(t *testing.T) {
		outer := closedPrice(1, "EUR", date(2025, 1, 1), date(2025, 12, 31))
		inner := closedPrice(1, "EUR", date(2025, 6, 1), date(2025, 6, 30))
		assert.True(t, outer.Overlaps(inner))
		assert.True(t, inner.Overlaps(outer))
	})

	t.Run("identical ranges overlap", func(t *testing.T) {
		a := closedPrice(1, "EUR", date(2025, 1, 1), date(2025, 1, 31))
		b := closedPrice(1, "EUR", date(2025, 1, 1), date(2025, 1, 31))
		assert.True(t, a.Overlaps(b))
	})

	t.Run("both open-ended always overlap", func(t *testing.T) {
		a := openPrice(1, "EUR", date(2025, 1, 1))
		b := openPrice(1, "EUR", date(2030, 1, 1))
		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))
	})

	t.Run("open-ended overlaps later closed range", func(t *testing.T) {
		open := openPrice(1, "EUR", date(2025, 6, 1))
		closed := closedPrice(1, "EUR", date(2025, 7, 1), date(2025, 7, 31))
		assert.True(t, open.Overlaps(closed))
	})

	t.Run("open-ended starting on other init overlaps", func(t *testing.T) {
		open := openPrice(1, "EUR", date(2025, 6, 1))
		closed := closedPrice(1, "EUR", date(2025, 6, 1), date(2025, 6, 30))
		assert.True(t, open.Overlaps(closed))
	})

	t.Run("closed range reaching into open-ended overlaps", func(t *testing.T) {
		closed := closedPrice(1, "EUR", date(2025, 5, 1), date(2025, 6, 15))
		open := openPrice(1, "EUR", date(2025, 6, 1))
		assert.True(t, closed.Overlaps(open))
	})

	t.Run("closed range ending before open-ended start does not overlap", func(t *testing.T) {
		closed := closedPrice(1, "EUR", date(2025, 1, 1), date(2025, 5, 31))
		open := openPrice(1, "EUR", date(2025, 6, 1))
		assert.False(t, closed.Overlaps(open))
	})

	t.Run("closed range ending on open-ended start overlaps", func(t *testing.T) {
		closed := closedPrice(1, "EUR", date(2025, 1, 1), date(2025, 6, 1))
		open := openPrice(1, "EUR", date(2025, 6, 1))
		assert.True(t, closed.Overlaps(open))
	})

	t.Run("different products never overlap", func(t *testing.T) {
		a := openPrice(1, "EUR", date(2025, 1, 1))
		b := openPrice(2, "EUR", date(2025, 1, 1))
		assert.False(t, a.Overlaps(b))
	})

	t.Run("different currencies never overlap", func(t *testing.T) {
		a := closedPrice(1, "EUR", date(2025, 1, 1), date(2025, 12, 31))
		b := closedPrice(1, "USD", date(2025, 1, 1), date(2025, 12, 31))
		assert.False(t, a.Overlaps(b))
		assert.False(t, b.Overlaps(a))
	})

	t.Run("nil other does not overlap", func(t *testing.T) {
		a := openPrice(1, "EUR", date(2025, 1, 1))
		assert.False(t, a.Overlaps(nil))
	})
}

func TestPriceActiveOn(t *testing.T) {
	closed := closedPrice(1, "EUR", date(2025, 1, 10), date(2025, 1, 20))

	assert.False(t, closed.ActiveOn(date(2025, 1, 9)))
	assert.True(t, closed.ActiveOn(date(2025, 1, 10)))
	assert.True(t, closed.ActiveOn(date(2025, 1, 15)))
	assert.True(t, closed.ActiveOn(date(2025, 1, 20)))
	assert.False(t, closed.ActiveOn(date(2025, 1, 21)))

	open := openPrice(1, "EUR", date(2025, 1, 10))
	assert.False(t, open.ActiveOn(date(2025, 1, 9)))
	assert.True(t, open.ActiveOn(date(2025, 1, 10)))
	assert.True(t, open.ActiveOn(date(2099, 12, 31)))
}

func TestPriceSame(t *testing.T) {
	a := PriceOf(7, 1, decimal.NewFromInt(10), "EUR", date(2025, 1, 1), nil)
	b := PriceOf(7, 1, decimal.NewFromInt(99), "USD", date(2026, 1, 1), nil)
	c := PriceOf(8, 1, decimal.NewFromInt(10), "EUR", date(2025, 1, 1), nil)

	assert.True(t, a.Same(b), "equal IDs mean the same entity regardless of attributes")
	assert.False(t, a.Same(c))
	assert.False(t, a.Same(nil))

	unsaved := openPrice(1, "EUR", date(2025, 1, 1))
	assert.True(t, unsaved.Same(unsaved))
	assert.False(t, unsaved.Same(openPrice(1, "EUR", date(2025, 1, 1))))
}

func TestProductSame(t *testing.T) {
	a := ProductOf(3, "Laptop", "")
	b := ProductOf(3, "Renamed Laptop", "still the same row")
	c := ProductOf(4, "Laptop", "")

	assert.True(t, a.Same(b))
	assert.False(t, a.Same(c))
	assert.False(t, a.Same(nil))

	unsaved, err := NewProduct("Tablet", "")
	require.NoError(t, err)
	assert.True(t, unsaved.Same(unsaved))
}

func TestNewProduct(t *testing.T) {
	t.Run("name required", func(t *testing.T) {
		_, err := NewProduct("  ", "desc")
		assert.ErrorIs(t, err, e.ErrProductNameRequired)
	})

	t.Run("description optional", func(t *testing.T) {
		p, err := NewProduct("Laptop", "")
		require.NoError(t, err)
		assert.Equal(t, "Laptop", p.Name)
	})
}
