package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velum-tech/pricing-backend/pkg/e"
)

func TestPriceOverlapValidator(t *testing.T) {
	validator := NewPriceOverlapValidator()

	t.Run("empty existing list passes", func(t *testing.T) {
		candidate := closedPrice(1, "EUR", date(2025, 1, 1), date(2025, 1, 31))
		assert.NoError(t, validator.Validate(candidate, nil))
		assert.NoError(t, validator.Validate(candidate, []*Price{}))
	})

	t.Run("no conflicts passes", func(t *testing.T) {
		candidate := closedPrice(1, "EUR", date(2025, 3, 1), date(2025, 3, 31))
		existing := []*Price{
			closedPrice(1, "EUR", date(2025, 1, 1), date(2025, 1, 31)),
			closedPrice(1, "EUR", date(2025, 2, 1), date(2025, 2, 28)),
		}
		assert.NoError(t, validator.Validate(candidate, existing))
	})

	t.Run("conflict yields error with candidate range", func(t *testing.T) {
		candidate := closedPrice(1, "EUR", date(2025, 1, 15), date(2025, 2, 15))
		existing := []*Price{
			closedPrice(1, "EUR", date(2025, 1, 1), date(2025, 1, 31)),
		}

		err := validator.Validate(candidate, existing)
		require.Error(t, err)

		var overlapErr *e.PriceOverlapError
		require.ErrorAs(t, err, &overlapErr)
		assert.Equal(t, int64(1), overlapErr.ProductID)
		assert.Equal(t, date(2025, 1, 15), overlapErr.InitDate)
		require.NotNil(t, overlapErr.EndDate)
		assert.Equal(t, date(2025, 2, 15), *overlapErr.EndDate)
	})

	t.Run("open-ended candidate reports infinity range", func(t *testing.T) {
		candidate := openPrice(2, "USD", date(2025, 6, 1))
		existing := []*Price{openPrice(2, "USD", date(2025, 1, 1))}

		err := validator.Validate(candidate, existing)
		require.Error(t, err)

		var overlapErr *e.PriceOverlapError
		require.ErrorAs(t, err, &overlapErr)
		assert.Nil(t, overlapErr.EndDate)
		assert.Contains(t, overlapErr.Error(), "infinity")
	})

	t.Run("existing list is not mutated", func(t *testing.T) {
		existing := []*Price{
			closedPrice(1, "EUR", date(2025, 1, 1), date(2025, 1, 31)),
			closedPrice(1, "EUR", date(2025, 2, 1), date(2025, 2, 28)),
		}
		snapshot := make([]*Price, len(existing))
		copy(snapshot, existing)

		candidate := closedPrice(1, "EUR", date(2025, 1, 10), date(2025, 1, 20))
		_ = validator.Validate(candidate, existing)

		require.Len(t, existing, 2)
		for i := range existing {
			assert.Same(t, snapshot[i], existing[i])
		}
	})
}
