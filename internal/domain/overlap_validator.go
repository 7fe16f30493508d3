package domain

import "github.com/velum-tech/pricing-backend/pkg/e"

// PriceOverlapValidator проверяет, что кандидат не пересекается ни с одной из
// существующих цен. Список existing должен быть уже отфильтрован вызывающей
// стороной по области проверки (тот же продукт, та же валюта) — валидатор
// повторную фильтрацию не делает.
type PriceOverlapValidator struct{}

func NewPriceOverlapValidator() *PriceOverlapValidator {
	return &PriceOverlapValidator{}
}

// Validate возвращает PriceOverlapError на первом конфликтующем элементе.
// Ошибка несёт диапазон кандидата, а не найденной записи. Пустой список —
// успех. Входные данные не изменяются.
func (v *PriceOverlapValidator) Validate(candidate *Price, existing []*Price) error {
	for _, ex := range existing {
		if candidate.Overlaps(ex) {
			return e.NewPriceOverlapError(candidate.ProductID, candidate.InitDate, candidate.EndDate)
		}
	}

	return nil
}
