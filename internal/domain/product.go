package domain

import (
	"strings"

	"github.com/velum-tech/pricing-backend/pkg/e"
)

// Product описывает продукт каталога. Имя уникально среди всех продуктов.
type Product struct {
	ID          int64 // 0 до сохранения; идентификатор присваивает хранилище
	Name        string
	Description string
}

// NewProduct создаёт несохранённый продукт (ID присвоит репозиторий).
func NewProduct(name string, description string) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, e.ErrProductNameRequired
	}

	return &Product{
		Name:        name,
		Description: description,
	}, nil
}

// ProductOf восстанавливает продукт из хранилища с уже присвоенным ID.
func ProductOf(id int64, name string, description string) *Product {
	return &Product{
		ID:          id,
		Name:        name,
		Description: description,
	}
}

// Same сравнивает продукты как сущности: только по идентификатору.
// Несохранённые экземпляры (ID == 0) равны только самим себе.
func (p *Product) Same(other *Product) bool {
	if other == nil {
		return false
	}
	if p.ID == 0 || other.ID == 0 {
		return p == other
	}
	return p.ID == other.ID
}
