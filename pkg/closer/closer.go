// Package closer обеспечивает упорядоченное закрытие ресурсов приложения
// при завершении работы. Функции закрываются в порядке LIFO, как defer.
package closer

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Func — сигнатура функции закрытия ресурса.
type Func func(ctx context.Context) error

// Closer накапливает функции закрытия и потокобезопасно запускает их.
type Closer struct {
	mu    sync.Mutex
	once  sync.Once
	funcs []Func
	names []string
}

func New() *Closer {
	return &Closer{}
}

// Add регистрирует функцию закрытия под читаемым именем (для логов ошибок).
func (c *Closer) Add(name string, f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs = append(c.funcs, f)
	c.names = append(c.names, name)
}

// Close запускает все зарегистрированные функции в порядке LIFO.
// Ошибки отдельных ресурсов собираются и не прерывают закрытие остальных.
// При отмене контекста оставшиеся ресурсы всё равно получают вызов Close,
// но уже с отменённым контекстом — ресурс сам решает, как завершаться.
func (c *Closer) Close(ctx context.Context) error {
	var errs []error
	c.once.Do(func() {
		c.mu.Lock()
		funcs, names := c.funcs, c.names
		c.mu.Unlock()

		for i := len(funcs) - 1; i >= 0; i-- {
			if err := funcs[i](ctx); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", names[i], err))
			}
		}
	})

	return errors.Join(errs...)
}
