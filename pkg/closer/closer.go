// Package closer закрывает ресурсы приложения в порядке, обратном регистрации.
package closer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/catalog-editor/pkg/logger"
)

const defaultForcedTimeout = 2 * time.Second

// Func закрывает один ресурс.
type Func func(ctx context.Context) error

type resource struct {
	name  string
	close Func
}

// Closer хранит именованные функции закрытия и вызывает их один раз.
type Closer struct {
	mu            sync.Mutex
	once          sync.Once
	resources     []resource
	forcedTimeout time.Duration
	logger        logger.Logger
}

// NewCloser создаёт Closer. forcedTimeout ограничивает принудительное закрытие
// ресурсов, до которых не дошла очередь к моменту отмены контекста Close; 0 означает 2s.
func NewCloser(logger logger.Logger, forcedTimeout time.Duration) *Closer {
	if forcedTimeout <= 0 {
		forcedTimeout = defaultForcedTimeout
	}

	return &Closer{
		forcedTimeout: forcedTimeout,
		logger:        logger,
	}
}

// Add регистрирует ресурс под именем name, которое попадает в логи и ошибки.
func (c *Closer) Add(name string, f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resources = append(c.resources, resource{name: name, close: f})
}

// Close закрывает ресурсы по одному, начиная с последнего зарегистрированного.
// Если ctx отменяется раньше, оставшиеся ресурсы закрываются параллельно с forcedTimeout.
// Повторные вызовы ничего не делают и возвращают nil.
func (c *Closer) Close(ctx context.Context) error {
	var err error

	c.once.Do(func() {
		c.mu.Lock()
		resources := c.resources
		c.mu.Unlock()

		done, errs := c.closeInOrder(ctx, resources)
		if done == len(resources) {
			err = errors.Join(errs...)
			return
		}

		c.logger.Warnf("shutdown interrupted after %d/%d resources, forcing the rest", done, len(resources))
		errs = append(errs, c.forceClose(resources[:len(resources)-done])...)
		err = errors.Join(append([]error{fmt.Errorf("shutdown interrupted after %d/%d resources: %w", done, len(resources), ctx.Err())}, errs...)...)
	})

	return err
}

// closeInOrder возвращает число обработанных ресурсов и их ошибки.
func (c *Closer) closeInOrder(ctx context.Context, resources []resource) (int, []error) {
	var errs []error

	for i := len(resources) - 1; i >= 0; i-- {
		r := resources[i]
		result := make(chan error, 1)

		go func() {
			result <- r.close(ctx)
		}()

		select {
		case err := <-result:
			if err != nil {
				c.logger.Errorf(err, "failed to close %s", r.name)
				errs = append(errs, fmt.Errorf("%s: %w", r.name, err))
				continue
			}
			c.logger.Debugf("%s closed", r.name)
		case <-ctx.Done():
			// Незавершённый ресурс тоже попадает в принудительное закрытие
			return len(resources) - 1 - i, errs
		}
	}

	return len(resources), errs
}

func (c *Closer) forceClose(resources []resource) []error {
	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, r := range resources {
		r := r
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := r.close(ctx); err != nil {
				c.logger.Errorf(err, "forced close of %s failed", r.name)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s (forced): %w", r.name, err))
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	return errs
}
