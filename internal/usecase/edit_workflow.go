package usecase

import (
	"context"
	"sync/atomic"

	"github.com/DRSN-tech/catalog-editor/internal/domain"
	"github.com/DRSN-tech/catalog-editor/pkg/e"
	"github.com/DRSN-tech/catalog-editor/pkg/logger"
)

// EditWorkflow ведёт одно редактирование товара от открытия формы до сохранения или отмены.
type EditWorkflow struct {
	product   *domain.Product
	state     *EditFormState
	loader    *ReferenceDataLoader
	pipeline  *SubmitPipeline
	callbacks Callbacks
	ready     chan struct{}
	logger    logger.Logger

	// busy держится от проверки закрытия до закрытия формы после успешной отправки
	busy atomic.Bool
}

// NewEditWorkflow создаёт редактирование и сразу запускает однократную загрузку категорий.
// Загрузка не отменяется вместе с ctx: запрос не перезапускается, пока форма открыта.
func NewEditWorkflow(
	ctx context.Context,
	product *domain.Product,
	callbacks Callbacks,
	api CatalogAPI,
	ack Acknowledger,
	logger logger.Logger,
) *EditWorkflow {
	w := &EditWorkflow{
		product:   product,
		state:     NewEditFormState(product),
		loader:    NewReferenceDataLoader(api, logger),
		pipeline:  NewSubmitPipeline(api, ack, logger),
		callbacks: callbacks,
		ready:     make(chan struct{}),
		logger:    logger,
	}

	loadCtx := context.WithoutCancel(ctx)
	go func() {
		defer close(w.ready)
		w.loader.Load(loadCtx, w.state)
	}()

	return w
}

// Ready закрывается, когда загрузка категорий завершилась (успешно или нет).
func (w *EditWorkflow) Ready() <-chan struct{} {
	return w.ready
}

// WaitReady ждёт завершения загрузки категорий или отмены ctx.
func (w *EditWorkflow) WaitReady(ctx context.Context) error {
	select {
	case <-w.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *EditWorkflow) ProductID() int64 {
	return w.product.ID
}

func (w *EditWorkflow) State() *EditFormState {
	return w.state
}

// Submit отправляет текущий черновик.
// При успехе форма закрывается, затем вызываются OnSave и OnClose, строго в этом порядке.
// При ошибке черновик и баннер не меняются, колбэки не вызываются.
// Повторный вызов до завершения предыдущего возвращает e.ErrSubmitInFlight.
func (w *EditWorkflow) Submit(ctx context.Context) (*SubmitResult, error) {
	const op = "EditWorkflow.Submit"

	if !w.busy.CompareAndSwap(false, true) {
		return nil, e.Wrap(op, e.ErrSubmitInFlight)
	}
	defer w.busy.Store(false)

	if w.state.Closed() {
		return nil, e.Wrap(op, e.ErrWorkflowClosed)
	}

	res, err := w.pipeline.Submit(ctx, w.state.Draft(), w.product.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	w.state.close()

	if w.callbacks.OnSave != nil {
		w.callbacks.OnSave(ctx)
	}
	if w.callbacks.OnClose != nil {
		w.callbacks.OnClose(ctx)
	}

	return res, nil
}

// Cancel закрывает форму без сохранения. Колбэки вызывающей стороны не вызываются.
func (w *EditWorkflow) Cancel() {
	w.state.close()
	w.logger.Debugf("edit of product %d cancelled", w.product.ID)
}
