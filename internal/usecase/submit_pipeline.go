package usecase

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/DRSN-tech/catalog-editor/internal/domain"
	"github.com/DRSN-tech/catalog-editor/pkg/e"
	"github.com/DRSN-tech/catalog-editor/pkg/logger"
)

// SubmitPipeline превращает черновик в запрос на обновление и отправляет его в каталог.
// Одновременно выполняется не больше одной отправки.
type SubmitPipeline struct {
	api      CatalogAPI
	ack      Acknowledger
	logger   logger.Logger
	inFlight atomic.Bool
}

func NewSubmitPipeline(api CatalogAPI, ack Acknowledger, logger logger.Logger) *SubmitPipeline {
	return &SubmitPipeline{
		api:    api,
		ack:    ack,
		logger: logger,
	}
}

// Submit проверяет обязательные поля, отправляет ровно один запрос и показывает оператору результат.
// Ошибки проверки возвращаются без обращения к каталогу и без сообщения оператору.
// Повторный вызов во время активной отправки возвращает e.ErrSubmitInFlight.
func (s *SubmitPipeline) Submit(ctx context.Context, draft domain.EditDraft, productID int64) (*SubmitResult, error) {
	const op = "SubmitPipeline.Submit"

	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, e.Wrap(op, e.ErrSubmitInFlight)
	}
	defer s.inFlight.Store(false)

	req, err := s.buildRequest(draft, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res, err := s.api.UpdateProduct(ctx, req)
	if err != nil {
		s.logger.Warnf("product %d update failed: %v", productID, e.Wrap(op, err))
		s.ack.Acknowledge(ctx, FailureMessage(err))
		return nil, e.Wrap(op, errors.Join(e.ErrUpdateFailed, err))
	}

	s.logger.Infof("product %d updated, image replaced: %t", productID, req.Image != nil)
	s.ack.Acknowledge(ctx, res.Message)

	return NewSubmitResult(res.Message), nil
}

// InFlight сообщает, выполняется ли сейчас отправка.
func (s *SubmitPipeline) InFlight() bool {
	return s.inFlight.Load()
}

// buildRequest приводит цену к числу и собирает полезную нагрузку.
// Поле image попадает в запрос только при наличии нового изображения.
func (s *SubmitPipeline) buildRequest(draft domain.EditDraft, productID int64) (*UpdateProductReq, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, e.ErrProductNameRequired
	}

	price, err := draft.Price.Decimal()
	if err != nil {
		return nil, err
	}

	return NewUpdateProductReq(productID, draft.Name, price.String(), draft.CategoryID, draft.PendingImage), nil
}

// FailureMessage возвращает текст ошибки из ответа каталога или сообщение по умолчанию.
func FailureMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return UpdateFailedMessage
}
