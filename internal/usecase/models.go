package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/DRSN-tech/catalog-editor/internal/domain"
	"github.com/DRSN-tech/catalog-editor/pkg/e"
)

const (
	// CategoriesUnavailableMessage показывается в баннере, если не удалось загрузить категории.
	CategoriesUnavailableMessage = "Unable to load categories!"
	// UpdateFailedMessage показывается, если каталог не вернул собственного текста ошибки.
	UpdateFailedMessage          = "Failed to update product!"
)

// EDIT WORKFLOW

// Callbacks — уведомления, которые редактор отправляет вызывающей стороне после успешного сохранения.
// OnSave всегда вызывается раньше OnClose.
type Callbacks struct {
	OnSave  func(ctx context.Context)
	OnClose func(ctx context.Context)
}

// SubmitResult содержит результат успешной отправки черновика.
type SubmitResult struct {
	Message string
}

// EditView — снимок состояния формы для отображения.
type EditView struct {
	ProductID    int64
	Name         string
	Price        string
	CategoryID   string
	Categories   []domain.Category
	ImageURL     string // сохранённое изображение; пусто, если выбрано новое
	PendingImage *PendingImageInfo
	Error        string // sticky-баннер
	Loading      bool   // категории ещё загружаются
	Closed       bool
}

// PendingImageInfo описывает выбранное, но не отправленное изображение.
type PendingImageInfo struct {
	Name     string
	MimeType string
	Size     int64
}

// INFRASTRUCTURE

// UpdateProductReq — полезная нагрузка запроса на обновление товара.
type UpdateProductReq struct {
	ProductID  int64
	Name       string
	Price      string
	CategoryID string
	Image      *domain.PendingImage // при nil поле image не передаётся
}

// UpdateProductRes содержит ответ каталога на успешное обновление.
type UpdateProductRes struct {
	Message string
}

// ProductChangedEvent — событие об изменении товара, которое получают потребители списка.
type ProductChangedEvent struct {
	ProductID     int64     `json:"product_id"`
	Name          string    `json:"name"`
	Price         string    `json:"price"`
	CategoryID    string    `json:"category_id"`
	ImageReplaced bool      `json:"image_replaced"`
	ChangedAt     time.Time `json:"changed_at"`
}

// APIError — ответ каталога с кодом, отличным от 2xx.
type APIError struct {
	StatusCode int
	Message    string // поле error из тела ответа, если оно было
}

func (a *APIError) Error() string {
	if a.Message != "" {
		return fmt.Sprintf("catalog api: %d %s: %s", a.StatusCode, http.StatusText(a.StatusCode), a.Message)
	}

	return fmt.Sprintf("catalog api: %d %s", a.StatusCode, http.StatusText(a.StatusCode))
}

func (a *APIError) Unwrap() error {
	return e.ErrUnexpectedResponse
}

// MAPPERS

func NewUpdateProductReq(productID int64, name string, price string, categoryID string, image *domain.PendingImage) *UpdateProductReq {
	return &UpdateProductReq{
		ProductID:  productID,
		Name:       name,
		Price:      price,
		CategoryID: categoryID,
		Image:      image,
	}
}

func NewUpdateProductRes(message string) *UpdateProductRes {
	return &UpdateProductRes{
		Message: message,
	}
}

func NewSubmitResult(message string) *SubmitResult {
	return &SubmitResult{
		Message: message,
	}
}

func NewProductChangedEvent(productID int64, draft domain.EditDraft, changedAt time.Time) *ProductChangedEvent {
	price := draft.Price.Text()
	if d, err := draft.Price.Decimal(); err == nil {
		price = d.String()
	}

	return &ProductChangedEvent{
		ProductID:     productID,
		Name:          draft.Name,
		Price:         price,
		CategoryID:    draft.CategoryID,
		ImageReplaced: draft.HasPendingImage(),
		ChangedAt:     changedAt,
	}
}

func NewPendingImageInfo(image *domain.PendingImage) *PendingImageInfo {
	if image == nil {
		return nil
	}

	return &PendingImageInfo{
		Name:     image.Name,
		MimeType: image.MimeType,
		Size:     image.Size,
	}
}
