package http

import (
	"encoding/json"

	"github.com/DRSN-tech/catalog-editor/internal/domain"
	"github.com/DRSN-tech/catalog-editor/internal/usecase"
	"github.com/shopspring/decimal"
)

// ProductSnapshotRequest — товар в том виде, в котором его показывает список.
type ProductSnapshotRequest struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price" swaggertype:"number"`
	CategoryID *int64          `json:"category_id"`
	ImageURL   *string         `json:"image_url"`
}

// PatchEditRequest — изменения полей формы. Отсутствующие поля не меняются.
// price принимается и строкой, и числом: до отправки цена хранится как введённый текст.
type PatchEditRequest struct {
	Name       *string          `json:"name"`
	Price      *json.RawMessage `json:"price" swaggertype:"string"`
	CategoryID *string          `json:"category_id"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type PendingImageResponse struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

type EditViewResponse struct {
	ProductID    int64                 `json:"product_id"`
	Name         string                `json:"name"`
	Price        string                `json:"price"`
	CategoryID   string                `json:"category_id"`
	Categories   []CategoryResponse    `json:"categories"`
	ImageURL     string                `json:"image_url,omitempty"`
	PendingImage *PendingImageResponse `json:"pending_image,omitempty"`
	Error        string                `json:"error,omitempty"`
	Loading      bool                  `json:"loading"`
	Closed       bool                  `json:"closed"`
}

type EditSessionResponse struct {
	SessionID string            `json:"session_id"`
	View      *EditViewResponse `json:"view"`
}

type SubmitResponse struct {
	Message   string `json:"message"`
	Refreshed bool   `json:"refreshed"`
	Closed    bool   `json:"closed"`
}

// MAPPERS

func (p *ProductSnapshotRequest) ToDomain() *domain.Product {
	return domain.NewProduct(p.ID, p.Name, p.Price, p.CategoryID, p.ImageURL)
}

func NewEditViewResponse(view *usecase.EditView) *EditViewResponse {
	categories := make([]CategoryResponse, 0, len(view.Categories))
	for _, c := range view.Categories {
		categories = append(categories, CategoryResponse{ID: c.ID, Name: c.Name})
	}

	res := &EditViewResponse{
		ProductID:  view.ProductID,
		Name:       view.Name,
		Price:      view.Price,
		CategoryID: view.CategoryID,
		Categories: categories,
		ImageURL:   view.ImageURL,
		Error:      view.Error,
		Loading:    view.Loading,
		Closed:     view.Closed,
	}

	if view.PendingImage != nil {
		res.PendingImage = &PendingImageResponse{
			Name:     view.PendingImage.Name,
			MimeType: view.PendingImage.MimeType,
			Size:     view.PendingImage.Size,
		}
	}

	return res
}

func NewEditSessionResponse(session *usecase.EditSession) *EditSessionResponse {
	return &EditSessionResponse{
		SessionID: session.ID,
		View:      NewEditViewResponse(session.Workflow.State().Snapshot()),
	}
}

func NewSubmitResponse(res *usecase.SubmitResult, refreshed bool) *SubmitResponse {
	return &SubmitResponse{
		Message:   res.Message,
		Refreshed: refreshed,
		Closed:    true,
	}
}
