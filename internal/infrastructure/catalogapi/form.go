package catalogapi

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/DRSN-tech/catalog-editor/internal/domain"
	"github.com/DRSN-tech/catalog-editor/internal/usecase"
	"github.com/DRSN-tech/catalog-editor/pkg/e"
)

const (
	fieldName       = "name"
	fieldPrice      = "price"
	fieldCategoryID = "category_id"
	fieldImage      = "image"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// buildUpdateForm собирает multipart-форму обновления товара.
// Часть image добавляется только при наличии нового изображения,
// чтобы каталог отличал «изображение не менялось» от любого другого значения.
func buildUpdateForm(req *usecase.UpdateProductReq) (string, *bytes.Buffer, error) {
	const op = "catalogapi.buildUpdateForm"

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fields := []struct {
		name  string
		value string
	}{
		{fieldName, req.Name},
		{fieldPrice, req.Price},
		{fieldCategoryID, req.CategoryID},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return "", nil, e.Wrap(op, err)
		}
	}

	if req.Image != nil {
		if err := writeImagePart(w, req); err != nil {
			return "", nil, e.Wrap(op, err)
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, e.Wrap(op, err)
	}

	return w.FormDataContentType(), body, nil
}

func writeImagePart(w *multipart.Writer, req *usecase.UpdateProductReq) error {
	image := req.Image

	ext, ok := domain.ImageExtension(image.MimeType)
	if !ok {
		return fmt.Errorf("invalid mime type %s for %s: %w", image.MimeType, image.Name, e.ErrUnsupportedMediaType)
	}

	filename := image.Name
	if filename == "" {
		filename = fmt.Sprintf("product-%d.%s", req.ProductID, ext)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fieldImage, quoteEscaper.Replace(filename)))
	h.Set("Content-Type", image.MimeType)

	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}

	_, err = part.Write(image.Data)
	return err
}
