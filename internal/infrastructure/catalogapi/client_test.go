package catalogapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/catalog-editor/internal/domain"
	"github.com/DRSN-tech/catalog-editor/internal/usecase"
	"github.com/DRSN-tech/catalog-editor/pkg/e"
	"github.com/DRSN-tech/catalog-editor/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := NewClient(ts.URL, ts.Client(), logger.NewNop())
	require.NoError(t, err)

	return client
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	t.Parallel()

	_, err := NewClient("  ", nil, logger.NewNop())
	require.Error(t, err)
}

func TestListCategories(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/categories", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":3,"name":"Stationery"},{"id":1,"name":"Books"}]`)
	})

	categories, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []domain.Category{
		{ID: 3, Name: "Stationery"},
		{ID: 1, Name: "Books"},
	}, categories)
}

func TestListCategoriesKeepsBasePath(t *testing.T) {
	t.Parallel()

	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(ts.Close)

	client, err := NewClient(ts.URL+"/admin/", ts.Client(), logger.NewNop())
	require.NoError(t, err)

	categories, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	require.Empty(t, categories)
	require.Equal(t, "/admin/api/categories", gotPath)
}

func TestListCategoriesServerError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.ListCategories(context.Background())
	require.Error(t, err)

	var apiErr *usecase.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	require.Empty(t, apiErr.Message)
}

func TestListCategoriesMalformedBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"oops"`)
	})

	_, err := client.ListCategories(context.Background())
	require.ErrorIs(t, err, e.ErrUnexpectedResponse)
}

func TestUpdateProductWithoutImage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/products/42", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Pen", r.FormValue("name"))
		assert.Equal(t, "15000", r.FormValue("price"))
		assert.Equal(t, "3", r.FormValue("category_id"))
		_, hasImage := r.MultipartForm.File["image"]
		assert.False(t, hasImage)
		_, hasImageField := r.MultipartForm.Value["image"]
		assert.False(t, hasImageField)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Updated"})
	})

	res, err := client.UpdateProduct(context.Background(), usecase.NewUpdateProductReq(42, "Pen", "15000", "3", nil))
	require.NoError(t, err)
	require.Equal(t, "Updated", res.Message)
}

func TestUpdateProductWithImage(t *testing.T) {
	t.Parallel()

	png := []byte("\x89PNG\r\n\x1a\nfake")

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Pen", r.FormValue("name"))
		assert.Equal(t, "", r.FormValue("category_id"))

		files := r.MultipartForm.File["image"]
		require.Len(t, files, 1)
		assert.Equal(t, "pen.png", files[0].Filename)
		assert.Equal(t, "image/png", files[0].Header.Get("Content-Type"))

		f, err := files[0].Open()
		require.NoError(t, err)
		defer f.Close()
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, png, data)

		_, _ = io.WriteString(w, `{"message":"Saved with image"}`)
	})

	image := domain.NewPendingImage("pen.png", "image/png", png)
	res, err := client.UpdateProduct(context.Background(), usecase.NewUpdateProductReq(42, "Pen", "15000", "", image))
	require.NoError(t, err)
	require.Equal(t, "Saved with image", res.Message)
}

func TestUpdateProductErrorBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "error field", status: http.StatusBadRequest, body: `{"error":"Price must be positive"}`, message: "Price must be positive"},
		{name: "empty body", status: http.StatusBadGateway, body: ``, message: ""},
		{name: "not json", status: http.StatusInternalServerError, body: `<html>oops</html>`, message: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := client.UpdateProduct(context.Background(), usecase.NewUpdateProductReq(42, "Pen", "1", "", nil))
			require.Error(t, err)
			require.ErrorIs(t, err, e.ErrUnexpectedResponse)

			var apiErr *usecase.APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tt.status, apiErr.StatusCode)
			require.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestUpdateProductTransportError(t *testing.T) {
	t.Parallel()

	client, err := NewClient("http://catalog.invalid", doerFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}), logger.NewNop())
	require.NoError(t, err)

	_, err = client.UpdateProduct(context.Background(), usecase.NewUpdateProductReq(42, "Pen", "1", "", nil))
	require.ErrorContains(t, err, "connection refused")

	var apiErr *usecase.APIError
	require.False(t, errors.As(err, &apiErr))
}

func TestBuildUpdateFormRejectsUnsupportedImage(t *testing.T) {
	t.Parallel()

	for _, mimeType := range []string{"image/gif", "image/jpg", "image/webp"} {
		image := domain.NewPendingImage("pen", mimeType, []byte("data"))
		_, _, err := buildUpdateForm(usecase.NewUpdateProductReq(42, "Pen", "1", "", image))
		require.ErrorIs(t, err, e.ErrUnsupportedMediaType, mimeType)
	}
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) {
	return f(r)
}
