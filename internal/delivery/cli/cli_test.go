package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/catalog-editor/internal/usecase"
	"github.com/DRSN-tech/catalog-editor/pkg/e"
)

const penJSON = `{"id":42,"name":"Pen","price":15000,"category_id":3}`

type catalogStub struct {
	categoriesStatus int
	updateStatus     int
	updateBody       string
	updates          atomic.Int32
	check            func(t *testing.T, r *http.Request)
}

func (s *catalogStub) server(t *testing.T) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/categories":
			if s.categoriesStatus != 0 {
				w.WriteHeader(s.categoriesStatus)
				return
			}
			_, _ = io.WriteString(w, `[{"id":3,"name":"Stationery"},{"id":1,"name":"Books"}]`)
		case r.Method == http.MethodPut && r.URL.Path == "/api/products/42":
			s.updates.Add(1)
			if s.check != nil {
				s.check(t, r)
			}
			if s.updateStatus != 0 {
				w.WriteHeader(s.updateStatus)
			}
			_, _ = io.WriteString(w, s.updateBody)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(ts.Close)

	return ts
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestCategoriesCommand(t *testing.T) {
	t.Parallel()

	ts := (&catalogStub{}).server(t)

	out, _, err := run(t, "", "categories", "--api-url", ts.URL)
	require.NoError(t, err)
	require.Contains(t, out, "Stationery")
	require.Less(t, strings.Index(out, "Stationery"), strings.Index(out, "Books"))
}

func TestEditUnchangedProduct(t *testing.T) {
	t.Parallel()

	stub := &catalogStub{
		updateBody: `{"message":"Product updated"}`,
		check: func(t *testing.T, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "Pen", r.FormValue("name"))
			assert.Equal(t, "15000", r.FormValue("price"))
			assert.Equal(t, "3", r.FormValue("category_id"))
			assert.Empty(t, r.MultipartForm.File["image"])
		},
	}
	ts := stub.server(t)

	out, errOut, err := run(t, "", "edit", "--api-url", ts.URL, "--product", penJSON, "--yes")
	require.NoError(t, err)
	require.Contains(t, out, "Stationery (3)")
	require.Contains(t, out, "Product updated")
	require.NotContains(t, out, "Press Enter")
	require.Contains(t, errOut, "product 42 saved")
	require.EqualValues(t, 1, stub.updates.Load())
}

func TestEditWaitsForEnter(t *testing.T) {
	t.Parallel()

	ts := (&catalogStub{updateBody: `{"message":"Product updated"}`}).server(t)

	out, _, err := run(t, "\n", "edit", "--api-url", ts.URL, "--product", penJSON, "--price", "12000")
	require.NoError(t, err)
	require.Contains(t, out, "price:    12000")
	require.Contains(t, out, "Product updated\nPress Enter to continue...")
}

func TestEditWithImage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	imagePath := filepath.Join(dir, "pen.png")
	require.NoError(t, os.WriteFile(imagePath, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o600))

	stub := &catalogStub{
		updateBody: `{"message":"ok"}`,
		check: func(t *testing.T, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			files := r.MultipartForm.File["image"]
			require.Len(t, files, 1)
			assert.Equal(t, "pen.png", files[0].Filename)
			assert.Equal(t, "image/png", files[0].Header.Get("Content-Type"))
		},
	}
	ts := stub.server(t)

	out, _, err := run(t, "", "edit", "--api-url", ts.URL, "--product", penJSON, "--image", imagePath, "--yes")
	require.NoError(t, err)
	require.Contains(t, out, "pen.png (image/png")
}

func TestEditCategoriesUnavailable(t *testing.T) {
	t.Parallel()

	ts := (&catalogStub{categoriesStatus: http.StatusInternalServerError, updateBody: `{"message":"ok"}`}).server(t)

	_, errOut, err := run(t, "", "edit", "--api-url", ts.URL, "--product", penJSON, "--category", "", "--yes")
	require.NoError(t, err)
	require.Contains(t, errOut, usecase.CategoriesUnavailableMessage)
}

func TestEditRejected(t *testing.T) {
	t.Parallel()

	ts := (&catalogStub{updateStatus: http.StatusBadRequest, updateBody: `{"error":"Price must be positive"}`}).server(t)

	out, errOut, err := run(t, "", "edit", "--api-url", ts.URL, "--product", penJSON, "--price", "-1", "--yes")
	require.ErrorIs(t, err, e.ErrUpdateFailed)
	require.Contains(t, out, "Price must be positive")
	require.NotContains(t, errOut, "saved")
}

func TestEditPreconditionSkipsRequest(t *testing.T) {
	t.Parallel()

	stub := &catalogStub{}
	ts := stub.server(t)

	_, _, err := run(t, "", "edit", "--api-url", ts.URL, "--product", penJSON, "--price", "abc", "--yes")
	require.ErrorIs(t, err, e.ErrInvalidPrice)
	require.Zero(t, stub.updates.Load())
}

func TestLoadProduct(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pen.json")
	require.NoError(t, os.WriteFile(path, []byte(penJSON), 0o600))

	product, err := loadProduct("@" + path)
	require.NoError(t, err)
	require.Equal(t, int64(42), product.ID)
	require.Equal(t, "15000", product.Price.String())

	_, err = loadProduct(`{"id":0}`)
	require.ErrorIs(t, err, e.ErrInvalidProductID)

	_, err = loadProduct(`not json`)
	require.ErrorIs(t, err, e.ErrStatusBadRequest)
}
