package domain_test

import (
	"testing"

	"github.com/DRSN-tech/catalog-editor/internal/domain"
	"github.com/DRSN-tech/catalog-editor/pkg/e"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewEditDraftFromProduct(t *testing.T) {
	t.Parallel()

	categoryID := int64(3)
	imageURL := "https://cdn.example.com/pen.png"
	product := domain.NewProduct(42, "Pen", decimal.NewFromInt(15000), &categoryID, &imageURL)

	draft := domain.NewEditDraft(product)

	require.Equal(t, "Pen", draft.Name)
	require.Equal(t, "15000", draft.Price.Text())
	require.False(t, draft.Price.IsRaw())
	require.Equal(t, "3", draft.CategoryID)
	require.False(t, draft.HasPendingImage())
}

func TestNewEditDraftWithoutCategory(t *testing.T) {
	t.Parallel()

	draft := domain.NewEditDraft(domain.NewProduct(7, "Cup", decimal.NewFromInt(10), nil, nil))

	require.Empty(t, draft.CategoryID)
}

func TestPriceInputDecimal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   domain.PriceInput
		want    string
		wantErr error
	}{
		{name: "numeric", input: domain.NumericPrice(decimal.RequireFromString("12.5")), want: "12.5"},
		{name: "raw integer", input: domain.RawPrice("15000"), want: "15000"},
		{name: "raw with spaces", input: domain.RawPrice(" 99.90 "), want: "99.9"},
		{name: "raw negative is not bounded", input: domain.RawPrice("-5"), want: "-5"},
		{name: "empty", input: domain.RawPrice(""), wantErr: e.ErrPriceRequired},
		{name: "blank", input: domain.RawPrice("   "), wantErr: e.ErrPriceRequired},
		{name: "two separators", input: domain.RawPrice("1.2.3"), wantErr: e.ErrInvalidPrice},
		{name: "text", input: domain.RawPrice("abc"), wantErr: e.ErrInvalidPrice},
		{name: "zero value", input: domain.PriceInput{}, wantErr: e.ErrPriceRequired},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.input.Decimal()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got.String())
		})
	}
}

func TestRawPriceKeepsTextUntilCoerced(t *testing.T) {
	t.Parallel()

	price := domain.RawPrice("12.")

	require.True(t, price.IsRaw())
	require.Equal(t, "12.", price.Text())
}

func TestImageExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mimeType string
		wantExt  string
		wantOK   bool
	}{
		{mimeType: domain.MimeJPEG, wantExt: "jpg", wantOK: true},
		{mimeType: domain.MimePNG, wantExt: "png", wantOK: true},
		{mimeType: "image/jpg"},
		{mimeType: "image/webp"},
		{mimeType: ""},
	}

	for _, tt := range tests {
		ext, ok := domain.ImageExtension(tt.mimeType)
		require.Equal(t, tt.wantExt, ext, tt.mimeType)
		require.Equal(t, tt.wantOK, ok, tt.mimeType)
		require.Equal(t, tt.wantOK, domain.IsSupportedImageType(tt.mimeType), tt.mimeType)
	}
}
