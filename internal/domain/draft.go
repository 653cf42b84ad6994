package domain

import (
	"strconv"
	"strings"

	"github.com/DRSN-tech/catalog-editor/pkg/e"
	"github.com/shopspring/decimal"
)

type priceKind uint8

const (
	priceRaw priceKind = iota
	priceNumeric
)

// PriceInput хранит цену черновика либо как уже проверенное число, либо как сырой текст из поля ввода.
// Преобразование сырого текста в число откладывается до отправки формы.
type PriceInput struct {
	kind    priceKind
	raw     string
	numeric decimal.Decimal
}

// NumericPrice возвращает цену, заданную числом (например, из исходного товара).
func NumericPrice(d decimal.Decimal) PriceInput {
	return PriceInput{kind: priceNumeric, numeric: d}
}

// RawPrice возвращает цену в виде введённого текста.
func RawPrice(s string) PriceInput {
	return PriceInput{kind: priceRaw, raw: s}
}

func (p PriceInput) IsRaw() bool {
	return p.kind == priceRaw
}

// Text возвращает цену в том виде, в котором её нужно показать в поле ввода.
func (p PriceInput) Text() string {
	if p.kind == priceNumeric {
		return p.numeric.String()
	}

	return p.raw
}

// Decimal приводит цену к числу.
// Возвращает e.ErrPriceRequired для пустого ввода и e.ErrInvalidPrice для нечислового.
func (p PriceInput) Decimal() (decimal.Decimal, error) {
	if p.kind == priceNumeric {
		return p.numeric, nil
	}

	s := strings.TrimSpace(p.raw)
	if s == "" {
		return decimal.Zero, e.ErrPriceRequired
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, e.ErrInvalidPrice
	}

	return d, nil
}

// EditDraft — изменяемая копия полей товара на время одного редактирования.
type EditDraft struct {
	Name         string
	Price        PriceInput
	CategoryID   string // пустая строка означает «без категории»
	PendingImage *PendingImage
}

// NewEditDraft создаёт черновик из снимка товара.
func NewEditDraft(product *Product) EditDraft {
	categoryID := ""
	if product.CategoryID != nil {
		categoryID = strconv.FormatInt(*product.CategoryID, 10)
	}

	return EditDraft{
		Name:       product.Name,
		Price:      NumericPrice(product.Price),
		CategoryID: categoryID,
	}
}

func (d EditDraft) HasPendingImage() bool {
	return d.PendingImage != nil
}
