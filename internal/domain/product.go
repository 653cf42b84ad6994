package domain

import "github.com/shopspring/decimal"

// Product описывает снимок товара, который передаёт вызывающая сторона (список товаров).
// Снимок неизменяем: редактирование всегда идёт через EditDraft.
type Product struct {
	ID         int64
	Name       string
	Price      decimal.Decimal
	CategoryID *int64  // nil, если категория не назначена
	ImageURL   *string // ссылка на сохранённое изображение
}

func NewProduct(id int64, name string, price decimal.Decimal, categoryID *int64, imageURL *string) *Product {
	return &Product{
		ID:         id,
		Name:       name,
		Price:      price,
		CategoryID: categoryID,
		ImageURL:   imageURL,
	}
}
