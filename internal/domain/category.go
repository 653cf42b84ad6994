package domain

// Category описывает категорию товара (справочные данные каталога)
type Category struct {
	ID   int64
	Name string
}

func NewCategory(id int64, name string) *Category {
	return &Category{
		ID:   id,
		Name: name,
	}
}
