package usecase

import (
	"sync"

	"github.com/DRSN-tech/catalog-editor/internal/domain"
	"github.com/DRSN-tech/catalog-editor/pkg/e"
)

// EditFormState хранит черновик товара, список категорий и текущую ошибку одного редактирования.
// Сеттеры не выполняют проверок, кроме приведения типов: цена хранится как введённый текст.
type EditFormState struct {
	mu         sync.RWMutex
	product    *domain.Product
	draft      domain.EditDraft
	categories []domain.Category
	errMsg     string
	loading    bool
	closed     bool
}

func NewEditFormState(product *domain.Product) *EditFormState {
	return &EditFormState{
		product: product,
		draft:   domain.NewEditDraft(product),
		loading: true,
	}
}

func (s *EditFormState) SetName(name string) error {
	return s.update(func(d *domain.EditDraft) {
		d.Name = name
	})
}

// SetPrice сохраняет цену в том виде, в котором её вернуло поле ввода.
func (s *EditFormState) SetPrice(raw string) error {
	return s.update(func(d *domain.EditDraft) {
		d.Price = domain.RawPrice(raw)
	})
}

// SetCategory сохраняет выбранную категорию; пустая строка снимает выбор.
func (s *EditFormState) SetCategory(categoryID string) error {
	return s.update(func(d *domain.EditDraft) {
		d.CategoryID = categoryID
	})
}

// SetPendingImage запоминает новое изображение.
// Допускаются только image/jpeg и image/png, иначе черновик не меняется.
func (s *EditFormState) SetPendingImage(image *domain.PendingImage) error {
	if image == nil {
		return e.ErrNoImages
	}

	if !domain.IsSupportedImageType(image.MimeType) {
		return e.Wrap(image.MimeType, e.ErrUnsupportedMediaType)
	}

	return s.update(func(d *domain.EditDraft) {
		d.PendingImage = image
	})
}

// ClearPendingImage отменяет выбор нового изображения.
func (s *EditFormState) ClearPendingImage() error {
	return s.update(func(d *domain.EditDraft) {
		d.PendingImage = nil
	})
}

// Draft возвращает копию текущего черновика.
func (s *EditFormState) Draft() domain.EditDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.draft
}

// Categories возвращает категории в порядке ответа каталога.
func (s *EditFormState) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)

	return out
}

// Error возвращает текст sticky-баннера, если он установлен.
func (s *EditFormState) Error() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.errMsg, s.errMsg != ""
}

func (s *EditFormState) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.closed
}

// Snapshot собирает EditView для отображения формы.
func (s *EditFormState) Snapshot() *EditView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]domain.Category, len(s.categories))
	copy(categories, s.categories)

	view := &EditView{
		ProductID:    s.product.ID,
		Name:         s.draft.Name,
		Price:        s.draft.Price.Text(),
		CategoryID:   s.draft.CategoryID,
		Categories:   categories,
		PendingImage: NewPendingImageInfo(s.draft.PendingImage),
		Error:        s.errMsg,
		Loading:      s.loading,
		Closed:       s.closed,
	}

	// Новое изображение заменяет сохранённое при отображении
	if s.draft.PendingImage == nil && s.product.ImageURL != nil {
		view.ImageURL = *s.product.ImageURL
	}

	return view
}

func (s *EditFormState) update(fn func(d *domain.EditDraft)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return e.ErrWorkflowClosed
	}

	fn(&s.draft)

	return nil
}

func (s *EditFormState) setCategories(categories []domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = categories
	s.loading = false
}

func (s *EditFormState) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errMsg = msg
	s.loading = false
}

func (s *EditFormState) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
}
