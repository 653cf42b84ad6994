package e

import "fmt"

var (
	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrMissingEnvVariable   = fmt.Errorf("required environment variable is missing")

	// Ошибки жизненного цикла редактирования
	ErrWorkflowClosed  = fmt.Errorf("edit workflow is closed")
	ErrSubmitInFlight  = fmt.Errorf("submit already in progress")
	ErrSessionNotFound = fmt.Errorf("edit session not found")

	// Ошибки удалённого каталога
	ErrUnexpectedResponse = fmt.Errorf("unexpected catalog api response")
	ErrUpdateFailed       = fmt.Errorf("product update failed")

	// Ошибки очереди событий
	ErrOutboxFull    = fmt.Errorf("event outbox is full")
	ErrOutboxStopped = fmt.Errorf("event outbox is stopped")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrProductNameRequired  = fmt.Errorf("product name is required")
	ErrPriceRequired        = fmt.Errorf("price is required")
	ErrInvalidPrice         = fmt.Errorf("price must be a number")
	ErrInvalidProductID     = fmt.Errorf("invalid product id")
	ErrNoImages             = fmt.Errorf("no image provided")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
