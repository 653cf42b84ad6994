package domain

// PendingImage описывает новое изображение, выбранное оператором, но ещё не отправленное.
type PendingImage struct {
	Name     string // оригинальное имя файла
	MimeType string // MimeJPEG или MimePNG
	Data     []byte
	Size     int64
}

func NewPendingImage(name string, mimeType string, data []byte) *PendingImage {
	return &PendingImage{
		Name:     name,
		MimeType: mimeType,
		Data:     data,
		Size:     int64(len(data)),
	}
}

const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
)

// ImageExtension возвращает расширение файла для типов, которые принимает каталог.
// Для остальных типов, включая нестандартный image/jpg, возвращает false.
func ImageExtension(mimeType string) (string, bool) {
	switch mimeType {
	case MimeJPEG:
		return "jpg", true
	case MimePNG:
		return "png", true
	default:
		return "", false
	}
}

func IsSupportedImageType(mimeType string) bool {
	_, ok := ImageExtension(mimeType)
	return ok
}
