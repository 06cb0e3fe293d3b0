package storage

import (
	"context"
	"errors"

	"github.com/skrmarket/listings-service/internal/models"
)

var (
	// ErrImageNotFound — объект (ключ) отсутствует в бакете либо URL
	// не разрешается в ключ нашего бакета.
	ErrImageNotFound = errors.New("image not found")
	// ErrInvalidImage — нарушены ограничения на файл (тип/размер).
	ErrInvalidImage = errors.New("invalid image")
)

// Images — контракт блоб-хранилища изображений объявлений.
// Ключи объектов строятся по конвенции listing-images/<ownerID>/<listingID>/<uuid><ext>.
type Images interface {
	// UploadImage загружает один файл и возвращает публичный URL объекта.
	// Внутри — валидация contentType и размера. Ошибки: ErrInvalidImage, иные — как есть.
	UploadImage(ctx context.Context, ownerID, listingID string, file models.ImageFile) (string, error)

	// RemoveImage удаляет объект по его публичному URL.
	// ErrImageNotFound — URL не наш либо объект уже отсутствует
	// (для вызывающего это эквивалент успешной очистки).
	RemoveImage(ctx context.Context, url string) error
}
