// Package storage описывает контракты хранилищ listings-сервиса:
// документы объявлений и журнал очистки (MongoDB), блобы изображений (MinIO/S3),
// read-only счётчики identity-провайдера (PostgreSQL).
package storage

import (
	"context"
	"errors"

	"github.com/skrmarket/listings-service/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict — версия документа не совпала с ожидаемой (конкурентная правка).
	ErrVersionConflict = errors.New("version conflict")
	// ErrStatusConflict — статус документа изменился между чтением и записью.
	ErrStatusConflict = errors.New("status conflict")
)

// Listings описывает операции над документами объявлений.
type Listings interface {
	// NewListingID выдаёт новый идентификатор объявления.
	// Идентификаторы порождает хранилище; сервис запрашивает id заранее,
	// чтобы разложить изображения по пути owner/listing до вставки документа.
	NewListingID() string

	// CreateListing вставляет документ. Входной Listing должен содержать ID
	// (из NewListingID) и все содержательные поля; CreatedAt/UpdatedAt/Version
	// проставляет хранилище. Возвращает записанную копию.
	CreateListing(ctx context.Context, listing models.Listing) (*models.Listing, error)

	// ListingByID возвращает объявление по идентификатору.
	// Если запись не найдена (включая неверный формат id) — ErrNotFound.
	ListingByID(ctx context.Context, id string) (*models.Listing, error)

	// UpdateListing перезаписывает содержательные поля документа при условии
	// совпадения версии; версия инкрементируется атомарно.
	// Ошибки: ErrNotFound, ErrVersionConflict.
	UpdateListing(ctx context.Context, listing models.Listing, expectedVersion int64) (*models.Listing, error)

	// UpdateStatus — compare-and-set статуса: переводит документ из from в to.
	// Ошибки: ErrNotFound (нет документа), ErrStatusConflict (статус уже не from).
	UpdateStatus(ctx context.Context, id string, from, to models.ListingStatus) (*models.Listing, error)

	// DeleteListing удаляет документ навсегда (мягкого удаления нет).
	// Если запись не найдена — ErrNotFound.
	DeleteListing(ctx context.Context, id string) error

	// ListAll возвращает полный срез объявлений, created_at DESC.
	ListAll(ctx context.Context) ([]models.Listing, error)

	// ListBySeller возвращает объявления продавца, created_at DESC.
	ListBySeller(ctx context.Context, sellerID string) ([]models.Listing, error)
}

// CleanupQueue — долговечный журнал осиротевших изображений.
// Запись попадает сюда, когда удаление блоба не удалось; джанитор
// периодически повторяет попытки и снимает запись после успеха.
type CleanupQueue interface {
	// EnqueueOrphans добавляет URL-ы в журнал (идемпотентно по URL).
	EnqueueOrphans(ctx context.Context, urls []string, cause string) error

	// OrphanBatch возвращает до limit записей журнала, старые первыми.
	OrphanBatch(ctx context.Context, limit int64) ([]models.ImageCleanupEntry, error)

	// ResolveOrphan снимает запись после успешного удаления блоба.
	ResolveOrphan(ctx context.Context, id string) error

	// MarkOrphanAttempt фиксирует неудачную попытку удаления.
	MarkOrphanAttempt(ctx context.Context, id string, lastErr string) error
}
