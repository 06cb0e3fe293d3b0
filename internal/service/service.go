// service содержит бизнес-логику listings-сервиса: жизненный цикл объявлений
// с премодерацией, работу с изображениями, фильтрацию ленты и сводку для
// панели администратора.
package service

import (
	"errors"

	"github.com/skrmarket/listings-service/internal/config"
	"github.com/skrmarket/listings-service/internal/storage"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument — неверные входные параметры запроса к сервису.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPermissionDenied — операция запрещена для данного пользователя.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrConflict — конкурентное изменение (версия или статус ушли вперёд).
	ErrConflict = errors.New("conflict")
	// ErrIllegalTransition — запрошенный переход статуса не входит в таблицу переходов.
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrInternal — внутренняя ошибка (сторадж/БД/контекст/и т.д.).
	ErrInternal = errors.New("internal")
)

// Service — описывает бизнес-логику listings-service.
type Service struct {
	listings storage.Listings
	cleanup  storage.CleanupQueue
	images   storage.Images
	identity storage.IdentityCounts
	cfg      config.Config
}

// New создает новый экземпляр Service.
func New(listings storage.Listings, cleanup storage.CleanupQueue, images storage.Images, identity storage.IdentityCounts, cfg config.Config) *Service {
	return &Service{
		listings: listings,
		cleanup:  cleanup,
		images:   images,
		identity: identity,
		cfg:      cfg,
	}
}
