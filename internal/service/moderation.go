package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/skrmarket/listings-service/internal/models"
	"github.com/skrmarket/listings-service/internal/pkg/log"
	"github.com/skrmarket/listings-service/internal/storage"
)

// legalTransitions — таблица допустимых переходов статуса.
// Возврат в pending_moderation идёт только через правку владельцем
// (UpdateListing) и в таблицу явных переходов не входит.
var legalTransitions = map[models.ListingStatus][]models.ListingStatus{
	models.StatusPendingModeration: {models.StatusActive, models.StatusRejected},
	models.StatusActive:            {models.StatusSold},
}

// canTransition сообщает, допустим ли явный переход from -> to.
func canTransition(from, to models.ListingStatus) bool {
	for _, t := range legalTransitions[from] {
		if t == to {
			return true
		}
	}

	return false
}

// ApproveListing — одобрение объявления модератором.
//
// Валидация:
//   - вызывающий должен быть администратором;
//   - объявление должно находиться в pending_moderation.
//
// Поведение/ошибки:
//   - ErrPermissionDenied, ErrNotFound;
//   - ErrIllegalTransition — текущий статус не pending_moderation;
//   - ErrConflict — статус изменился между чтением и записью;
//   - ErrInternal.
func (s *Service) ApproveListing(ctx context.Context, caller models.Identity, id string) (*models.Listing, error) {
	const op = "service/moderation/ApproveListing"

	return s.transition(ctx, op, caller, id, models.StatusActive, true)
}

// RejectListing — отклонение объявления модератором.
// Правила и ошибки — как у ApproveListing, целевой статус rejected.
func (s *Service) RejectListing(ctx context.Context, caller models.Identity, id string) (*models.Listing, error) {
	const op = "service/moderation/RejectListing"

	return s.transition(ctx, op, caller, id, models.StatusRejected, true)
}

// MarkSold — пометка проданного товара.
// Доступна владельцу объявления и администратору; допустима только из active.
// Статус sold терминален.
func (s *Service) MarkSold(ctx context.Context, caller models.Identity, id string) (*models.Listing, error) {
	const op = "service/moderation/MarkSold"

	return s.transition(ctx, op, caller, id, models.StatusSold, false)
}

// SetStatus — явный административный перевод статуса.
// Переход проверяется по таблице допустимых переходов.
func (s *Service) SetStatus(ctx context.Context, caller models.Identity, id string, to models.ListingStatus) (*models.Listing, error) {
	const op = "service/moderation/SetStatus"

	switch to {
	case models.StatusActive, models.StatusRejected, models.StatusSold:
	default:
		log.From(ctx).Warn("invalid argument: unknown target status", "op", op, "status", string(to))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	return s.transition(ctx, op, caller, id, to, true)
}

// transition — общий каркас явного перевода статуса.
// adminOnly=false разрешает операцию также владельцу объявления.
func (s *Service) transition(ctx context.Context, op string, caller models.Identity, id string, to models.ListingStatus, adminOnly bool) (*models.Listing, error) {
	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "listing_id", id, "caller_id", caller.ID, "to", string(to))

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	current, err := s.listings.ListingByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("listing not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on ListingByID", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if adminOnly {
		if !caller.IsAdmin {
			lg.Warn("permission denied: admin only")
			return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
		}
	} else if current.SellerID != caller.ID && !caller.IsAdmin {
		lg.Warn("permission denied", "owner_id", current.SellerID)
		return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	if !canTransition(current.Status, to) {
		lg.Warn("illegal transition", "from", string(current.Status))
		return nil, fmt.Errorf("%s: %s -> %s: %w", op, current.Status, to, ErrIllegalTransition)
	}

	result, err := s.listings.UpdateStatus(ctx, id, current.Status, to)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("listing disappeared during transition")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		case errors.Is(err, storage.ErrStatusConflict):
			lg.Warn("status changed concurrently")
			return nil, fmt.Errorf("%s: %w", op, ErrConflict)
		default:
			lg.Error("storage error on UpdateStatus", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}
