package service

import (
	"context"
	"fmt"
	"time"

	"github.com/skrmarket/listings-service/internal/models"
	"github.com/skrmarket/listings-service/internal/pkg/log"
)

// DashboardStats — сводка для панели администратора.
// Считается по свежему снимку хранилищ на каждый запрос, без кеша.
type DashboardStats struct {
	// PendingListings — очередь модерации, новые первыми.
	PendingListings []models.Listing
	PendingCount    int
	ActiveCount     int
	TotalUsers      int64
	// NewUsersLast24h — регистрации за скользящее окно в 24 часа.
	NewUsersLast24h int64
}

// Dashboard собирает сводку для панели администратора.
//
// Валидация:
//   - вызывающий должен быть администратором.
//
// Поведение/ошибки:
//   - счётчики объявлений считаются по снимку ListAll;
//   - счётчики пользователей читаются из БД identity-провайдера;
//   - ErrPermissionDenied, ErrInternal.
func (s *Service) Dashboard(ctx context.Context, caller models.Identity) (*DashboardStats, error) {
	const op = "service/dashboard/Dashboard"

	lg := log.From(ctx).With("op", op, "caller_id", caller.ID)

	if !caller.IsAdmin {
		lg.Warn("permission denied: admin only")
		return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	listings, err := s.listings.ListAll(ctx)
	if err != nil {
		lg.Error("storage error on ListAll", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	stats := DashboardStats{}
	for _, l := range listings {
		switch l.Status {
		case models.StatusPendingModeration:
			stats.PendingCount++
			stats.PendingListings = append(stats.PendingListings, l)
		case models.StatusActive:
			stats.ActiveCount++
		}
	}

	stats.TotalUsers, err = s.identity.CountUsers(ctx)
	if err != nil {
		lg.Error("identity error on CountUsers", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	since := time.Now().UTC().Add(-24 * time.Hour)
	stats.NewUsersLast24h, err = s.identity.CountUsersCreatedSince(ctx, since)
	if err != nil {
		lg.Error("identity error on CountUsersCreatedSince", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return &stats, nil
}
