package storage

import (
	"context"
	"time"
)

// IdentityCounts — read-only срез статистики identity-провайдера для
// панели администратора. Сервис никогда не пишет в это хранилище.
type IdentityCounts interface {
	// CountUsers — общее число зарегистрированных пользователей.
	CountUsers(ctx context.Context) (int64, error)

	// CountUsersCreatedSince — число пользователей, созданных не раньше since.
	CountUsersCreatedSince(ctx context.Context, since time.Time) (int64, error)
}
