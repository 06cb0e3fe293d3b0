package postgres

import (
	"context"
	"fmt"
	"time"
)

// CountUsers возвращает общее число зарегистрированных пользователей.
func (s *IdentityStorage) CountUsers(ctx context.Context) (int64, error) {
	const op = "storage/postgres/identity/CountUsers"

	var n int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// CountUsersCreatedSince возвращает число пользователей, созданных не раньше since.
func (s *IdentityStorage) CountUsersCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	const op = "storage/postgres/identity/CountUsersCreatedSince"

	var n int64
	q := `SELECT COUNT(*) FROM users WHERE created_at >= $1`
	if err := s.db.QueryRow(ctx, q, since.UTC()).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}
