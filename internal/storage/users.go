package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"namebot/core/logger"
)

// UserRepo persists Telegram users.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo builds a repo over the shared connection pool.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ByTelegramID fetches a user by Telegram ID; returns (nil, nil) when absent.
func (r *UserRepo) ByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	var user User
	err := r.db.GetContext(ctx, &user,
		`SELECT * FROM users WHERE telegram_id = $1`, telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user by telegram id: %w", err)
	}
	return &user, nil
}

// Ensure creates the user on first contact and returns the stored row.
// Profile fields are filled only at creation; later renames are ignored.
func (r *UserRepo) Ensure(ctx context.Context, telegramID int64, username, firstName, lastName string) (*User, error) {
	existing, err := r.ByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	start := time.Now()
	var user User
	err = r.db.GetContext(ctx, &user, `
		INSERT INTO users (telegram_id, username, first_name, last_name)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''))
		ON CONFLICT (telegram_id) DO UPDATE SET updated_at = now()
		RETURNING *`,
		telegramID, username, firstName, lastName)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	logger.SVCUsers.LogAttrs(ctx, slog.LevelInfo, "user created",
		slog.String("event", "user.create"),
		slog.Int64("telegram_id", telegramID),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return &user, nil
}

// Count returns the total number of users.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// CountActive returns the number of users flagged active.
func (r *UserRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM users WHERE is_active`); err != nil {
		return 0, fmt.Errorf("count active users: %w", err)
	}
	return n, nil
}
