package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"namebot/core/logger"
	"namebot/core/telegram/format"
	"namebot/internal/catalog"
)

// FavoritesPageSize is the fixed page length of the favorites list.
const FavoritesPageSize = 6

// FavoriteRepo persists the per-user favorite name list.
type FavoriteRepo struct {
	db *sqlx.DB
}

// NewFavoriteRepo builds a repo over the shared connection pool.
func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepo {
	return &FavoriteRepo{db: db}
}

// Toggle adds the suggestion to the user's favorites, or removes it when
// already present. Reports true when the name was added.
func (r *FavoriteRepo) Toggle(ctx context.Context, userID string, s catalog.Suggestion) (bool, error) {
	var existingID string
	err := r.db.GetContext(ctx, &existingID,
		`SELECT id FROM user_favorite_names WHERE user_id = $1 AND slug = $2`,
		userID, s.Slug)
	switch {
	case err == nil:
		if _, err := r.db.ExecContext(ctx,
			`DELETE FROM user_favorite_names WHERE id = $1`, existingID); err != nil {
			return false, fmt.Errorf("remove favorite: %w", err)
		}
		logger.SVCFavorites.LogAttrs(ctx, slog.LevelInfo, "favorite removed",
			slog.String("event", "favorite.remove"),
			slog.String("slug", s.Slug),
		)
		return false, nil
	case errors.Is(err, sql.ErrNoRows):
		// fall through to insert
	default:
		return false, fmt.Errorf("lookup favorite: %w", err)
	}

	meta, err := json.Marshal(FavoriteMeta{
		Origin:      s.Origin,
		Meaning:     s.Meaning,
		FocusValues: s.FocusValues,
		TrendIndex:  s.TrendIndex,
	})
	if err != nil {
		return false, fmt.Errorf("marshal favorite metadata: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO user_favorite_names (user_id, name, gender, slug, metadata)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, name) DO NOTHING`,
		userID, s.Name, string(s.Gender), s.Slug, meta); err != nil {
		return false, fmt.Errorf("add favorite: %w", err)
	}

	logger.SVCFavorites.LogAttrs(ctx, slog.LevelInfo, "favorite added",
		slog.String("event", "favorite.add"),
		slog.String("slug", s.Slug),
	)
	return true, nil
}

// List returns one page of favorites, newest first. Pages are 1-based.
func (r *FavoriteRepo) List(ctx context.Context, userID string, page int) (FavoritePage, error) {
	if page < 1 {
		page = 1
	}

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM user_favorite_names WHERE user_id = $1`, userID); err != nil {
		return FavoritePage{}, fmt.Errorf("count favorites: %w", err)
	}

	totalPages := (total + FavoritesPageSize - 1) / FavoritesPageSize
	if totalPages < 1 {
		totalPages = 1
	}

	var rows []FavoriteName
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT * FROM user_favorite_names
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, FavoritesPageSize, (page-1)*FavoritesPageSize); err != nil {
		return FavoritePage{}, fmt.Errorf("list favorites: %w", err)
	}

	items := make([]FavoriteItem, 0, len(rows))
	for _, row := range rows {
		var meta FavoriteMeta
		if len(row.Metadata) > 0 {
			_ = json.Unmarshal(row.Metadata, &meta)
		}
		items = append(items, FavoriteItem{
			Name:    row.Name,
			Gender:  format.DerefString(row.Gender, string(catalog.GenderUnisex)),
			Slug:    format.DerefString(row.Slug, ""),
			Origin:  meta.Origin,
			Meaning: meta.Meaning,
		})
	}

	return FavoritePage{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		TotalItems: total,
	}, nil
}
