package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"namebot/core/bootstrap"
	"namebot/core/logger"
)

// DefaultPlanName is the seeded one-time access plan.
const DefaultPlanName = "Basic"

// PlanRepo reads payment plans.
type PlanRepo struct {
	db *sqlx.DB
}

// NewPlanRepo builds a repo over the shared connection pool.
func NewPlanRepo(db *sqlx.DB) *PlanRepo {
	return &PlanRepo{db: db}
}

// ByName fetches a plan by name; returns (nil, nil) when absent.
func (r *PlanRepo) ByName(ctx context.Context, name string) (*Plan, error) {
	var plan Plan
	err := r.db.GetContext(ctx, &plan, `SELECT * FROM plans WHERE name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("plan by name: %w", err)
	}
	return &plan, nil
}

// ByID fetches a plan by primary key; returns (nil, nil) when absent.
func (r *PlanRepo) ByID(ctx context.Context, id string) (*Plan, error) {
	var plan Plan
	err := r.db.GetContext(ctx, &plan, `SELECT * FROM plans WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("plan by id: %w", err)
	}
	return &plan, nil
}

// PlanSeeder inserts the default one-time plan when missing. Runs as a
// bootstrap seeder after migrations.
func PlanSeeder(db *sqlx.DB) bootstrap.Seeder {
	return bootstrap.SeederFunc(func(ctx context.Context, _ bootstrap.Storage) error {
		res, err := db.ExecContext(ctx, `
			INSERT INTO plans (name, price, selected_name)
			VALUES ($1, 5555, 'onetime')
			ON CONFLICT (name) DO NOTHING`, DefaultPlanName)
		if err != nil {
			return fmt.Errorf("seed default plan: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			logger.SEED.LogAttrs(ctx, slog.LevelInfo, "default plan seeded",
				slog.String("event", "seed.plans"),
				slog.String("plan", DefaultPlanName),
			)
		}
		return nil
	})
}
