package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"namebot/core/logger"
)

// ProfileUpdate carries the fields written by an upsert. Nil/empty fields
// keep their stored value, matching the partial updates issued by the
// wizard and the quiz.
type ProfileUpdate struct {
	ExpectedBirthDate *time.Time
	TargetGender      TargetGender
	FamilyName        string
	ParentNames       []string
	FocusValues       []string
	PersonaType       string
	QuizAnswers       map[string]string
}

// ProfileRepo persists persona profiles, one row per user.
type ProfileRepo struct {
	db *sqlx.DB
}

// NewProfileRepo builds a repo over the shared connection pool.
func NewProfileRepo(db *sqlx.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Get fetches the user's profile; returns (nil, nil) when absent.
func (r *ProfileRepo) Get(ctx context.Context, userID string) (*PersonaProfile, error) {
	var profile PersonaProfile
	err := r.db.GetContext(ctx, &profile,
		`SELECT * FROM user_persona_profiles WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persona profile by user: %w", err)
	}
	return &profile, nil
}

// Upsert writes the profile, creating the row on first finalize and
// merging provided fields on later ones. Repeating an upsert with the
// same update is idempotent, which keeps finalize retries safe.
func (r *ProfileRepo) Upsert(ctx context.Context, userID string, upd ProfileUpdate) error {
	if upd.TargetGender == "" {
		upd.TargetGender = TargetUnknown
	}

	var answers []byte
	if upd.QuizAnswers != nil {
		encoded, err := json.Marshal(upd.QuizAnswers)
		if err != nil {
			return fmt.Errorf("marshal quiz answers: %w", err)
		}
		answers = encoded
	}

	start := time.Now()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_persona_profiles
			(user_id, expected_birth_date, target_gender, family_name,
			 parent_names, focus_values, persona_type, quiz_answers)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, NULLIF($7, ''), $8)
		ON CONFLICT (user_id) DO UPDATE SET
			expected_birth_date = COALESCE(EXCLUDED.expected_birth_date, user_persona_profiles.expected_birth_date),
			target_gender       = EXCLUDED.target_gender,
			family_name         = COALESCE(EXCLUDED.family_name, user_persona_profiles.family_name),
			parent_names        = COALESCE(EXCLUDED.parent_names, user_persona_profiles.parent_names),
			focus_values        = COALESCE(EXCLUDED.focus_values, user_persona_profiles.focus_values),
			persona_type        = COALESCE(EXCLUDED.persona_type, user_persona_profiles.persona_type),
			quiz_answers        = COALESCE(EXCLUDED.quiz_answers, user_persona_profiles.quiz_answers),
			updated_at          = now()`,
		userID,
		upd.ExpectedBirthDate,
		upd.TargetGender,
		upd.FamilyName,
		stringArrayOrNil(upd.ParentNames),
		stringArrayOrNil(upd.FocusValues),
		upd.PersonaType,
		answers,
	)
	if err != nil {
		return fmt.Errorf("upsert persona profile: %w", err)
	}

	logger.SVCPersona.LogAttrs(ctx, slog.LevelInfo, "profile upserted",
		slog.String("event", "profile.upsert"),
		slog.String("persona_type", upd.PersonaType),
		slog.String("target_gender", string(upd.TargetGender)),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return nil
}

func stringArrayOrNil(values []string) interface{} {
	if values == nil {
		return nil
	}
	return pq.StringArray(values)
}
