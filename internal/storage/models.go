// Package storage provides sqlx repositories over the Postgres schema:
// users, payment plans, favorite names and persona profiles.
package storage

import (
	"time"

	"github.com/lib/pq"
)

// User mirrors the users table.
type User struct {
	ID              string     `db:"id"`
	TelegramID      int64      `db:"telegram_id"`
	Username        *string    `db:"username"`
	FirstName       *string    `db:"first_name"`
	LastName        *string    `db:"last_name"`
	IsActive        bool       `db:"is_active"`
	SubscriptionEnd *time.Time `db:"subscription_end"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// HasActiveAccess reports whether the one-time purchase is in effect.
func (u *User) HasActiveAccess(now time.Time) bool {
	if u == nil {
		return false
	}
	return u.IsActive && u.SubscriptionEnd != nil && u.SubscriptionEnd.After(now)
}

// Plan mirrors the plans table.
type Plan struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Price        float64   `db:"price"`
	SelectedName string    `db:"selected_name"`
	CreatedAt    time.Time `db:"created_at"`
}

// FavoriteMeta is the jsonb snapshot stored with a favorite so the list
// renders even if the catalog entry changes later.
type FavoriteMeta struct {
	Origin      string   `json:"origin,omitempty"`
	Meaning     string   `json:"meaning,omitempty"`
	FocusValues []string `json:"focusValues,omitempty"`
	TrendIndex  int      `json:"trendIndex,omitempty"`
}

// FavoriteName mirrors the user_favorite_names table.
type FavoriteName struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	Gender    *string   `db:"gender"`
	Slug      *string   `db:"slug"`
	Metadata  []byte    `db:"metadata"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// FavoriteItem is the list projection handed to the renderer.
type FavoriteItem struct {
	Name    string
	Gender  string
	Slug    string
	Origin  string
	Meaning string
}

// FavoritePage is one page of a user's favorites.
type FavoritePage struct {
	Items      []FavoriteItem
	Page       int
	TotalPages int
	TotalItems int
}

// TargetGender is the persisted gender preference.
type TargetGender string

const (
	TargetBoy     TargetGender = "boy"
	TargetGirl    TargetGender = "girl"
	TargetUnknown TargetGender = "unknown"
)

// PersonaProfile mirrors the user_persona_profiles table. One row per user.
type PersonaProfile struct {
	ID                string         `db:"id"`
	UserID            string         `db:"user_id"`
	ExpectedBirthDate *time.Time     `db:"expected_birth_date"`
	TargetGender      TargetGender   `db:"target_gender"`
	FamilyName        *string        `db:"family_name"`
	ParentNames       pq.StringArray `db:"parent_names"`
	FocusValues       pq.StringArray `db:"focus_values"`
	PersonaType       *string        `db:"persona_type"`
	QuizAnswers       []byte         `db:"quiz_answers"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}
