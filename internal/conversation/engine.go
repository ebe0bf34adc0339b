package conversation

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"namebot/core/logger"
	"namebot/internal/catalog"
	"namebot/internal/persona"
	"namebot/internal/session"
	"namebot/internal/storage"
)

// Identity carries the Telegram-side identity of the acting user.
type Identity struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
}

// UserDirectory is the persistence seam for users.
type UserDirectory interface {
	Ensure(ctx context.Context, telegramID int64, username, firstName, lastName string) (*storage.User, error)
	ByTelegramID(ctx context.Context, telegramID int64) (*storage.User, error)
	Count(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
}

// FavoriteStore is the persistence seam for the favorites list.
type FavoriteStore interface {
	Toggle(ctx context.Context, userID string, s catalog.Suggestion) (bool, error)
	List(ctx context.Context, userID string, page int) (storage.FavoritePage, error)
}

// ProfileStore is the persistence seam for persona profiles.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*storage.PersonaProfile, error)
	Upsert(ctx context.Context, userID string, upd storage.ProfileUpdate) error
}

// PlanStore is the persistence seam for payment plans.
type PlanStore interface {
	ByName(ctx context.Context, name string) (*storage.Plan, error)
	ByID(ctx context.Context, id string) (*storage.Plan, error)
}

// PaymentLinks builds provider checkout URLs.
type PaymentLinks interface {
	ClickLink(planID, userID string, amount float64) string
	PaymeLink(planID, userID string, amount float64) (string, error)
	UzcardLink(planID, userID, selectedService string) string
}

// Deps wires the engine's collaborators. All fields except the clock and
// randomness source are required.
type Deps struct {
	Sessions  *session.Store
	Catalog   *catalog.Catalog
	Personas  *persona.Engine
	Users     UserDirectory
	Favorites FavoriteStore
	Profiles  ProfileStore
	Plans     PlanStore
	Links     PaymentLinks

	// SupportChannel is shown in the feedback alert.
	SupportChannel string

	Now  func() time.Time
	Rand func(n int) int
}

// Engine is the conversation core. Safe for concurrent use; per-user
// state mutations are serialized by the session store.
type Engine struct {
	sessions  *session.Store
	catalog   *catalog.Catalog
	personas  *persona.Engine
	users     UserDirectory
	favorites FavoriteStore
	profiles  ProfileStore
	plans     PlanStore
	links     PaymentLinks

	supportChannel string
	now            func() time.Time
	rand           func(n int) int
}

// NewEngine builds the engine, filling optional dependencies with defaults.
func NewEngine(d Deps) *Engine {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	randFn := d.Rand
	if randFn == nil {
		randFn = rand.Intn
	}
	support := d.SupportChannel
	if support == "" {
		support = "@ism_support"
	}
	return &Engine{
		sessions:       d.Sessions,
		catalog:        d.Catalog,
		personas:       d.Personas,
		users:          d.Users,
		favorites:      d.Favorites,
		profiles:       d.Profiles,
		plans:          d.Plans,
		links:          d.Links,
		supportChannel: support,
		now:            now,
		rand:           randFn,
	}
}

// HasActiveFlow reports whether the user is inside a multi-step flow.
func (e *Engine) HasActiveFlow(userID int64) bool {
	return e.sessions.HasActiveFlow(userID)
}

// resolveUser fetches the stored user for an update. When the user has
// never started the bot a short notice is acked and nil is returned.
func (e *Engine) resolveUser(ctx context.Context, id Identity, v View) (*storage.User, error) {
	user, err := e.users.ByTelegramID(ctx, id.TelegramID)
	if err != nil {
		logger.Error(ctx, "engine", "user.lookup.fail", slog.String("err", err.Error()))
		return nil, v.Ack(ctx, textGenericError)
	}
	if user == nil {
		return nil, v.Ack(ctx, textStartFirst)
	}
	return user, nil
}

// ensureUser records the user on first contact. Failures are logged and
// swallowed so a storage hiccup never blocks the conversation.
func (e *Engine) ensureUser(ctx context.Context, id Identity) *storage.User {
	user, err := e.users.Ensure(ctx, id.TelegramID, id.Username, id.FirstName, id.LastName)
	if err != nil {
		logger.Error(ctx, "engine", "user.ensure.fail",
			slog.Int64("telegram_id", id.TelegramID),
			slog.String("err", err.Error()),
		)
		return nil
	}
	return user
}
