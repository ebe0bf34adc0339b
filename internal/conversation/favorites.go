package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"namebot/core/logger"
	"namebot/core/telegram/format"
	"namebot/internal/catalog"
	"namebot/internal/session"
)

func (e *Engine) handleFavoriteCallbacks(ctx context.Context, id Identity, token Token, v View) error {
	switch token.Arg(0, "") {
	case "list":
		page, err := strconv.Atoi(token.Arg(1, "1"))
		if err != nil || page < 1 {
			page = 1
		}
		return e.showFavorites(ctx, id, page, v)
	case "toggle":
		return e.toggleFavorite(ctx, id, token.Arg(1, ""), v)
	default:
		return v.Ack(ctx, "")
	}
}

func (e *Engine) showFavorites(ctx context.Context, id Identity, page int, v View) error {
	user, err := e.resolveUser(ctx, id, v)
	if user == nil {
		return err
	}

	list, err := e.favorites.List(ctx, user.ID, page)
	if err != nil {
		logger.Error(ctx, "engine", "favorites.list.fail", slog.String("err", err.Error()))
		return v.Ack(ctx, textGenericError)
	}

	if list.TotalItems == 0 {
		kb := Keyboard{}.
			Row(Btn("🌟 Ism qidirish", LegacyNameMeaning)).
			Row(Btn("🏠 Menyu", LegacyMainMenu))
		if err := v.Render(ctx,
			"⭐ Sevimli ismlar hali yo'q. Istalgan ism ustida ⭐ tugmasini bosing.", kb); err != nil {
			return err
		}
		return v.Ack(ctx, "")
	}

	var lines []string
	for i, item := range list.Items {
		emoji := genderEmoji(catalog.Gender(item.Gender))
		lines = append(lines, fmt.Sprintf("%d. %s %s — %s",
			(page-1)*len(list.Items)+i+1, emoji, format.Bold(item.Name), item.Origin))
	}

	message := fmt.Sprintf(
		"⭐ Sevimli ismlar ro'yxati (Jami: %d)\n\n%s\n\nIsmlardan birini tanlab ma'nosini oching yoki trendlarni kuzating.",
		list.TotalItems, strings.Join(lines, "\n"))

	kb := Keyboard{}
	for _, item := range list.Items {
		if item.Slug != "" {
			kb = kb.Row(Btn(item.Name, "name:detail:"+item.Slug))
		}
	}

	// Pagination wraps around: prev on the first page lands on the last.
	if list.TotalPages > 1 {
		prev := page - 1
		if prev < 1 {
			prev = list.TotalPages
		}
		next := page + 1
		if next > list.TotalPages {
			next = 1
		}
		kb = kb.Row(
			Btn("⬅️", fmt.Sprintf("fav:list:%d", prev)),
			Btn(fmt.Sprintf("%d/%d", page, list.TotalPages), LegacyMainMenu),
			Btn("➡️", fmt.Sprintf("fav:list:%d", next)),
		)
	}
	kb = kb.Row(Btn("🏠 Menyu", LegacyMainMenu))

	if err := v.Render(ctx, message, kb); err != nil {
		return err
	}

	_ = e.sessions.Update(id.TelegramID, func(s *session.Session) error {
		s.FavoritesPage = page
		return nil
	})
	return v.Ack(ctx, "")
}

func (e *Engine) toggleFavorite(ctx context.Context, id Identity, slug string, v View) error {
	user, err := e.resolveUser(ctx, id, v)
	if user == nil {
		return err
	}

	record := e.catalog.FindBySlugOrName(slug)
	if record == nil {
		return v.Ack(ctx, "Ism topilmadi.")
	}

	added, err := e.favorites.Toggle(ctx, user.ID, catalog.SuggestionFrom(*record))
	if err != nil {
		logger.Error(ctx, "engine", "favorites.toggle.fail",
			slog.String("slug", slug),
			slog.String("err", err.Error()),
		)
		return v.Ack(ctx, "Sevimlilarni yangilashda xatolik.")
	}

	if added {
		return v.Ack(ctx, "⭐ Sevimlilarga qo'shildi.")
	}
	return v.Ack(ctx, "🗑 Sevimlilardan olib tashlandi.")
}
