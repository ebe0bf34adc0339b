package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"namebot/core/logger"
	"namebot/internal/session"
)

// clearedHistoryDepth is how many messages /start sweeps from the chat.
const clearedHistoryDepth = 50

// Start handles /start: sweep recent history, reset the session, ensure
// the user exists and show a fresh main menu.
func (e *Engine) Start(ctx context.Context, id Identity, v View) error {
	if trigger := v.MessageID(); trigger > 0 {
		for i := 0; i < clearedHistoryDepth; i++ {
			if msgID := trigger - i; msgID > 0 {
				_ = v.Delete(ctx, msgID)
			}
		}
	}

	e.sessions.Reset(id.TelegramID)
	e.ensureUser(ctx, id)
	return e.showMainMenu(ctx, id, v)
}

func (e *Engine) showMainMenu(ctx context.Context, id Identity, v View) error {
	user, err := e.users.ByTelegramID(ctx, id.TelegramID)
	if err != nil {
		// Render the unpaid menu rather than going silent on a storage
		// hiccup; the next interaction retries the lookup anyway.
		logger.Warn(ctx, "engine", "menu.user.lookup.fail", slog.String("err", err.Error()))
	}
	hasPaid := user.HasActiveAccess(e.now())

	firstName := id.FirstName
	if firstName == "" {
		firstName = "do'st"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Assalomu alaykum, %s! 👋\n\n", firstName)
	b.WriteString("🌟 Ismlar manosi botiga xush kelibsiz!\n\n")
	b.WriteString("Bu yerda siz ismlarning ma'nosi, trendlari, tarjimalari va shaxsiy tavsiyalarni topasiz.\n\n")
	if hasPaid {
		b.WriteString("✅ Premium foydalanuvchisiz — barcha bo'limlar ochiq.\n\n")
	} else {
		b.WriteString("💳 Bir martalik to'lov qiling va umrbod to'liq imkoniyatlarga ega bo'ling.\nNarx: 5555 so'm\n\n")
	}
	b.WriteString("Quyidagi bo'limlardan birini tanlang yoki ismni yozing:")

	kb := mainMenuKeyboard(hasPaid)

	if v.IsCallback() {
		if err := v.Render(ctx, b.String(), kb); err != nil {
			return err
		}
		_ = e.sessions.Update(id.TelegramID, func(s *session.Session) error {
			s.MainMenuMessageID = v.MessageID()
			return nil
		})
		return v.Ack(ctx, "")
	}

	_ = e.sessions.Update(id.TelegramID, func(s *session.Session) error {
		if s.MainMenuMessageID != 0 {
			_ = v.Delete(ctx, s.MainMenuMessageID)
		}
		return nil
	})

	msgID, err := v.Send(ctx, b.String(), kb)
	if err != nil {
		return err
	}
	return e.sessions.Update(id.TelegramID, func(s *session.Session) error {
		s.MainMenuMessageID = msgID
		return nil
	})
}

// AdminStats replies with the user counters. The command router already
// enforces the allowlist; this renders for authorized callers only.
func (e *Engine) AdminStats(ctx context.Context, id Identity, v View) error {
	total, err := e.users.Count(ctx)
	if err != nil {
		logger.Error(ctx, "engine", "admin.stats.fail", slog.String("err", err.Error()))
		return v.Notify(ctx, "❌ Statistikani olishda xatolik yuz berdi.")
	}
	active, err := e.users.CountActive(ctx)
	if err != nil {
		logger.Error(ctx, "engine", "admin.stats.fail", slog.String("err", err.Error()))
		return v.Notify(ctx, "❌ Statistikani olishda xatolik yuz berdi.")
	}

	return v.Notify(ctx, fmt.Sprintf(
		"📊 Bot statistikasi:\n\n👥 Jami foydalanuvchilar: %d\n✅ Faol foydalanuvchilar: %d",
		total, active))
}

func (e *Engine) showFilterMenu(ctx context.Context, v View) error {
	combos := e.catalog.Combos()
	kb := Keyboard{}
	var row []Button
	for _, combo := range combos {
		row = append(row, Btn(combo.Label, fmt.Sprintf("filter:combo:%s:all", combo.Key)))
		if len(row) == 2 {
			kb = kb.Row(row...)
			row = nil
		}
	}
	if len(row) > 0 {
		kb = kb.Row(row...)
	}
	kb = kb.Row(Btn("🏠 Menyu", LegacyMainMenu))

	var descriptions []string
	for _, d := range e.catalog.Descriptors() {
		descriptions = append(descriptions, fmt.Sprintf("• <b>%s</b> — %s", d.Label, d.Description))
	}

	message := "🧭 Kategoriya filterlari\n\n" +
		"Ramziy, rahbariy, zamonaviy va boshqa yo'nalishlarda tanlang.\n\n" +
		strings.Join(descriptions, "\n") + "\n\n" +
		"Quyidagi kombinatsiyalardan birini bosing:"

	if err := v.Render(ctx, message, kb); err != nil {
		return err
	}
	return v.Ack(ctx, "")
}

func (e *Engine) showTrendMenu(ctx context.Context, v View) error {
	kb := Keyboard{}.
		Row(Btn("📈 Oy bo'yicha", "trend:overview:monthly:all"), Btn("📊 Yil bo'yicha", "trend:overview:yearly:all")).
		Row(Btn("👧 Qizlar", "trend:overview:monthly:girl"), Btn("👦 O'g'illar", "trend:overview:monthly:boy")).
		Row(Btn("🏠 Menyu", LegacyMainMenu))

	message := "📈 Trendlar markazi\n\n" +
		"Har oy va yil kesimida eng mashhur ismlar.\n" +
		"Jins bo'yicha ham ko'rishingiz mumkin.\n\n" +
		"Kerakli bo'limni tanlang:"

	if err := v.Render(ctx, message, kb); err != nil {
		return err
	}
	return v.Ack(ctx, "")
}

func (e *Engine) showCommunityMenu(ctx context.Context, v View) error {
	kb := Keyboard{}.
		Row(Btn("⭐ Sevimlilar", "fav:list:1"), Btn("📊 So'rovnoma", "community:poll")).
		Row(Btn("🔗 Ulashish", "community:share"), Btn("🏠 Menyu", LegacyMainMenu))

	message := "🌍 Jamiyat bo'limi\n\n" +
		"• Sevimli ismlar ro'yxatini ko'ring\n" +
		"• Trend so'rovnomalarida qatnashing\n" +
		"• Inline qidiruv orqali do'stlar bilan ulashing"

	if err := v.Render(ctx, message, kb); err != nil {
		return err
	}
	return v.Ack(ctx, "")
}
