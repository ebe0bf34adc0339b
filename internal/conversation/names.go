package conversation

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"namebot/core/telegram/format"
	"namebot/internal/catalog"
	"namebot/internal/session"
)

const maxNameLength = 50

// isValidName accepts letters and spaces only (Latin, Cyrillic and the
// Uzbek extensions all satisfy unicode.IsLetter), capped at 50 runes.
func isValidName(input string) bool {
	if input == "" || utf8.RuneCountInString(input) > maxNameLength {
		return false
	}
	hasLetter := false
	for _, r := range input {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsSpace(r):
		default:
			return false
		}
	}
	return hasLetter
}

// HandleText classifies free text: an active personalization wizard
// consumes it first; otherwise a valid name goes through the paid-access
// gate into the rich meaning lookup, and anything else gets format help.
func (e *Engine) HandleText(ctx context.Context, id Identity, text string, v View) error {
	text = strings.TrimSpace(text)
	if text == "" || strings.HasPrefix(text, "/") {
		return nil
	}

	var handledByFlow bool
	err := e.sessions.Update(id.TelegramID, func(s *session.Session) error {
		flow, ok := s.Personalization()
		if !ok {
			return nil
		}
		handledByFlow = true
		return e.handleWizardInput(ctx, id, s, flow, text, v)
	})
	if handledByFlow || err != nil {
		return err
	}

	e.ensureUser(ctx, id)

	if isValidName(text) {
		return e.processNameMeaning(ctx, id, text, v)
	}
	return e.showNameInputHelp(ctx, text, v)
}

func (e *Engine) showNameMeaningPrompt(ctx context.Context, v View) error {
	message := "🌟 Ism ma'nosi\n\n" +
		"Iltimos, ma'nosi haqida bilmoqchi bo'lgan ismni yozing:\n\n" +
		"💡 Masalan: Kamoliddin, Oisha, Muhammad va hokazo."
	return v.Render(ctx, message, menuOnlyKeyboard())
}

func (e *Engine) processNameMeaning(ctx context.Context, id Identity, name string, v View) error {
	ok, err := e.ensurePaidAccess(ctx, id, v)
	if err != nil || !ok {
		return err
	}

	record := e.catalog.FindBySlugOrName(name)
	if record == nil {
		kb := Keyboard{}.
			Row(Btn("🌟 Boshqa ism", LegacyNameMeaning)).
			Row(Btn("🔙 Asosiy menyu", LegacyMainMenu))
		_, err := v.Send(ctx, fmt.Sprintf(
			"❌ %s ismi haqida ma'lumot topilmadi.\n\n🔍 Boshqa ism bilan urinib ko'ring.",
			format.EscapeHTML(name)), kb)
		return err
	}

	_, err = v.Send(ctx, formatRichMeaning(record.Name, record.Meaning, record),
		NameDetailKeyboard(record.Slug))
	return err
}

func (e *Engine) showNameInputHelp(ctx context.Context, input string, v View) error {
	kb := Keyboard{}.
		Row(Btn("🌟 Ism ma'nosi", LegacyNameMeaning)).
		Row(Btn("🔙 Asosiy menyu", LegacyMainMenu))

	message := "❓ Noto'g'ri format!\n\n"
	if utf8.RuneCountInString(input) > maxNameLength {
		message += "📝 Ism juda uzun bo'ldi. Iltimos, qisqaroq kiriting."
	} else {
		message += "📝 Iltimos, faqat harflardan iborat ism kiriting."
	}
	message += "\n\n💡 Masalan: Kamoliddin, Oisha, Muhammad"

	_, err := v.Send(ctx, message, kb)
	return err
}

// ensurePaidAccess gates paid sections. It renders the payment offer and
// returns false when the user has no active access.
func (e *Engine) ensurePaidAccess(ctx context.Context, id Identity, v View) (bool, error) {
	user, err := e.users.ByTelegramID(ctx, id.TelegramID)
	if err != nil {
		return false, v.Notify(ctx, textGenericError)
	}
	if user.HasActiveAccess(e.now()) {
		return true, nil
	}

	kb := Keyboard{}.
		Row(Btn("💳 To'lov qilish", LegacyOnetimePayment)).
		Row(Btn("🔙 Asosiy menyu", LegacyMainMenu))
	_, err = v.Send(ctx,
		"🔒 Ushbu bo'limdan foydalanish uchun bir martalik to'lov talab qilinadi.\n\n"+
			"💵 Narx: 5555 so'm\n♾️ Umrbod kirish.\n\n"+
			"To'lovni amalga oshirib, barcha imkoniyatlarni oching.", kb)
	return false, err
}

// Detail card callbacks (name:* namespace).

func (e *Engine) handleNameCallbacks(ctx context.Context, id Identity, token Token, v View) error {
	action := token.Arg(0, "")
	slug := token.Arg(1, "")

	switch action {
	case "detail":
		return e.showNameDetail(ctx, slug, v)
	case "similar":
		return e.showSimilarNames(ctx, slug, v)
	case "translate":
		return e.showTranslations(ctx, slug, v)
	case "audio":
		return e.sendAudioPreview(ctx, slug, v)
	case "trend":
		return e.showNameTrend(ctx, slug, v)
	default:
		return v.Ack(ctx, "")
	}
}

func (e *Engine) showNameDetail(ctx context.Context, slug string, v View) error {
	record := e.catalog.FindBySlugOrName(slug)
	if record == nil {
		if err := v.Render(ctx, formatRichMeaning(slug, "", nil), NameDetailKeyboard(slug)); err != nil {
			return v.Ack(ctx, "Ism tafsilotlarini ko'rsatishda xatolik.")
		}
		return v.Ack(ctx, "")
	}

	if err := v.Render(ctx, formatRichMeaning(record.Name, record.Meaning, record),
		NameDetailKeyboard(record.Slug)); err != nil {
		return v.Ack(ctx, "Ism tafsilotlarini ko'rsatishda xatolik.")
	}
	return v.Ack(ctx, "")
}

func (e *Engine) showSimilarNames(ctx context.Context, slug string, v View) error {
	suggestions := e.catalog.SimilarNames(slug, 4)
	if len(suggestions) == 0 {
		return v.Ack(ctx, "O'xshash ismlar topilmadi.")
	}

	message := "🔁 O'xshash ismlar:\n\n" + strings.Join(suggestionLines(suggestions), "\n")
	kb := suggestionButtons(Keyboard{}, suggestions).Row(Btn("🏠 Menyu", LegacyMainMenu))

	if err := v.Render(ctx, message, kb); err != nil {
		return err
	}
	return v.Ack(ctx, "")
}

func (e *Engine) showTranslations(ctx context.Context, slug string, v View) error {
	record := e.catalog.FindBySlugOrName(slug)
	if record == nil {
		return v.Ack(ctx, "Tarjima topilmadi.")
	}

	var lines []string
	for _, tr := range record.Translations {
		lines = append(lines, fmt.Sprintf("• %s: %s", tr.Language, format.Bold(tr.Value)))
	}
	message := fmt.Sprintf("🌍 %s tarjimalari:\n\n%s",
		format.Bold(record.Name), strings.Join(lines, "\n"))

	if err := v.Render(ctx, message, NameDetailKeyboard(record.Slug)); err != nil {
		return err
	}
	return v.Ack(ctx, "")
}

func (e *Engine) sendAudioPreview(ctx context.Context, slug string, v View) error {
	record := e.catalog.FindBySlugOrName(slug)
	if record == nil {
		return v.Ack(ctx, "Audio topilmadi.")
	}
	if record.AudioURL == "" {
		return v.Ack(ctx, "Audio mavjud emas.")
	}

	if err := v.SendVoice(ctx, record.AudioURL, fmt.Sprintf("🔊 %s talaffuzi", record.Name)); err != nil {
		return err
	}
	return v.Ack(ctx, "")
}

func (e *Engine) showNameTrend(ctx context.Context, slug string, v View) error {
	record := e.catalog.FindBySlugOrName(slug)
	if record == nil {
		return v.Ack(ctx, "Trend ma'lumoti topilmadi.")
	}

	message := fmt.Sprintf(
		"📈 %s trend ko'rsatkichlari:\n\n"+
			"Oy bo'yicha indeks: %d\nYil bo'yicha indeks: %d\nHududlar: %s\n\n"+
			"Trendni kuzatishda davom eting va ortda qolmang!",
		format.Bold(record.Name),
		record.TrendIndex.Monthly, record.TrendIndex.Yearly,
		strings.Join(record.Regions, ", "))

	if err := v.Render(ctx, message, NameDetailKeyboard(record.Slug)); err != nil {
		return err
	}
	return v.Ack(ctx, "")
}

// Browse handlers shared by the filter and trend namespaces.

func (e *Engine) showComboSuggestions(ctx context.Context, comboKey string, gender catalog.FilterGender, v View) error {
	suggestions := e.catalog.NamesForCombo(comboKey, gender)
	if len(suggestions) == 0 {
		return v.Ack(ctx, "Bu kombinatsiyada ism topilmadi.")
	}
	if len(suggestions) > 6 {
		suggestions = suggestions[:6]
	}

	genderLabel := string(gender)
	if gender == catalog.FilterAll {
		genderLabel = "Hammasi"
	}

	message := fmt.Sprintf(
		"🧭 Tanlangan kombinatsiya: %s\nFiltr: %s\n\n%s\n\nIsmni tanlab, ma'nosi va trendini ko'ring.",
		format.Bold(strings.ReplaceAll(comboKey, "_", " + ")),
		genderLabel,
		strings.Join(suggestionLines(suggestions), "\n"))

	kb := Keyboard{}.
		Row(Btn("👧 Qizlar", "filter:combo:"+comboKey+":girl"), Btn("👦 O'g'il bolalar", "filter:combo:"+comboKey+":boy")).
		Row(Btn("♻️ Hammasi", "filter:combo:"+comboKey+":all"), Btn("🏠 Menyu", LegacyMainMenu))
	kb = suggestionButtons(kb, suggestions)

	if err := v.Render(ctx, message, kb); err != nil {
		return err
	}
	return v.Ack(ctx, "")
}

func (e *Engine) showTrendOverview(ctx context.Context, period catalog.Period, gender catalog.FilterGender, v View) error {
	insights := e.catalog.Trending(period, gender)
	if len(insights) == 0 {
		return v.Ack(ctx, "Trend ma'lumotlari topilmadi.")
	}
	if len(insights) > 6 {
		insights = insights[:6]
	}

	var lines []string
	for i, item := range insights {
		direction := "⏸"
		switch item.Movement {
		case catalog.MovementUp:
			direction = "⬆️"
		case catalog.MovementDown:
			direction = "⬇️"
		}
		lines = append(lines, fmt.Sprintf("%d. %s %s — %s %d • %s",
			i+1, genderEmoji(item.Gender), format.Bold(item.Name), direction, item.Score, item.Region))
	}

	periodLabel := "oylik"
	if period == catalog.PeriodYearly {
		periodLabel = "yillik"
	}

	message := fmt.Sprintf("📈 Trendlar (%s, %s)\n\n%s\n\nIsmni tanlab, batafsil ma'lumot oling.",
		periodLabel, gender, strings.Join(lines, "\n"))

	kb := Keyboard{}
	for _, item := range insights {
		kb = kb.Row(Btn(item.Name, "name:detail:"+strings.ToLower(item.Name)))
	}
	kb = kb.Row(Btn("🏠 Menyu", LegacyMainMenu))

	if err := v.Render(ctx, message, kb); err != nil {
		return err
	}
	return v.Ack(ctx, "")
}
