package conversation

import (
	"fmt"
	"strings"

	"namebot/core/telegram/format"
	"namebot/internal/catalog"
)

// Short notices used across handlers.
const (
	textGenericError = "Xatolik yuz berdi. Iltimos, qayta urinib ko'ring."
	textStartFirst   = "Avval /start buyrug'ini yuboring."
	textUserUnknown  = "Foydalanuvchi aniqlanmadi."
)

func mainMenuKeyboard(hasPaid bool) Keyboard {
	kb := Keyboard{}.
		Row(Btn("🌟 Ism ma'nosi", LegacyNameMeaning), Btn("🎯 Shaxsiy tavsiya", "menu:personal")).
		Row(Btn("🧭 Kategoriya filterlari", "menu:filters"), Btn("🧪 Mini test", "quiz:start")).
		Row(Btn("📈 Trendlar", "menu:trends"), Btn("⭐ Sevimlilar", "fav:list:1")).
		Row(Btn("🌍 Jamiyat", "menu:community"), Btn("💬 Fikr bildirish", "menu:feedback")).
		Row(InlineBtn("🔍 Inline qidiruv", ""))
	if !hasPaid {
		kb = kb.Row(Btn("💳 Bir martalik to'lov", LegacyOnetimePayment))
	}
	return kb
}

// NameDetailKeyboard is the action row attached to every rich name card.
// Exported because inline query results reuse it.
func NameDetailKeyboard(slug string) Keyboard {
	return Keyboard{}.
		Row(Btn("⭐ Sevimlilarga qo'shish", "fav:toggle:"+slug), Btn("🔁 O'xshash", "name:similar:"+slug)).
		Row(Btn("🌍 Tarjima", "name:translate:"+slug), Btn("🔊 Talaffuz", "name:audio:"+slug)).
		Row(Btn("📈 Trend", "name:trend:"+slug), Btn("🏠 Menyu", LegacyMainMenu))
}

func menuOnlyKeyboard() Keyboard {
	return Keyboard{}.Row(Btn("🏠 Menyu", LegacyMainMenu))
}

func genderEmoji(g catalog.Gender) string {
	switch g {
	case catalog.GenderGirl:
		return "👧"
	case catalog.GenderBoy:
		return "👦"
	default:
		return "✨"
	}
}

// formatRichMeaning renders the detail card of a name. The record may be
// nil for names outside the catalog; the card then degrades to the bare
// meaning block.
func formatRichMeaning(name, meaning string, record *catalog.NameRecord) string {
	headline := fmt.Sprintf("🌟 %s ismi haqida", format.Bold(name))

	meaningBlock := "\n📘 Ma'lumot hozircha topilmadi.\n"
	if meaning != "" {
		meaningBlock = fmt.Sprintf("\n📘 %s %s\n", format.Bold("Ma'nosi:"), meaning)
	}

	if record == nil {
		return headline + "\n" + meaningBlock + "\n🔁 Yana boshqa ismni sinab ko'ring."
	}

	var b strings.Builder
	b.WriteString(headline)
	b.WriteString("\n")
	b.WriteString(meaningBlock)
	fmt.Fprintf(&b, "🌍 %s %s\n", format.Bold("Kelib chiqishi:"), record.Origin)
	if len(record.FocusValues) > 0 {
		fmt.Fprintf(&b, "✨ %s %s", format.Bold("Ohangi:"), format.HashTags(record.FocusValues))
	}
	if record.Storytelling != "" {
		fmt.Fprintf(&b, "\n🧩 %s\n", format.Italic(record.Storytelling))
	}
	fmt.Fprintf(&b, "📈 Trend indeks: oy ⇒ %d / yil ⇒ %d", record.TrendIndex.Monthly, record.TrendIndex.Yearly)
	if len(record.Related) > 0 {
		fmt.Fprintf(&b, "\n🔎 O'xshash ismlar: %s", strings.Join(record.Related, ", "))
	}
	return b.String()
}

// suggestionLines renders a numbered suggestion list with gender emoji.
func suggestionLines(suggestions []catalog.Suggestion) []string {
	lines := make([]string, 0, len(suggestions))
	for i, s := range suggestions {
		lines = append(lines, fmt.Sprintf("%d. %s %s — %s",
			i+1, genderEmoji(s.Gender), format.Bold(s.Name), s.Meaning))
	}
	return lines
}

// suggestionButtons turns suggestions into one detail button per row.
func suggestionButtons(kb Keyboard, suggestions []catalog.Suggestion) Keyboard {
	for _, s := range suggestions {
		kb = kb.Row(Btn(s.Name, "name:detail:"+s.Slug))
	}
	return kb
}

// InlineCard is an inline query result projection.
type InlineCard struct {
	ID          string
	Title       string
	Description string
	Message     string
	Slug        string
}

// InlineCards renders up to limit article cards for an inline query.
func (e *Engine) InlineCards(query string, limit int) []InlineCard {
	records := e.catalog.Search(query, limit)
	cards := make([]InlineCard, 0, len(records))
	for i := range records {
		r := &records[i]
		cards = append(cards, InlineCard{
			ID:    r.Slug,
			Title: r.Name,
			Description: fmt.Sprintf("%s %s • trend %d%%",
				genderEmoji(r.Gender), r.Origin, r.TrendIndex.Monthly),
			Message: formatRichMeaning(r.Name, r.Meaning, r),
			Slug:    r.Slug,
		})
	}
	return cards
}
