package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"namebot/core/logger"
	"namebot/core/telegram/format"
	tghelpers "namebot/core/telegram/helpers"
	"namebot/internal/catalog"
	"namebot/internal/persona"
	"namebot/internal/session"
	"namebot/internal/storage"
)

const skipKeyword = "skip"

// startPersonalization (re)opens the wizard at the gender step. Any
// previous flow payload is discarded.
func (e *Engine) startPersonalization(ctx context.Context, id Identity, v View) error {
	err := e.sessions.Update(id.TelegramID, func(s *session.Session) error {
		s.Flow = session.NewPersonalizationFlow()
		return nil
	})
	if err != nil {
		return err
	}

	kb := Keyboard{}.
		Row(Btn("👧 Qiz bolaga", "personal:gender:girl"), Btn("👦 O'g'il bolaga", "personal:gender:boy")).
		Row(Btn("🤍 Aniqlanmagan", "personal:gender:all")).
		Row(Btn("🏠 Menyu", LegacyMainMenu))

	message := "🎯 Shaxsiy tavsiya generatori\n\n" +
		"Avvalo, qaysi jins uchun ism tanlashni belgilang:"

	if err := v.Render(ctx, message, kb); err != nil {
		return err
	}
	return v.Ack(ctx, "")
}

// handlePersonalCallbacks serves personal:* tokens. A token arriving
// without an active wizard starts one first, then the action is applied
// to the fresh flow.
func (e *Engine) handlePersonalCallbacks(ctx context.Context, id Identity, token Token, v View) error {
	switch token.Arg(0, "") {
	case "gender":
		gender := catalog.ParseFilterGender(token.Arg(1, "all"))
		err := e.sessions.Update(id.TelegramID, func(s *session.Session) error {
			flow, ok := s.Personalization()
			if !ok {
				flow = session.NewPersonalizationFlow()
				s.Flow = flow
			}
			flow.TargetGender = gender
			flow.Step = 2
			return nil
		})
		if err != nil {
			return err
		}
		if err := v.Render(ctx,
			"🍼 Kutilayotgan tug'ilish sanasini kiriting.\n\nFormat: <b>YYYY-MM-DD</b>\nAgar aniq sanani bilmasangiz <i>skip</i> deb yozing.",
			nil); err != nil {
			return err
		}
		return v.Ack(ctx, "")

	case "focus":
		key := token.Arg(1, "")
		switch key {
		case "done":
			return e.finalizePersonalization(ctx, id, v)
		case "reset":
			return e.startPersonalization(ctx, id, v)
		default:
			err := e.sessions.Update(id.TelegramID, func(s *session.Session) error {
				flow, ok := s.Personalization()
				if !ok {
					flow = session.NewPersonalizationFlow()
					s.Flow = flow
				}
				flow.ToggleFocus(key)
				return e.promptFocusSelection(ctx, flow, v)
			})
			if err != nil {
				return err
			}
			return v.Ack(ctx, "")
		}

	default:
		return e.startPersonalization(ctx, id, v)
	}
}

// handleWizardInput consumes free text while the wizard is active. The
// session lock is already held by the caller. Invalid input re-prompts
// without touching step or payload.
func (e *Engine) handleWizardInput(ctx context.Context, id Identity, s *session.Session, flow *session.PersonalizationFlow, text string, v View) error {
	switch flow.Step {
	case 2:
		if !strings.EqualFold(text, skipKeyword) {
			date, ok := tghelpers.ParseISODate(text)
			if !ok {
				return v.Notify(ctx, "❗ Sana formati noto'g'ri. Iltimos, YYYY-MM-DD shaklida kiriting yoki skip deb yozing.")
			}
			flow.BirthDate = &date
		}
		flow.Step = 3
		return v.Notify(ctx, "👪 Familiyangizni kiriting. Masalan: Rasulov.\nAgar bu bosqichni o'tkazib yubormoqchi bo'lsangiz skip deb yozing.")

	case 3:
		if !strings.EqualFold(text, skipKeyword) {
			flow.FamilyName = text
		}
		flow.Step = 4
		return v.Notify(ctx, "👨‍👩‍👦 Ota-ona ismlarini vergul bilan yozing. Masalan: Nodira, Farhod.\nAgar o'tkazsangiz skip deb yozing.")

	case 4:
		if !strings.EqualFold(text, skipKeyword) {
			flow.ParentNames = splitNames(text)
		}
		flow.Step = 5
		return e.promptFocusSelection(ctx, flow, v)

	default:
		// Steps 1 and 5 advance through buttons; stray text is ignored.
		return nil
	}
}

// splitNames splits on commas, trims each part and drops empties.
func splitNames(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (e *Engine) promptFocusSelection(ctx context.Context, flow *session.PersonalizationFlow, v View) error {
	kb := Keyboard{}
	var row []Button
	for _, item := range e.personas.FocusTags() {
		prefix := "▫️"
		if flow.HasFocus(item.Tag) {
			prefix = "✅"
		}
		row = append(row, Btn(prefix+" "+item.Label, "personal:focus:"+item.Tag))
		if len(row) == 2 {
			kb = kb.Row(row...)
			row = nil
		}
	}
	if len(row) > 0 {
		kb = kb.Row(row...)
	}
	kb = kb.Row(Btn("✅ Tayyor", "personal:focus:done"), Btn("🔄 Qayta boshlash", "personal:focus:reset"))
	kb = kb.Row(Btn("🏠 Menyu", LegacyMainMenu))

	selectedLine := "Hozircha tanlov belgilanmagan."
	if len(flow.FocusValues) > 0 {
		selectedLine = "Tanlangan qadriyatlar: " + format.HashTags(flow.FocusValues)
	}

	message := "✨ Qaysi qadriyatlar siz uchun muhim? Bir nechtasini tanlang:\n\n" +
		selectedLine + "\n\n✅ Tugmani bosib yakunlang."

	return v.Render(ctx, message, kb)
}

// finalizePersonalization scores the wizard payload, persists the
// profile and renders the recommendations. The profile upsert happens
// before the flow is cleared, so a crash in between leaves a retryable
// "done" press instead of lost answers.
func (e *Engine) finalizePersonalization(ctx context.Context, id Identity, v View) error {
	return e.sessions.Update(id.TelegramID, func(s *session.Session) error {
		flow, ok := s.Personalization()
		if !ok {
			return v.Ack(ctx, "")
		}

		user, err := e.resolveUser(ctx, id, v)
		if user == nil {
			return err
		}

		profile := persona.Profile{
			BirthDate:    flow.BirthDate,
			TargetGender: flow.TargetGender,
			FamilyName:   flow.FamilyName,
			ParentNames:  flow.ParentNames,
			FocusValues:  flow.FocusValues,
		}
		rec := e.personas.BuildRecommendations(profile, nil)

		target := storage.TargetUnknown
		switch flow.TargetGender {
		case catalog.FilterBoy:
			target = storage.TargetBoy
		case catalog.FilterGirl:
			target = storage.TargetGirl
		}

		if err := e.profiles.Upsert(ctx, user.ID, storage.ProfileUpdate{
			ExpectedBirthDate: flow.BirthDate,
			TargetGender:      target,
			FamilyName:        flow.FamilyName,
			ParentNames:       flow.ParentNames,
			FocusValues:       flow.FocusValues,
			PersonaType:       rec.PersonaCode,
		}); err != nil {
			logger.Error(ctx, "engine", "personalization.persist.fail", slog.String("err", err.Error()))
			return v.Ack(ctx, textGenericError)
		}

		message := fmt.Sprintf("🎯 Shaxsiy profil: %s\n%s\n\n%s\n\nIsmlardan birini tanlab, ma'nosini, trendini va tarjimasini ko'rib chiqing.",
			format.Bold(rec.PersonaLabel), rec.Summary,
			strings.Join(suggestionLines(rec.Suggestions), "\n"))

		kb := suggestionButtons(Keyboard{}, rec.Suggestions).Row(Btn("🏠 Menyu", LegacyMainMenu))

		if err := v.Render(ctx, message, kb); err != nil {
			return err
		}

		s.ClearFlow()
		return v.Ack(ctx, "")
	})
}
