package conversation

import (
	"context"
	"fmt"
	"log/slog"

	"namebot/core/logger"
	"namebot/core/telegram/format"
	"namebot/internal/session"
	"namebot/internal/storage"
)

// handleOneTimePayment shows the provider selection screen for the
// one-time access plan. Users with active access get an alert instead.
func (e *Engine) handleOneTimePayment(ctx context.Context, id Identity, v View) error {
	user, err := e.users.ByTelegramID(ctx, id.TelegramID)
	if err != nil {
		logger.Error(ctx, "engine", "payment.user.lookup.fail", slog.String("err", err.Error()))
		return v.Ack(ctx, textGenericError)
	}
	if user.HasActiveAccess(e.now()) {
		return v.Alert(ctx, "✅ Siz allaqachon VIP foydalanuvchisiz! Botdan umrbod bepul foydalanishingiz mumkin.")
	}

	plan, err := e.plans.ByName(ctx, storage.DefaultPlanName)
	if err != nil {
		logger.Error(ctx, "engine", "payment.plan.lookup.fail", slog.String("err", err.Error()))
		return v.Ack(ctx, textGenericError)
	}
	if plan == nil {
		return v.Ack(ctx, "To'lov rejasi topilmadi.")
	}

	if err := e.sessions.Update(id.TelegramID, func(s *session.Session) error {
		s.PendingPlanID = plan.ID
		return nil
	}); err != nil {
		return err
	}

	kb := Keyboard{}.
		Row(Btn("💳 UzCard", "onetime|uzcard"), Btn("🟢 Click", "onetime|click")).
		Row(Btn("💙 Payme", "onetime|payme")).
		Row(Btn("🔙 Asosiy menyu", LegacyMainMenu))

	message := fmt.Sprintf(
		"💰 %s\n\n💵 Narx: %.0f so'm\n♾️ Muddati: Umrbod!\n\n"+
			"✅ Bir marta to'lov qiling va butun umr bepul foydalaning!\n\n"+
			"Iltimos, o'zingizga ma'qul to'lov turini tanlang:",
		format.Bold("Bir martalik to'lov - Umrbod foydalanish!"), plan.Price)

	if err := v.Render(ctx, message, kb); err != nil {
		return err
	}
	return v.Ack(ctx, "")
}

// handleProviderSelection builds the checkout link for the chosen
// provider using the plan stored in the session.
func (e *Engine) handleProviderSelection(ctx context.Context, id Identity, provider string, v View) error {
	user, err := e.resolveUser(ctx, id, v)
	if user == nil {
		return err
	}

	var planID string
	_ = e.sessions.Update(id.TelegramID, func(s *session.Session) error {
		planID = s.PendingPlanID
		return nil
	})
	if planID == "" {
		return v.Ack(ctx, "To'lov rejasi topilmadi.")
	}

	plan, err := e.plans.ByID(ctx, planID)
	if err != nil {
		logger.Error(ctx, "engine", "payment.plan.lookup.fail", slog.String("err", err.Error()))
		return v.Ack(ctx, textGenericError)
	}
	if plan == nil {
		return v.Ack(ctx, "To'lov rejasi topilmadi.")
	}

	var paymentLink, providerName string
	switch provider {
	case ProviderClick:
		providerName = "Click"
		paymentLink = e.links.ClickLink(plan.ID, user.ID, plan.Price)
	case ProviderPayme:
		providerName = "Payme"
		paymentLink, err = e.links.PaymeLink(plan.ID, user.ID, plan.Price)
		if err != nil {
			logger.Error(ctx, "engine", "payment.link.fail",
				slog.String("provider", provider),
				slog.String("err", err.Error()),
			)
			return v.Ack(ctx, textGenericError)
		}
	case ProviderUzcard:
		providerName = "UzCard"
		paymentLink = e.links.UzcardLink(plan.ID, user.ID, plan.SelectedName)
	default:
		return v.Ack(ctx, "")
	}

	kb := Keyboard{}.
		Row(URLBtn("💳 To'lovga o'tish", paymentLink)).
		Row(Btn("🔙 Asosiy menyu", LegacyMainMenu))

	message := fmt.Sprintf(
		"💳 %s\n\n💵 Summa: %.0f so'm\n♾️ Muddati: Umrbod!\n\n"+
			"✅ Bir marta to'lov qiling va butun umr bepul foydalaning!\n\n"+
			"Quyidagi tugmani bosib to'lovni amalga oshiring:",
		format.Bold(providerName+" orqali to'lov"), plan.Price)

	if err := v.Render(ctx, message, kb); err != nil {
		return err
	}
	return v.Ack(ctx, "")
}
