package conversation

import (
	"context"

	"namebot/internal/catalog"
)

// HandleCallback routes a recognized callback token to its handler.
// Every branch answers the callback exactly once; the View's Ack is
// idempotent so render helpers that also ack stay safe.
func (e *Engine) HandleCallback(ctx context.Context, id Identity, data string, v View) error {
	token, ok := ParseToken(data)
	if !ok {
		return v.Ack(ctx, "")
	}

	if token.Provider != "" {
		if !ValidProvider(token.Provider) {
			return v.Ack(ctx, "")
		}
		return e.handleProviderSelection(ctx, id, token.Provider, v)
	}

	if token.Legacy != "" {
		return e.handleLegacy(ctx, id, token.Legacy, v)
	}

	switch token.Namespace {
	case NamespaceMenu:
		return e.handleMenuNavigation(ctx, id, token, v)
	case NamespaceFilter:
		return e.handleFilterActions(ctx, id, token, v)
	case NamespaceQuiz:
		return e.handleQuizCallbacks(ctx, id, token, v)
	case NamespaceFav:
		return e.handleFavoriteCallbacks(ctx, id, token, v)
	case NamespacePersonal:
		return e.handlePersonalCallbacks(ctx, id, token, v)
	case NamespaceName:
		return e.handleNameCallbacks(ctx, id, token, v)
	case NamespaceTrend:
		return e.handleTrendCallbacks(ctx, id, token, v)
	case NamespaceCommunity:
		return e.handleCommunityCallbacks(ctx, id, token, v)
	default:
		return v.Ack(ctx, "")
	}
}

func (e *Engine) handleLegacy(ctx context.Context, id Identity, key string, v View) error {
	switch key {
	case LegacyNameMeaning:
		if err := e.showNameMeaningPrompt(ctx, v); err != nil {
			return err
		}
		return v.Ack(ctx, "")
	case LegacyOnetimePayment:
		return e.handleOneTimePayment(ctx, id, v)
	case LegacyMainMenu:
		return e.showMainMenu(ctx, id, v)
	default:
		return v.Ack(ctx, "")
	}
}

func (e *Engine) handleMenuNavigation(ctx context.Context, id Identity, token Token, v View) error {
	switch token.Arg(0, "") {
	case "personal":
		return e.startPersonalization(ctx, id, v)
	case "filters":
		return e.showFilterMenu(ctx, v)
	case "trends":
		return e.showTrendMenu(ctx, v)
	case "community":
		return e.showCommunityMenu(ctx, v)
	case "feedback":
		return v.Alert(ctx, "📬 Fikr va takliflaringizni "+e.supportChannel+" kanaliga yozib qoldiring.")
	default:
		return e.showMainMenu(ctx, id, v)
	}
}

func (e *Engine) handleFilterActions(ctx context.Context, id Identity, token Token, v View) error {
	if token.Arg(0, "") != "combo" {
		return v.Ack(ctx, "")
	}
	comboKey := token.Arg(1, "")
	gender := catalog.ParseFilterGender(token.Arg(2, "all"))
	return e.showComboSuggestions(ctx, comboKey, gender, v)
}

func (e *Engine) handleTrendCallbacks(ctx context.Context, id Identity, token Token, v View) error {
	if token.Arg(0, "") != "overview" {
		return v.Ack(ctx, "")
	}
	period := catalog.ParsePeriod(token.Arg(1, "monthly"))
	gender := catalog.ParseFilterGender(token.Arg(2, "all"))
	return e.showTrendOverview(ctx, period, gender, v)
}

func (e *Engine) handleCommunityCallbacks(ctx context.Context, id Identity, token Token, v View) error {
	switch token.Arg(0, "") {
	case "poll":
		polls := e.catalog.Polls()
		poll := polls[e.rand(len(polls))]
		if err := v.SendPoll(ctx, poll.Question, poll.Options); err != nil {
			return err
		}
		return v.Ack(ctx, "")
	case "share":
		return v.Alert(ctx, "Inline qidiruvni ishga tushirish uchun har qanday chatda @bot_username yozib ismni qidiring.")
	default:
		return e.showCommunityMenu(ctx, v)
	}
}
