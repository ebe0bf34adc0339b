package bot

import (
	"strings"

	tele "gopkg.in/telebot.v4"

	tg "namebot/core/telegram"
	"namebot/core/telegram/ui"
	"namebot/internal/conversation"
)

const inlineResultLimit = 12

// InlineQueryRoute answers inline queries with name cards so users can
// share meanings in any chat. Results carry the same detail keyboard as
// the in-bot cards.
func InlineQueryRoute(engine *conversation.Engine) tg.Route {
	handler := func(c tele.Context) error {
		query := strings.TrimSpace(c.Query().Text)
		cards := engine.InlineCards(query, inlineResultLimit)

		results := make(tele.Results, 0, len(cards))
		for _, card := range cards {
			article := ui.NewSimpleArticleResult(card.ID, card.Title, card.Message)
			article.Description = card.Description
			article.ParseMode = tele.ModeHTML
			article.ReplyMarkup = Markup(conversation.NameDetailKeyboard(card.Slug))
			results = append(results, article)
		}

		return c.Answer(&tele.QueryResponse{
			Results:    results,
			CacheTime:  5,
			IsPersonal: true,
		})
	}
	return tg.Route{Endpoint: tele.OnQuery, Handler: handler}
}
