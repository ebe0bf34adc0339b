package bot

import (
	tele "gopkg.in/telebot.v4"

	tghelpers "namebot/core/telegram/helpers"
	"namebot/internal/conversation"
)

// Fallbacks answers updates nothing else claimed. Unknown text falls
// through to the engine's name lookup, so any plain word is treated as a
// name query.
type Fallbacks struct {
	engine *conversation.Engine
}

// NewFallbacks builds the fallback provider over the engine.
func NewFallbacks(engine *conversation.Engine) *Fallbacks {
	return &Fallbacks{engine: engine}
}

// UnknownText implements ui.FallbackProvider.
func (f *Fallbacks) UnknownText() tele.HandlerFunc {
	return TextHandler(f.engine)
}

// UnknownDocument implements ui.FallbackProvider.
func (f *Fallbacks) UnknownDocument() tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.SendText(c, "📄 Hujjatlar qo'llab-quvvatlanmaydi. Iltimos, ism yozing yoki menyudan foydalaning.")
	}
}

// UnknownCallback implements ui.FallbackProvider.
func (f *Fallbacks) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{})
	}
}
