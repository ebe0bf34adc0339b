// Package bot adapts the transport-free conversation engine to telebot:
// it renders engine output into Telegram messages and feeds updates back
// through the core routers.
package bot

import (
	"context"
	"strconv"

	tele "gopkg.in/telebot.v4"

	tghelpers "namebot/core/telegram/helpers"
	"namebot/internal/conversation"
)

// Markup converts an engine keyboard into a telebot inline markup.
// Returns nil for an empty keyboard so callers can drop the markup
// argument entirely.
func Markup(kb conversation.Keyboard) *tele.ReplyMarkup {
	if len(kb) == 0 {
		return nil
	}
	rows := make([][]tele.InlineButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tele.InlineButton, 0, len(row))
		for _, b := range row {
			btn := tele.InlineButton{Text: b.Label}
			switch {
			case b.URL != "":
				btn.URL = b.URL
			case b.SwitchInline:
				btn.InlineQueryChat = b.InlineQuery
			default:
				btn.Data = b.Token
			}
			buttons = append(buttons, btn)
		}
		rows = append(rows, buttons)
	}
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

// teleView implements conversation.View over a single telebot update.
// Ack is answered at most once per update; later calls are no-ops, which
// lets every engine branch ack without double-answer errors.
type teleView struct {
	c     tele.Context
	acked bool
}

// NewView wraps the telebot context for one update.
func NewView(c tele.Context) conversation.View {
	return &teleView{c: c}
}

func (v *teleView) Render(_ context.Context, text string, kb conversation.Keyboard) error {
	if rm := Markup(kb); rm != nil {
		return tghelpers.EditOrSendHTML(v.c, text, rm)
	}
	return tghelpers.EditOrSendHTML(v.c, text)
}

func (v *teleView) Send(_ context.Context, text string, kb conversation.Keyboard) (int, error) {
	opts := &tele.SendOptions{ParseMode: tele.ModeHTML, ReplyMarkup: Markup(kb)}
	msg, err := v.c.Bot().Send(v.c.Recipient(), text, opts)
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

func (v *teleView) Notify(_ context.Context, text string) error {
	return tghelpers.SendText(v.c, text)
}

func (v *teleView) Ack(_ context.Context, notice string) error {
	if v.acked || v.c.Callback() == nil {
		return nil
	}
	v.acked = true
	return v.c.Respond(&tele.CallbackResponse{Text: notice})
}

func (v *teleView) Alert(_ context.Context, notice string) error {
	if v.c.Callback() == nil {
		return v.Notify(context.Background(), notice)
	}
	if v.acked {
		return nil
	}
	v.acked = true
	return v.c.Respond(&tele.CallbackResponse{Text: notice, ShowAlert: true})
}

func (v *teleView) Delete(_ context.Context, messageID int) error {
	chat := v.c.Chat()
	if chat == nil {
		return nil
	}
	return v.c.Bot().Delete(&tele.StoredMessage{
		MessageID: strconv.Itoa(messageID),
		ChatID:    chat.ID,
	})
}

func (v *teleView) SendPoll(_ context.Context, question string, options []string) error {
	poll := &tele.Poll{
		Type:     tele.PollRegular,
		Question: question,
	}
	poll.AddOptions(options...)
	_, err := v.c.Bot().Send(v.c.Recipient(), poll)
	return err
}

func (v *teleView) SendVoice(_ context.Context, url, caption string) error {
	voice := &tele.Voice{File: tele.FromURL(url), Caption: caption}
	_, err := v.c.Bot().Send(v.c.Recipient(), voice)
	return err
}

func (v *teleView) IsCallback() bool {
	return v.c.Callback() != nil
}

func (v *teleView) MessageID() int {
	if msg := v.c.Message(); msg != nil {
		return msg.ID
	}
	return 0
}
